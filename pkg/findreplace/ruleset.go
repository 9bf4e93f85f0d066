// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package findreplace

import (
	"sort"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidRuleset is returned for find and replace values of the wrong shape
var ErrInvalidRuleset = errors.Base("expected find and replace tuple or list of tuples")

// 📏 Rule is one compiled find and replace pair
type Rule struct {
	Find    Pattern
	Replace Replacer
}

// NewRule compiles a find value and a replace value into a Rule
func NewRule(find, replace any) (Rule, error) {
	p, err := ToPattern(find)
	if err != nil {
		return Rule{}, err
	}
	r, err := ToReplacer(replace)
	if err != nil {
		return Rule{}, errors.Errorf("replacement for %q: %w", p.String(), err)
	}
	return Rule{Find: p, Replace: r}, nil
}

type rulesetKind int

const (
	kindPair rulesetKind = iota + 1
	kindList
	kindMapping
)

func (k rulesetKind) String() string {
	switch k {
	case kindPair:
		return "pair"
	case kindList:
		return "list"
	case kindMapping:
		return "mapping"
	default:
		return "invalid"
	}
}

// 📚 Ruleset is an ordered list of rules, each applied as its own pass.
//
// Build one with Pair, List, ListOf, Map or FromValue. Shape errors are kept
// inside the Ruleset and reported by Rules before any tree is touched.
type Ruleset struct {
	kind  rulesetKind
	rules []Rule
	err   error
}

// 🎯 Pair builds a ruleset of a single find and replace pair.
// A nil replace removes every match.
func Pair(find, replace any) Ruleset {
	r, err := NewRule(find, replace)
	if err != nil {
		return Ruleset{kind: kindPair, err: err}
	}
	return Ruleset{kind: kindPair, rules: []Rule{r}}
}

// 📋 List builds a ruleset from ordered find and replace pairs
func List(pairs ...[2]any) Ruleset {
	rs := Ruleset{kind: kindList, rules: make([]Rule, 0, len(pairs))}
	for i, p := range pairs {
		r, err := NewRule(p[0], p[1])
		if err != nil {
			return Ruleset{kind: kindList, err: errors.Errorf("pair %d: %w", i, err)}
		}
		rs.rules = append(rs.rules, r)
	}
	return rs
}

// ListOf builds a ruleset from already compiled rules
func ListOf(rules ...Rule) Ruleset {
	rs := Ruleset{kind: kindList, rules: make([]Rule, 0, len(rules))}
	for i, r := range rules {
		if r.Find.matcher == nil {
			return Ruleset{kind: kindList, err: errors.Errorf("rule %d: %w: empty pattern", i, ErrInvalidPattern)}
		}
		if r.Replace == nil {
			r.Replace = constant(Remove())
		}
		rs.rules = append(rs.rules, r)
	}
	return rs
}

// 🗺️ Map builds a ruleset from literal find text to replace values.
// Keys are applied in sorted order.
func Map(m map[string]any) Ruleset {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rs := Ruleset{kind: kindMapping, rules: make([]Rule, 0, len(keys))}
	for _, k := range keys {
		r, err := NewRule(k, m[k])
		if err != nil {
			return Ruleset{kind: kindMapping, err: errors.Errorf("key %q: %w", k, err)}
		}
		rs.rules = append(rs.rules, r)
	}
	return rs
}

// 🔀 FromValue dispatches on the runtime shape of v:
//   - string, Pattern, Matcher: a pair that removes matches
//   - [2]any, or []any starting with a find value: a pair
//   - [][2]any, []Rule, or []any of pairs: a list
//   - map[string]any, map[string]string: a mapping
//   - Ruleset: itself
//
// Anything else yields a ruleset holding ErrInvalidRuleset.
func FromValue(v any) Ruleset {
	switch t := v.(type) {
	case Ruleset:
		return t
	case *Ruleset:
		if t == nil {
			return invalid(v)
		}
		return *t
	case string, Pattern, *Pattern:
		return Pair(t, nil)
	case [2]any:
		return Pair(t[0], t[1])
	case [][2]any:
		return List(t...)
	case []Rule:
		return ListOf(t...)
	case map[string]any:
		return Map(t)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return Map(m)
	case []any:
		return fromSlice(t)
	case Matcher:
		if isNil(t) {
			return invalid(v)
		}
		return Pair(t, nil)
	default:
		return invalid(v)
	}
}

func fromSlice(items []any) Ruleset {
	if len(items) > 0 && isFind(items[0]) {
		if len(items) > 2 {
			return Ruleset{kind: kindPair, err: errors.Errorf("%w: pair has %d elements", ErrInvalidRuleset, len(items))}
		}
		var replace any
		if len(items) == 2 {
			replace = items[1]
		}
		return Pair(items[0], replace)
	}

	pairs := make([][2]any, 0, len(items))
	for i, item := range items {
		switch p := item.(type) {
		case [2]any:
			pairs = append(pairs, p)
		case []any:
			if len(p) == 0 || len(p) > 2 {
				return Ruleset{kind: kindList, err: errors.Errorf("%w: pair %d has %d elements", ErrInvalidRuleset, i, len(p))}
			}
			var pair [2]any
			copy(pair[:], p)
			pairs = append(pairs, pair)
		default:
			return Ruleset{kind: kindList, err: errors.Errorf("%w: pair %d is %T", ErrInvalidRuleset, i, item)}
		}
	}
	return List(pairs...)
}

func isFind(v any) bool {
	switch t := v.(type) {
	case string, Pattern, *Pattern:
		return true
	case Matcher:
		return !isNil(t)
	default:
		return false
	}
}

func invalid(v any) Ruleset {
	return Ruleset{err: errors.Errorf("%w: got %T", ErrInvalidRuleset, v)}
}

// 📋 Rules returns the normalized rules, or the shape error found while building them
func (rs Ruleset) Rules() ([]Rule, error) {
	if rs.err != nil {
		return nil, rs.err
	}
	if rs.kind == 0 {
		return nil, errors.Errorf("%w: empty ruleset value", ErrInvalidRuleset)
	}
	return rs.rules, nil
}

// Len returns the number of rules, 0 for an invalid ruleset
func (rs Ruleset) Len() int {
	if rs.err != nil {
		return 0
	}
	return len(rs.rules)
}

// String names the shape the ruleset was built from
func (rs Ruleset) String() string {
	return rs.kind.String()
}
