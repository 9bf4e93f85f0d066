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
	"fmt"
	"reflect"
	"strings"

	"github.com/coregx/coregex"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidPattern is returned when a find value cannot be turned into a Pattern
var ErrInvalidPattern = errors.Base("invalid find pattern")

// 🔍 Matcher locates successive non-overlapping matches in a string.
//
// Result[i] holds index pairs for match i: [0:2] the whole match, then one
// pair per capture group (-1 when the group did not participate). n < 0
// means all matches. Both *coregex.Regexp and the standard library's
// *regexp.Regexp implement it.
type Matcher interface {
	FindAllStringSubmatchIndex(s string, n int) [][]int
}

// 🎯 Pattern is a compiled find value with its match mode
type Pattern struct {
	matcher Matcher
	global  bool
	source  string
}

// 📝 Find compiles literal text into a global pattern. Every character the
// regex syntax would interpret is escaped, so it behaves like a substring scan.
// Text that is not valid UTF-8 is matched byte for byte.
func Find(text string) Pattern {
	return Pattern{matcher: literal(text), global: true, source: text}
}

func literal(text string) Matcher {
	if re, err := coregex.Compile(coregex.QuoteMeta(text)); err == nil {
		return re
	}
	return byteLiteral(text)
}

// byteLiteral scans for raw bytes; regex engines reject patterns with invalid UTF-8
type byteLiteral string

func (b byteLiteral) FindAllStringSubmatchIndex(s string, n int) [][]int {
	var out [][]int
	for start := 0; n < 0 || len(out) < n; {
		i := strings.Index(s[start:], string(b))
		if i < 0 {
			break
		}
		pos := start + i
		out = append(out, []int{pos, pos + len(b)})
		start = pos + max(len(b), 1)
		if start > len(s) {
			break
		}
	}
	return out
}

// 🌐 Global wraps a matcher that reports every match in a string
func Global(m Matcher) Pattern {
	return Pattern{matcher: m, global: true, source: describe(m)}
}

// 1️⃣ First wraps a matcher that only reports the first match in a string
func First(m Matcher) Pattern {
	return Pattern{matcher: m, global: false, source: describe(m)}
}

// 🏭 Compile compiles a regular expression with coregex
func Compile(expr string, global bool) (Pattern, error) {
	re, err := coregex.Compile(expr)
	if err != nil {
		return Pattern{}, errors.Errorf("%w: compiling %q: %s", ErrInvalidPattern, expr, err.Error())
	}
	return Pattern{matcher: re, global: global, source: expr}, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(expr string, global bool) Pattern {
	p, err := Compile(expr, global)
	if err != nil {
		panic(err)
	}
	return p
}

// 🔄 ToPattern converts a find value: literal text, a Pattern, or a bare
// Matcher (global, since it carries no mode of its own).
func ToPattern(v any) (Pattern, error) {
	switch t := v.(type) {
	case string:
		return Find(t), nil
	case Pattern:
		if t.matcher == nil {
			return Pattern{}, errors.Errorf("%w: empty pattern", ErrInvalidPattern)
		}
		return t, nil
	case *Pattern:
		if t == nil || t.matcher == nil {
			return Pattern{}, errors.Errorf("%w: empty pattern", ErrInvalidPattern)
		}
		return *t, nil
	case Matcher:
		if isNil(t) {
			return Pattern{}, errors.Errorf("%w: nil matcher", ErrInvalidPattern)
		}
		return Global(t), nil
	default:
		return Pattern{}, errors.Errorf("%w: got %T", ErrInvalidPattern, v)
	}
}

// IsGlobal reports whether every match is replaced, not only the first
func (p Pattern) IsGlobal() bool {
	return p.global
}

// String returns the source the pattern was built from
func (p Pattern) String() string {
	return p.source
}

// find returns the match index sets for s in scan order
func (p Pattern) find(s string) [][]int {
	n := -1
	if !p.global {
		n = 1
	}
	return p.matcher.FindAllStringSubmatchIndex(s, n)
}

func describe(m Matcher) string {
	if s, ok := m.(fmt.Stringer); ok && !isNil(m) {
		return s.String()
	}
	return fmt.Sprintf("%T", m)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
