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

package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/coregx/coregex"
	"github.com/walteh/mdreplace/pkg/ast"
	"github.com/walteh/mdreplace/pkg/findreplace"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Ruleset compiles the rules and mapping that apply to path, in config
// order, with the mapping entries last. An empty path selects every rule.
func (cfg *Config) Ruleset(path string) (findreplace.Ruleset, error) {
	rules := make([]findreplace.Rule, 0, len(cfg.Rules)+len(cfg.Mapping))

	for i, r := range cfg.Rules {
		if !r.AppliesTo(path) {
			continue
		}
		compiled, err := r.Compile()
		if err != nil {
			return findreplace.Ruleset{}, errors.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, compiled)
	}

	for _, e := range cfg.Mapping {
		compiled, err := findreplace.NewRule(e.Find, e.Replace)
		if err != nil {
			return findreplace.Ruleset{}, errors.Errorf("mapping %q: %w", e.Find, err)
		}
		rules = append(rules, compiled)
	}

	return findreplace.ListOf(rules...), nil
}

// 🙈 Options returns the find and replace options the config asks for
func (cfg *Config) Options() []findreplace.Option {
	if len(cfg.Ignore) == 0 {
		return nil
	}
	return []findreplace.Option{findreplace.WithIgnore(cfg.Ignore)}
}

// 🔍 Excluded reports whether path matches one of the exclude globs
func (cfg *Config) Excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range cfg.Exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

// 🔍 AppliesTo reports whether the rule is used for path
func (r Rule) AppliesTo(path string) bool {
	if r.Files == "" || path == "" {
		return true
	}
	ok, err := doublestar.Match(r.Files, filepath.ToSlash(path))
	return err == nil && ok
}

// 🏭 Compile turns the rule into a findreplace.Rule
func (r Rule) Compile() (findreplace.Rule, error) {
	var (
		pattern findreplace.Pattern
		err     error
	)

	switch {
	case r.Regex:
		pattern, err = findreplace.Compile(r.Find, !r.First)
	case r.First:
		pattern, err = findreplace.Compile(coregex.QuoteMeta(r.Find), false)
	default:
		pattern = findreplace.Find(r.Find)
	}
	if err != nil {
		return findreplace.Rule{}, err
	}

	return findreplace.Rule{Find: pattern, Replace: r.replacer()}, nil
}

func (r Rule) replacer() findreplace.Replacer {
	switch {
	case r.Remove:
		return func(findreplace.Match) findreplace.Outcome {
			return findreplace.Remove()
		}
	case r.Wrap != "":
		return func(m findreplace.Match) findreplace.Outcome {
			node := ast.Parent(r.Wrap, ast.Text(m.Value))
			if len(r.Props) > 0 {
				props := make(map[string]any, len(r.Props))
				for k, v := range r.Props {
					props[k] = r.expand(v, m)
				}
				node.WithProps(props)
			}
			return findreplace.Nodes(node)
		}
	default:
		return func(m findreplace.Match) findreplace.Outcome {
			return findreplace.Literal(r.expand(r.Replace, m))
		}
	}
}

// expand substitutes $0 (the match) and $1..$n (groups) in regex rules
func (r Rule) expand(template string, m findreplace.Match) string {
	if !r.Regex {
		return template
	}
	return os.Expand(template, func(name string) string {
		if name == "$" {
			return "$"
		}
		n, err := strconv.Atoi(name)
		if err != nil {
			return "$" + name
		}
		if n == 0 {
			return m.Value
		}
		if n <= len(m.Groups) {
			return m.Groups[n-1]
		}
		return ""
	})
}
