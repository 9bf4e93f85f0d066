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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/mdreplace/pkg/ast"
	"github.com/walteh/mdreplace/pkg/ast/is"
	"github.com/walteh/mdreplace/pkg/ast/visit"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a find and replace run
type Options struct {
	// Ignore is a test (see is.Convert) for ancestors whose text must not be touched.
	// nil ignores nothing.
	Ignore any
}

// Option mutates Options
type Option func(*Options)

// 🙈 WithIgnore skips text below any ancestor passing test
func WithIgnore(test any) Option {
	return func(o *Options) {
		o.Ignore = test
	}
}

// 📊 PassReport counts what one rule did during its pass
type PassReport struct {
	Pattern  string // Source of the rule's pattern
	Global   bool   // Whether the rule replaced every match
	Visited  int    // Text nodes scanned
	Ignored  int    // Text nodes skipped by the ignore test
	Matches  int    // Matches found
	Replaced int    // Matches replaced or removed
	Rejected int    // Matches the replacer kept
}

// 📊 Report collects one PassReport per rule, in rule order
type Report struct {
	Passes []PassReport
}

// Replacements is the number of matches replaced across all passes
func (r *Report) Replacements() int {
	total := 0
	for _, p := range r.Passes {
		total += p.Replaced
	}
	return total
}

// 🎯 FindAndReplace applies every rule of rs to the text below tree, one full
// pass per rule, and returns the same (mutated) tree. Shape errors in rs or
// the ignore test are reported before the tree is changed.
func FindAndReplace(ctx context.Context, tree *ast.Node, rs Ruleset, opts ...Option) (*ast.Node, error) {
	if _, err := Apply(ctx, tree, rs, opts...); err != nil {
		return tree, err
	}
	return tree, nil
}

// 🏃 Apply is FindAndReplace that also reports what each pass did
func Apply(ctx context.Context, tree *ast.Node, rs Ruleset, opts ...Option) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	rules, err := rs.Rules()
	if err != nil {
		return nil, errors.Errorf("normalizing rules: %w", err)
	}

	ignored, err := ignoreFunc(o.Ignore)
	if err != nil {
		return nil, errors.Errorf("building ignore test: %w", err)
	}

	report := &Report{Passes: make([]PassReport, 0, len(rules))}
	if tree == nil {
		return report, nil
	}

	for i, rule := range rules {
		pr := PassReport{Pattern: rule.Find.String(), Global: rule.Find.IsGlobal()}
		pass(tree, rule, ignored, &pr)

		logger.Debug().
			Int("rule", i).
			Str("pattern", pr.Pattern).
			Bool("global", pr.Global).
			Int("visited", pr.Visited).
			Int("ignored", pr.Ignored).
			Int("matches", pr.Matches).
			Int("replaced", pr.Replaced).
			Int("rejected", pr.Rejected).
			Msg("find and replace pass")

		report.Passes = append(report.Passes, pr)
	}

	return report, nil
}

// ignoreFunc builds the ignore test; nil ignores nothing
func ignoreFunc(test any) (is.Check, error) {
	if test == nil {
		return is.Never, nil
	}
	return is.Convert(test)
}

// 🔄 pass walks the whole tree once for a single rule
func pass(tree *ast.Node, rule Rule, ignored is.Check, pr *PassReport) {
	visit.Parents(tree, is.Type(ast.TypeText), func(node *ast.Node, index int, ancestors []visit.Ancestor) visit.Step {
		// a bare text root has no parent to splice into
		if len(ancestors) == 0 {
			return visit.Step{Action: visit.Skip}
		}

		var parent *ast.Node
		for _, a := range ancestors {
			if ignored(a.Node, a.Index, parent) {
				pr.Ignored++
				return visit.ResumeAt(index + 1)
			}
			parent = a.Node
		}

		pr.Visited++
		stack := make([]*ast.Node, 0, len(ancestors)+1)
		for _, a := range ancestors {
			stack = append(stack, a.Node)
		}
		stack = append(stack, node)

		return visit.ResumeAt(index + splice(parent, index, node, rule, stack, pr))
	})
}
