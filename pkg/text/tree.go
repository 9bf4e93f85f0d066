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

package text

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/mdreplace/pkg/ast"
	"github.com/walteh/mdreplace/pkg/findreplace"
	"gitlab.com/tozd/go/errors"
)

// 🌳 TreeTextReplacer implements TextReplacer by running the tree engine over
// a root holding the content as a single text node
type TreeTextReplacer struct {
	opts []findreplace.Option
}

// NewTreeTextReplacer creates a new TreeTextReplacer
func NewTreeTextReplacer(opts ...findreplace.Option) *TreeTextReplacer {
	return &TreeTextReplacer{opts: opts}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *TreeTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules findreplace.Ruleset) (*ReplacementResult, error) {
	// Read all content
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	// Create result with original content
	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	root := ast.Parent("root", ast.Text(string(originalContent)))

	report, err := findreplace.Apply(ctx, root, rules, r.opts...)
	if err != nil {
		return nil, errors.Errorf("applying rules: %w", err)
	}

	result.ModifiedContent = []byte(ast.ToString(root))
	result.ReplacementCount = report.Replacements()
	result.WasModified = !bytes.Equal(originalContent, result.ModifiedContent)

	zerolog.Ctx(ctx).Trace().
		Int("replacements", result.ReplacementCount).
		Bool("modified", result.WasModified).
		Msg("replaced text")

	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *TreeTextReplacer) ValidateRules(rules findreplace.Ruleset) error {
	if _, err := rules.Rules(); err != nil {
		return errors.Errorf("validating rules: %w", err)
	}
	return nil
}
