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

package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/mdreplace/pkg/ast"
	"github.com/walteh/mdreplace/pkg/findreplace"
	"github.com/walteh/mdreplace/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📄 Process runs the config over a single file
func (r *Runner) Process(ctx context.Context, path string) FileResult {
	logger := zerolog.Ctx(ctx).With().Str("file", path).Logger()
	ctx = logger.WithContext(ctx)

	result := FileResult{Path: path, Kind: KindOf(path)}

	cfg := r.opts.Config
	if cfg.Excluded(path) {
		result.Skipped = true
		result.Reason = "excluded"
		return result
	}

	rs, err := cfg.Ruleset(path)
	if err != nil {
		result.Err = errors.Errorf("compiling rules: %w", err)
		return result
	}
	result.Rules = rs.Len()
	if result.Rules == 0 {
		result.Skipped = true
		result.Reason = "no rules"
		return result
	}

	original, err := os.ReadFile(path)
	if err != nil {
		result.Err = errors.Errorf("reading file: %w", err)
		return result
	}

	var modified []byte
	switch result.Kind {
	case KindTree:
		modified, result.Replacements, err = r.replaceTree(ctx, path, original, rs)
	default:
		modified, result.Replacements, err = r.replaceText(ctx, original, rs)
	}
	if err != nil {
		result.Err = err
		return result
	}

	result.Modified = !bytes.Equal(original, modified)
	if !result.Modified {
		logger.Debug().Msg("no change")
		return result
	}

	if r.opts.Diff {
		result.Diff, err = unifiedDiff(path, string(original), string(modified))
		if err != nil {
			result.Err = err
			return result
		}
	}

	if r.opts.Write {
		if err := writeFileAtomic(path, modified); err != nil {
			result.Err = err
			return result
		}
		result.Written = true
	}

	logger.Debug().
		Int("replacements", result.Replacements).
		Bool("written", result.Written).
		Msg("file processed")

	return result
}

// 🌳 replaceTree decodes a serialized tree, applies the rules and encodes it back
// in the same format
func (r *Runner) replaceTree(ctx context.Context, path string, content []byte, rs findreplace.Ruleset) ([]byte, int, error) {
	isJSON := strings.EqualFold(filepath.Ext(path), ".json")

	var (
		tree *ast.Node
		err  error
	)
	if isJSON {
		tree, err = ast.DecodeJSON(bytes.NewReader(content))
	} else {
		tree, err = ast.DecodeYAML(bytes.NewReader(content))
	}
	if err != nil {
		return nil, 0, errors.Errorf("decoding tree: %w", err)
	}

	report, err := findreplace.Apply(ctx, tree, rs, r.opts.Config.Options()...)
	if err != nil {
		return nil, 0, errors.Errorf("applying rules: %w", err)
	}

	// an untouched tree keeps its original bytes
	if report.Replacements() == 0 {
		return content, 0, nil
	}

	var buf bytes.Buffer
	if isJSON {
		err = ast.EncodeJSON(&buf, tree)
	} else {
		err = ast.EncodeYAML(&buf, tree)
	}
	if err != nil {
		return nil, 0, errors.Errorf("encoding tree: %w", err)
	}

	return buf.Bytes(), report.Replacements(), nil
}

// 📝 replaceText treats the whole file as a single text node
func (r *Runner) replaceText(ctx context.Context, content []byte, rs findreplace.Ruleset) ([]byte, int, error) {
	replacer := text.NewTreeTextReplacer(r.opts.Config.Options()...)

	res, err := replacer.ReplaceText(ctx, bytes.NewReader(content), rs)
	if err != nil {
		return nil, 0, errors.Errorf("replacing text: %w", err)
	}

	return res.ModifiedContent, res.ReplacementCount, nil
}
