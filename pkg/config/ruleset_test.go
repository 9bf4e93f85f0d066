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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mdreplace/pkg/ast"
	"github.com/walteh/mdreplace/pkg/findreplace"
)

func paragraph(text string) *ast.Node {
	return ast.Parent("root", ast.Parent("paragraph", ast.Text(text)))
}

// 🧪 TestRuleset tests compiling config rules and running them over a tree
func TestRuleset(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		path  string
		input *ast.Node
		want  *ast.Node
	}{
		{
			name:  "literal_replace_is_global",
			cfg:   Config{Rules: []Rule{{Find: "a.", Replace: "b"}}},
			input: paragraph("a.a.aa"),
			want: ast.Parent("root", ast.Parent("paragraph",
				ast.Text("b"), ast.Text("b"), ast.Text("aa"))),
		},
		{
			name:  "literal_first",
			cfg:   Config{Rules: []Rule{{Find: "a", First: true, Replace: "b"}}},
			input: paragraph("aaa"),
			want: ast.Parent("root", ast.Parent("paragraph",
				ast.Text("b"), ast.Text("aa"))),
		},
		{
			name:  "regex_remove",
			cfg:   Config{Rules: []Rule{{Find: "x+", Regex: true, Remove: true}}},
			input: paragraph("axxbxc"),
			want: ast.Parent("root", ast.Parent("paragraph",
				ast.Text("a"), ast.Text("b"), ast.Text("c"))),
		},
		{
			name:  "regex_replace_expands_groups",
			cfg:   Config{Rules: []Rule{{Find: "(a)(b)", Regex: true, Replace: "$2$1[$0]$$"}}},
			input: paragraph("ab"),
			want:  paragraph("ba[ab]$"),
		},
		{
			name:  "literal_replace_keeps_dollars",
			cfg:   Config{Rules: []Rule{{Find: "usd", Replace: "$1"}}},
			input: paragraph("usd"),
			want:  paragraph("$1"),
		},
		{
			name: "wrap_with_props",
			cfg: Config{Rules: []Rule{{
				Find:  "@(walteh)",
				Regex: true,
				Wrap:  "link",
				Props: map[string]string{"url": "https://github.com/$1"},
			}}},
			input: paragraph("hi @walteh!"),
			want: ast.Parent("root", ast.Parent("paragraph",
				ast.Text("hi "),
				ast.Parent("link", ast.Text("@walteh")).WithProps(map[string]any{"url": "https://github.com/walteh"}),
				ast.Text("!"),
			)),
		},
		{
			name: "mapping_runs_after_rules",
			cfg: Config{
				Rules:   []Rule{{Find: "a", Replace: "b"}},
				Mapping: Mapping{{Find: "b", Replace: "c"}},
			},
			input: paragraph("ab"),
			want: ast.Parent("root", ast.Parent("paragraph",
				ast.Text("c"), ast.Text("c"))),
		},
		{
			name: "files_filter_skips_rule",
			cfg: Config{Rules: []Rule{
				{Find: "a", Replace: "b", Files: "docs/**"},
				{Find: "x", Replace: "y"},
			}},
			path:  "README.md",
			input: paragraph("ax"),
			want: ast.Parent("root", ast.Parent("paragraph",
				ast.Text("a"), ast.Text("y"))),
		},
		{
			name: "files_filter_selects_rule",
			cfg: Config{Rules: []Rule{
				{Find: "a", Replace: "b", Files: "docs/**"},
			}},
			path:  "docs/guide/intro.md",
			input: paragraph("ax"),
			want: ast.Parent("root", ast.Parent("paragraph",
				ast.Text("b"), ast.Text("x"))),
		},
		{
			name:  "ignore_types",
			cfg:   Config{Rules: []Rule{{Find: "a", Replace: "b"}}, Ignore: []string{"code"}},
			input: ast.Parent("root", ast.Parent("code", ast.Text("a")), ast.Text("a")),
			want:  ast.Parent("root", ast.Parent("code", ast.Text("a")), ast.Text("b")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := tt.cfg.Ruleset(tt.path)
			require.NoError(t, err)

			_, err = findreplace.Apply(context.Background(), tt.input, rs, tt.cfg.Options()...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.input)
		})
	}
}

// 🧪 TestExcluded tests exclude glob matching
func TestExcluded(t *testing.T) {
	cfg := Config{Exclude: []string{"vendor/**", "**/CHANGELOG.md"}}

	assert.True(t, cfg.Excluded("vendor/a/b.md"))
	assert.True(t, cfg.Excluded("docs/CHANGELOG.md"))
	assert.False(t, cfg.Excluded("docs/README.md"))
	assert.False(t, (&Config{}).Excluded("anything.md"))
}
