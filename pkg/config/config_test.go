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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	// Save original parsers
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	// Reset parsers
	parsers = nil

	mockParser := &struct {
		Parser
	}{}

	Register(mockParser)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Equal(t, mockParser, parsers[0], "registered parser should match")
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "yaml_file", filename: ".mdreplace.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: "rules.yml", want: &YAMLParser{}},
		{name: "json_file", filename: "rules.JSON", want: &JSONParser{}},
		{name: "hcl_file", filename: "rules.hcl", want: &HCLParser{}},
		{name: "unknown_extension", filename: "rules.txt", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should not find a parser")
				return
			}
			assert.IsType(t, tt.want, got, "parser type should match")
		})
	}
}

// 🧪 TestValidate tests config validation
func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		errContains string
	}{
		{
			name: "valid_rules_and_mapping",
			cfg: Config{
				Rules:   []Rule{{Find: "a", Replace: "b"}, {Find: "x+", Regex: true, Remove: true}},
				Mapping: Mapping{{Find: "--", Replace: "–"}},
				Ignore:  []string{"code"},
				Exclude: []string{"vendor/**"},
			},
		},
		{
			name: "mapping_only",
			cfg:  Config{Mapping: Mapping{{Find: "--", Replace: ""}}},
		},
		{
			name:        "empty_config",
			cfg:         Config{},
			errContains: "at least one rule or mapping entry is required",
		},
		{
			name:        "missing_find",
			cfg:         Config{Rules: []Rule{{Replace: "b"}}},
			errContains: "rule 0: find is required",
		},
		{
			name:        "no_action",
			cfg:         Config{Rules: []Rule{{Find: "a"}}},
			errContains: "exactly one of replace, wrap or remove is required",
		},
		{
			name:        "two_actions",
			cfg:         Config{Rules: []Rule{{Find: "a", Replace: "b", Remove: true}}},
			errContains: "exactly one of replace, wrap or remove is required",
		},
		{
			name:        "props_without_wrap",
			cfg:         Config{Rules: []Rule{{Find: "a", Replace: "b", Props: map[string]string{"url": "x"}}}},
			errContains: "props require wrap",
		},
		{
			name:        "bad_regex",
			cfg:         Config{Rules: []Rule{{Find: "(", Regex: true, Remove: true}}},
			errContains: "invalid find pattern",
		},
		{
			name:        "bad_files_glob",
			cfg:         Config{Rules: []Rule{{Find: "a", Remove: true, Files: "docs/[a"}}},
			errContains: "files: invalid glob",
		},
		{
			name:        "empty_mapping_key",
			cfg:         Config{Mapping: Mapping{{Find: "", Replace: "x"}}},
			errContains: "mapping entry 0: find is required",
		},
		{
			name:        "blank_ignore",
			cfg:         Config{Rules: []Rule{{Find: "a", Remove: true}}, Ignore: []string{" "}},
			errContains: "ignore 0: node type is required",
		},
		{
			name:        "bad_exclude_glob",
			cfg:         Config{Rules: []Rule{{Find: "a", Remove: true}}, Exclude: []string{"[a"}},
			errContains: "exclude: invalid glob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
		})
	}
}

// 🧪 TestYAMLParsing tests YAML config parsing
func TestYAMLParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "rules_and_ordered_mapping",
			config: `
ignore: [code]
exclude: ["vendor/**"]
rules:
  - find: "@(\\w+)"
    regex: true
    wrap: link
    props:
      url: https://github.com/$1
  - find: TODO
    remove: true
    files: "docs/**"
mapping:
  zz: last
  aa: first
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"code"}, cfg.Ignore)
				assert.Equal(t, []string{"vendor/**"}, cfg.Exclude)
				require.Len(t, cfg.Rules, 2)
				assert.Equal(t, `@(\w+)`, cfg.Rules[0].Find)
				assert.True(t, cfg.Rules[0].Regex)
				assert.Equal(t, "link", cfg.Rules[0].Wrap)
				assert.Equal(t, "https://github.com/$1", cfg.Rules[0].Props["url"])
				assert.True(t, cfg.Rules[1].Remove)
				assert.Equal(t, "docs/**", cfg.Rules[1].Files)
				assert.Equal(t, Mapping{{Find: "zz", Replace: "last"}, {Find: "aa", Replace: "first"}}, cfg.Mapping)
			},
		},
		{
			name:        "unknown_field",
			config:      "rules:\n  - find: a\n    replace: b\n    nope: true\n",
			errContains: "parsing YAML",
		},
		{
			name:        "mapping_not_a_map",
			config:      "mapping: [a, b]\n",
			errContains: "mapping must be a map of strings",
		},
		{
			name:        "invalid_rule",
			config:      "rules:\n  - find: a\n",
			errContains: "validating config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := (&YAMLParser{}).Parse(context.Background(), []byte(tt.config))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

// 🧪 TestLoad tests loading a config from disk
func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml_file", func(t *testing.T) {
		path := filepath.Join(dir, DefaultFile)
		require.NoError(t, os.WriteFile(path, []byte("rules:\n  - find: a\n    replace: b\n"), 0644))

		cfg, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, []Rule{{Find: "a", Replace: "b"}}, cfg.Rules)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})

	t.Run("unknown_extension", func(t *testing.T) {
		path := filepath.Join(dir, "rules.txt")
		require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

		_, err := Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no parser found for file")
	})
}

// 🧪 TestRuleString tests the one line rule description
func TestRuleString(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		want string
	}{
		{name: "literal", rule: Rule{Find: "a", Replace: "b"}, want: `"a" -> "b"`},
		{name: "global_regex_wrap", rule: Rule{Find: "x+", Regex: true, Wrap: "strong"}, want: `/x+/g -> strong(...)`},
		{name: "first_regex_remove", rule: Rule{Find: "x", Regex: true, First: true, Remove: true}, want: `/x/ -> (remove)`},
		{name: "literal_first", rule: Rule{Find: "a", First: true, Replace: "b"}, want: `"a" (first) -> "b"`},
		{name: "files", rule: Rule{Find: "a", Remove: true, Files: "*.md"}, want: `"a" -> (remove) [*.md]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.String())
		})
	}
}
