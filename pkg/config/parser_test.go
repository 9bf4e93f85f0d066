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
)

// 🧪 TestJSONParsing tests JSON config parsing
func TestJSONParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "ordered_mapping",
			config: `{
				"rules": [{"find": "(c)", "replace": "©"}],
				"mapping": {"zz": "last", "aa": "first", "mm": ""}
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []Rule{{Find: "(c)", Replace: "©"}}, cfg.Rules)
				assert.Equal(t, Mapping{
					{Find: "zz", Replace: "last"},
					{Find: "aa", Replace: "first"},
					{Find: "mm", Replace: ""},
				}, cfg.Mapping)
			},
		},
		{
			name:        "invalid_json",
			config:      `{"rules": [}`,
			errContains: "parsing JSON",
		},
		{
			name:        "unknown_field",
			config:      `{"rules": [{"find": "a", "replace": "b", "nope": 1}]}`,
			errContains: "parsing JSON",
		},
		{
			name:        "mapping_not_an_object",
			config:      `{"mapping": ["a"]}`,
			errContains: "mapping must be an object of strings",
		},
		{
			name:        "mapping_value_not_a_string",
			config:      `{"mapping": {"a": 1}}`,
			errContains: `mapping value for "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := (&JSONParser{}).Parse(context.Background(), []byte(tt.config))
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

// 🧪 TestHCLParsing tests HCL config parsing
func TestHCLParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "rule_blocks",
			config: `
ignore  = ["code", "inlineCode"]
exclude = ["vendor/**"]

mapping = {
  "zz" = "last"
  "aa" = "first"
}

rule {
  find  = "@(\\w+)"
  regex = true
  wrap  = "link"
  props = {
    url = "https://github.com/$1"
  }
}

rule {
  find   = "TODO"
  remove = true
  files  = "docs/**"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"code", "inlineCode"}, cfg.Ignore)
				assert.Equal(t, []string{"vendor/**"}, cfg.Exclude)
				require.Len(t, cfg.Rules, 2)
				assert.Equal(t, Rule{
					Find:  `@(\w+)`,
					Regex: true,
					Wrap:  "link",
					Props: map[string]string{"url": "https://github.com/$1"},
				}, cfg.Rules[0])
				assert.Equal(t, Rule{Find: "TODO", Remove: true, Files: "docs/**"}, cfg.Rules[1])
				// sorted, HCL objects are unordered
				assert.Equal(t, Mapping{{Find: "aa", Replace: "first"}, {Find: "zz", Replace: "last"}}, cfg.Mapping)
			},
		},
		{
			name:        "invalid_syntax",
			config:      `rule {`,
			errContains: "parsing HCL",
		},
		{
			name:        "missing_find",
			config:      "rule {\n  replace = \"x\"\n}\n",
			errContains: "decoding HCL",
		},
		{
			name:        "invalid_rule",
			config:      "rule {\n  find = \"x\"\n}\n",
			errContains: "validating config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := (&HCLParser{}).Parse(context.Background(), []byte(tt.config))
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
