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

package ast

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      *Node
		wantError string
	}{
		{
			name:  "paragraph",
			input: `{"type":"paragraph","children":[{"type":"text","value":"Some "},{"type":"emphasis","children":[]}]}`,
			want:  Parent("paragraph", Text("Some "), Parent("emphasis")),
		},
		{
			name:  "props",
			input: `{"type":"link","url":"x","children":[{"type":"text","value":"a"}]}`,
			want:  Parent("link", Text("a")).WithProps(map[string]any{"url": "x"}),
		},
		{
			name:  "void",
			input: `{"type":"break"}`,
			want:  Void("break"),
		},
		{
			name:      "missing_type",
			input:     `{"value":"x"}`,
			wantError: "missing a string \"type\"",
		},
		{
			name:      "bad_children",
			input:     `{"type":"paragraph","children":{"type":"text"}}`,
			wantError: "must be a list",
		},
		{
			name:      "bad_child",
			input:     `{"type":"paragraph","children":[{"value":"x"}]}`,
			wantError: "child 0",
		},
		{
			name:      "bad_value",
			input:     `{"type":"text","value":3}`,
			wantError: "must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeJSON(strings.NewReader(tt.input))
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tree := Parent("root",
		Parent("paragraph",
			Text(""),
			Parent("emphasis"),
			Literal("inlineCode", "code"),
			Parent("link", Text("x")).WithProps(map[string]any{"url": "https://example.com", "title": "t"}),
			Void("break"),
		),
	)

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, tree))
	assert.Contains(t, buf.String(), `"children": []`, "empty parents keep their children key")

	got, err := DecodeJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, tree, got)
}

func TestYAMLRoundTrip(t *testing.T) {
	tree := Parent("paragraph",
		Text("Some "),
		Parent("emphasis"),
		Parent("link", Text("x")).WithProps(map[string]any{"url": "https://example.com"}),
	)

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, tree))
	assert.True(t, strings.HasPrefix(buf.String(), "type: paragraph\n"), "type should come first: %s", buf.String())

	got, err := DecodeYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, tree, got)
}

func TestParentValueRoundTrip(t *testing.T) {
	tree := Parent("root", Parent("code", Text("x")))
	tree.Children[0].Value = "raw"

	var js bytes.Buffer
	require.NoError(t, EncodeJSON(&js, tree))
	assert.Contains(t, js.String(), `"value": "raw"`)
	got, err := DecodeJSON(&js)
	require.NoError(t, err)
	assert.Equal(t, tree, got)

	var ym bytes.Buffer
	require.NoError(t, EncodeYAML(&ym, tree))
	got, err = DecodeYAML(&ym)
	require.NoError(t, err)
	assert.Equal(t, tree, got)
}

func TestDecodeYAML(t *testing.T) {
	input := `
type: root
children:
  - type: paragraph
    children:
      - type: text
        value: hello
      - type: link
        url: x
        children: []
`
	got, err := DecodeYAML(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Parent("root", Parent("paragraph", Text("hello"), Parent("link").WithProps(map[string]any{"url": "x"}))), got)
}
