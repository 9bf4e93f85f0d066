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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClone(t *testing.T) {
	orig := Parent("paragraph",
		Text("a"),
		Parent("link", Text("b")).WithProps(map[string]any{"url": "x", "meta": map[string]any{"k": []any{"v"}}}),
	)

	clone := orig.Clone()
	assert.Equal(t, orig, clone)
	assert.NotSame(t, orig.Children[1], clone.Children[1])

	clone.Children[1].Props["meta"].(map[string]any)["k"].([]any)[0] = "changed"
	clone.Children[0].Value = "changed"
	assert.Equal(t, "a", orig.Children[0].Value)
	assert.Equal(t, "v", orig.Children[1].Props["meta"].(map[string]any)["k"].([]any)[0])
}

func TestNodeKinds(t *testing.T) {
	tests := []struct {
		name       string
		node       *Node
		wantParent bool
		wantText   bool
	}{
		{name: "text", node: Text("x"), wantText: true},
		{name: "empty_parent", node: Parent("emphasis"), wantParent: true},
		{name: "literal", node: Literal("inlineCode", "x")},
		{name: "void", node: Void("break")},
		{name: "nil", node: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantParent, tt.node.IsParent())
			assert.Equal(t, tt.wantText, tt.node.IsText())
		})
	}
}

func TestToString(t *testing.T) {
	tree := Parent("paragraph",
		Text("Some "),
		Parent("emphasis", Text("emphasis")),
		Literal("inlineCode", "code"),
		Void("break"),
		Text("."),
	)
	assert.Equal(t, "Some emphasiscode.", ToString(tree))
	assert.Equal(t, "", ToString(nil))
}
