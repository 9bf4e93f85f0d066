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

import "maps"

// TypeText is the discriminant of text nodes
const TypeText = "text"

// 🌳 Node is a single node of a unist style document tree
//
// A node is a parent when Children is non-nil (an empty, non-nil slice is
// still a parent). Literal nodes carry Value instead.
type Node struct {
	Type     string         // Discriminant, e.g. "paragraph" or "text"
	Value    string         // Literal content (text, inlineCode, ...)
	Children []*Node        // Child nodes, nil for literals and void nodes
	Props    map[string]any // Extra fields such as url or title
}

// 📝 Text creates a text node
func Text(value string) *Node {
	return &Node{Type: TypeText, Value: value}
}

// 📝 Literal creates a literal node of the given type
func Literal(typ, value string) *Node {
	return &Node{Type: typ, Value: value}
}

// 📦 Parent creates a parent node; it is a parent even without children
func Parent(typ string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Type: typ, Children: children}
}

// Void creates a node that has neither value nor children (e.g. "break")
func Void(typ string) *Node {
	return &Node{Type: typ}
}

// 🔧 WithProps sets props on the node and returns it
func (n *Node) WithProps(props map[string]any) *Node {
	if n.Props == nil {
		n.Props = make(map[string]any, len(props))
	}
	maps.Copy(n.Props, props)
	return n
}

// IsParent reports whether the node can hold children
func (n *Node) IsParent() bool {
	return n != nil && n.Children != nil
}

// IsText reports whether the node is a text node
func (n *Node) IsText() bool {
	return n != nil && n.Type == TypeText
}

// 🧬 Clone returns a deep copy of the node
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Type: n.Type, Value: n.Value}
	if n.Props != nil {
		out.Props = cloneProps(n.Props)
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// CloneAll deep copies a list of nodes
func CloneAll(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

func cloneProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneProps(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
