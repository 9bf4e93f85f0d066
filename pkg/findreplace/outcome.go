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
	"github.com/walteh/mdreplace/pkg/ast"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Match describes one occurrence handed to a Replacer
type Match struct {
	Value  string      // Matched text
	Groups []string    // Capture groups, "" when a group did not participate
	Index  int         // Byte offset of the match in Input
	Input  string      // Full value of the text node being scanned
	Stack  []*ast.Node // Ancestors from the root down, ending with the text node
}

// 🔄 Replacer decides what replaces one match
type Replacer func(m Match) Outcome

type outcomeKind int

const (
	kindRemove outcomeKind = iota
	kindKeep
	kindLiteral
	kindNodes
)

// 📦 Outcome is what a Replacer asks for. The zero value removes the match.
type Outcome struct {
	kind  outcomeKind
	text  string
	nodes []*ast.Node
}

// Keep rejects the match: its text stays as plain text and scanning moves past it
func Keep() Outcome {
	return Outcome{kind: kindKeep}
}

// Remove deletes the matched text
func Remove() Outcome {
	return Outcome{kind: kindRemove}
}

// Literal replaces the match with a text node; empty text removes the match
func Literal(text string) Outcome {
	if text == "" {
		return Remove()
	}
	return Outcome{kind: kindLiteral, text: text}
}

// Nodes replaces the match with the given nodes; no nodes removes the match
func Nodes(nodes ...*ast.Node) Outcome {
	out := make([]*ast.Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return Remove()
	}
	return Outcome{kind: kindNodes, nodes: out}
}

// IsKeep reports whether the outcome rejects the match
func (o Outcome) IsKeep() bool {
	return o.kind == kindKeep
}

// IsRemove reports whether the outcome deletes the match
func (o Outcome) IsRemove() bool {
	return o.kind == kindRemove
}

// 🧱 build returns the nodes to splice in for this outcome
func (o Outcome) build() []*ast.Node {
	switch o.kind {
	case kindLiteral:
		return []*ast.Node{ast.Text(o.text)}
	case kindNodes:
		return o.nodes
	default:
		return nil
	}
}

// clone copies the nodes of the outcome so a constant can be reused per match
func (o Outcome) clone() Outcome {
	if o.kind != kindNodes {
		return o
	}
	return Outcome{kind: kindNodes, nodes: ast.CloneAll(o.nodes)}
}

// 🔄 ToOutcome maps a loosely typed replacement value onto an Outcome:
//   - nil: remove
//   - false: keep
//   - string: literal, empty removes
//   - *ast.Node, []*ast.Node: nodes
//   - Outcome: itself
func ToOutcome(v any) (Outcome, error) {
	switch t := v.(type) {
	case nil:
		return Remove(), nil
	case Outcome:
		return t, nil
	case bool:
		if t {
			return Outcome{}, errors.Errorf("%w: true is not a replacement", ErrInvalidRuleset)
		}
		return Keep(), nil
	case string:
		return Literal(t), nil
	case *ast.Node:
		return Nodes(t), nil
	case []*ast.Node:
		return Nodes(t...), nil
	default:
		return Outcome{}, errors.Errorf("%w: unsupported replacement %T", ErrInvalidRuleset, v)
	}
}

// 🏭 ToReplacer converts a replace value. Functions are used as they are;
// anything else becomes a Replacer that always returns the same outcome.
func ToReplacer(v any) (Replacer, error) {
	switch t := v.(type) {
	case Replacer:
		if t == nil {
			return constant(Remove()), nil
		}
		return t, nil
	case func(Match) Outcome:
		if t == nil {
			return constant(Remove()), nil
		}
		return Replacer(t), nil
	case func(Match) string:
		if t == nil {
			return constant(Remove()), nil
		}
		return func(m Match) Outcome { return Literal(t(m)) }, nil
	case func(Match) *ast.Node:
		if t == nil {
			return constant(Remove()), nil
		}
		return func(m Match) Outcome { return Nodes(t(m)) }, nil
	}

	o, err := ToOutcome(v)
	if err != nil {
		return nil, err
	}
	return constant(o), nil
}

func constant(o Outcome) Replacer {
	return func(Match) Outcome { return o.clone() }
}
