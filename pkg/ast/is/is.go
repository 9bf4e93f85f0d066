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

// Package is compiles loosely typed node tests into predicates.
package is

import (
	"reflect"

	"github.com/walteh/mdreplace/pkg/ast"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidTest is returned when a test value has an unsupported shape
var ErrInvalidTest = errors.Base("expected function, string, list, or object as test")

// 🎯 Check reports whether node (at index in parent) passes a test.
// index is -1 and parent nil when node is the tree root.
type Check func(node *ast.Node, index int, parent *ast.Node) bool

// Always passes every node
func Always(*ast.Node, int, *ast.Node) bool { return true }

// Never passes no node
func Never(*ast.Node, int, *ast.Node) bool { return false }

// 🔍 Type passes nodes of the given type
func Type(typ string) Check {
	return func(node *ast.Node, _ int, _ *ast.Node) bool {
		return node != nil && node.Type == typ
	}
}

// 🔍 Any passes nodes that pass at least one of the checks; no checks passes nothing
func Any(checks ...Check) Check {
	return func(node *ast.Node, index int, parent *ast.Node) bool {
		for _, c := range checks {
			if c(node, index, parent) {
				return true
			}
		}
		return false
	}
}

// 🔍 Props passes nodes whose type, value and props equal every entry of shape
func Props(shape map[string]any) Check {
	return func(node *ast.Node, _ int, _ *ast.Node) bool {
		if node == nil {
			return false
		}
		for k, want := range shape {
			var got any
			switch k {
			case "type":
				got = node.Type
			case "value":
				got = node.Value
			default:
				v, ok := node.Props[k]
				if !ok {
					return false
				}
				got = v
			}
			if !reflect.DeepEqual(got, want) {
				return false
			}
		}
		return true
	}
}

// 🏭 Convert turns a test into a Check.
//
// Supported tests:
//   - nil: passes every node
//   - string: node type
//   - []string, []any: passes when any element passes
//   - Check, func(*ast.Node, int, *ast.Node) bool: used as is
//   - map[string]any: shape of type, value and props
func Convert(test any) (Check, error) {
	switch t := test.(type) {
	case nil:
		return Always, nil
	case string:
		return Type(t), nil
	case Check:
		if t == nil {
			return Always, nil
		}
		return t, nil
	case func(*ast.Node, int, *ast.Node) bool:
		if t == nil {
			return Always, nil
		}
		return Check(t), nil
	case map[string]any:
		return Props(t), nil
	case []string:
		checks := make([]Check, len(t))
		for i, s := range t {
			checks[i] = Type(s)
		}
		return Any(checks...), nil
	case []Check:
		return Any(t...), nil
	case []any:
		checks := make([]Check, 0, len(t))
		for i, e := range t {
			c, err := Convert(e)
			if err != nil {
				return nil, errors.Errorf("test %d: %w", i, err)
			}
			checks = append(checks, c)
		}
		return Any(checks...), nil
	default:
		return nil, errors.Errorf("%w: got %T", ErrInvalidTest, test)
	}
}
