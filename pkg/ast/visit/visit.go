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

// Package visit walks a tree depth-first, reporting the ancestor chain of
// every visited node.
package visit

import (
	"github.com/walteh/mdreplace/pkg/ast"
	"github.com/walteh/mdreplace/pkg/ast/is"
)

// 🚦 Action tells the walker what to do after a visitor returns
type Action int

const (
	Continue Action = iota // descend into the node, then go on with siblings
	Skip                   // do not descend into the node
	Exit                   // stop the whole walk
)

// Step is a visitor result. When Resume is set the walker continues with
// the sibling at index Next in the node's parent instead of index+1.
type Step struct {
	Action Action
	Next   int
	Resume bool
}

// ResumeAt continues the walk at sibling index next without descending
func ResumeAt(next int) Step {
	return Step{Action: Skip, Next: next, Resume: true}
}

// Ancestor is a node on the path from the root, with its index in its own parent
type Ancestor struct {
	Node  *ast.Node
	Index int // -1 for the root
}

// 👀 Visitor is called for nodes that pass the test. ancestors runs from the
// root down to the node's parent and is only valid during the call.
type Visitor func(node *ast.Node, index int, ancestors []Ancestor) Step

// 🔄 Parents walks tree in pre-order and calls visit for every node passing test.
// Visitors may replace the node in its parent's children; the returned step
// then says where to resume.
func Parents(tree *ast.Node, test is.Check, visit Visitor) {
	if tree == nil {
		return
	}
	if test == nil {
		test = is.Always
	}
	w := &walker{test: test, visit: visit}
	w.node(tree, -1, nil)
}

type walker struct {
	test      is.Check
	visit     Visitor
	ancestors []Ancestor
	exited    bool
}

// node visits n and its subtree and returns the step the visitor asked for
func (w *walker) node(n *ast.Node, index int, parent *ast.Node) Step {
	step := Step{Action: Continue}
	if w.test(n, index, parent) {
		step = w.visit(n, index, w.ancestors)
		if step.Action == Exit {
			w.exited = true
			return step
		}
	}

	if step.Action == Skip || !n.IsParent() {
		return step
	}

	w.ancestors = append(w.ancestors, Ancestor{Node: n, Index: index})
	defer func() { w.ancestors = w.ancestors[:len(w.ancestors)-1] }()

	// the length is re-read every iteration because visitors splice children
	for i := 0; i < len(n.Children); {
		child := n.Children[i]
		s := w.node(child, i, n)
		if w.exited {
			return Step{Action: Exit}
		}
		if s.Resume {
			i = max(s.Next, 0)
			continue
		}
		i++
	}

	return step
}
