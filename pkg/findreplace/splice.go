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
	"slices"

	"github.com/walteh/mdreplace/pkg/ast"
)

// ✂️ splice runs rule over the text node at parent.Children[index] and
// replaces it with the resulting sequence. It returns how many nodes now
// occupy that position; the caller resumes at index plus that count.
func splice(parent *ast.Node, index int, node *ast.Node, rule Rule, stack []*ast.Node, pr *PassReport) int {
	value := node.Value
	matches := rule.Find.find(value)
	if len(matches) == 0 {
		return 1
	}

	var nodes []*ast.Node
	start := 0

	for _, loc := range matches {
		position, end := loc[0], loc[1]
		pr.Matches++

		outcome := rule.Replace(Match{
			Value:  value[position:end],
			Groups: groups(value, loc),
			Index:  position,
			Input:  value,
			Stack:  stack,
		})

		if outcome.IsKeep() {
			// the matched text is picked up by the next gap or the tail
			pr.Rejected++
			continue
		}

		if start != position {
			nodes = append(nodes, ast.Text(value[start:position]))
		}
		nodes = append(nodes, outcome.build()...)
		start = end
		pr.Replaced++
	}

	if start < len(value) {
		nodes = append(nodes, ast.Text(value[start:]))
	}

	parent.Children = slices.Replace(parent.Children, index, index+1, nodes...)
	return len(nodes)
}

// groups extracts the capture groups of one match
func groups(value string, loc []int) []string {
	if len(loc) <= 2 {
		return nil
	}
	out := make([]string, 0, len(loc)/2-1)
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			out = append(out, "")
			continue
		}
		out = append(out, value[loc[i]:loc[i+1]])
	}
	return out
}
