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

import "strings"

// 📝 ToString concatenates the literal values below n in document order
func ToString(n *Node) string {
	var sb strings.Builder
	writeString(&sb, n)
	return sb.String()
}

func writeString(sb *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	if n.Children == nil {
		sb.WriteString(n.Value)
		return
	}
	for _, c := range n.Children {
		writeString(sb, c)
	}
}
