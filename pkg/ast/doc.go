/*
Package ast is the document tree model that find-and-replace operates on.

	+-----------+
	|  Parent   |  type + children
	+-----+-----+
	      |
	+-----+-----+
	|  Literal  |  type + value ("text" is the one we scan)
	+-----------+

🎯 Purpose:
- Models unist / mdast style trees as *Node values
- Reads and writes trees as JSON or YAML
- Provides constructors for building replacement nodes

📝 Shape:
A node with a non-nil Children slice is a parent, even when it has no
children. Keys other than type, value and children survive a round trip in
Props.

🔍 Example:

	tree := ast.Parent("paragraph",
		ast.Text("Some "),
		ast.Parent("emphasis", ast.Text("emphasis")),
	)

	var buf bytes.Buffer
	_ = ast.EncodeJSON(&buf, tree)
*/
package ast
