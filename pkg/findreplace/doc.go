/*
Package findreplace finds patterns in the text of a document tree and
replaces them with text, nothing, or new nodes.

	+-------------+
	|   Ruleset   |  Pair / List / Map / FromValue
	+------+------+
	       |
	+------+------+
	|    Pass     |  one full tree walk per rule
	+------+------+
	       |
	+------+------+
	|   Splice    |  text node -> fragments + replacement nodes
	+-------------+

🎯 Purpose:
- Autolinking, emoji substitution, typographic replacements, ...
- Keeps the rest of the tree untouched
- Never re-scans what a rule just inserted

🔄 Flow:
1. The ruleset is normalized into ordered (Pattern, Replacer) rules
2. For each rule the tree is walked depth-first
3. Text below an ignored ancestor is skipped
4. Each match asks the Replacer for an Outcome (Keep, Remove, Literal, Nodes)
5. The text node is replaced in its parent by the gaps and the outcomes
6. The walk resumes right after the inserted nodes

📝 Order matters:
Every rule runs on the tree the previous rule produced, so nodes inserted by
one rule are scanned by the rules after it, but never by the rule itself.

🔍 Example:

	tree := ast.Parent("paragraph", ast.Text("Some emphasis."))

	_, err := findreplace.FindAndReplace(ctx, tree,
		findreplace.Pair("emphasis", findreplace.Replacer(func(m findreplace.Match) findreplace.Outcome {
			return findreplace.Nodes(ast.Parent("emphasis", ast.Text(m.Value)))
		})),
		findreplace.WithIgnore([]string{"link", "inlineCode"}),
	)
*/
package findreplace
