/*
Package operation runs a loaded config over files on disk.

	+-------------+
	|   Runner    |
	| (errgroup)  |
	+------+------+
	       |  one goroutine per file, Jobs at a time
	+------+------+
	|   Process   |
	+------+------+
	       |
	  +----+-----+
	  |          |
	+-+----+  +--+---+
	| tree |  | text |
	+-+----+  +--+---+
	  |          |
	  +----+-----+
	       |
	+------+------+
	| diff, write |
	+-------------+

🎯 Purpose:
- Selects the rules that apply to each file
- Rewrites serialized trees (.json, .yaml, .yml) node by node
- Rewrites any other file as a single text node
- Reports one FileResult per file

🔄 Flow:
1. Skips excluded files and files no rule applies to
2. Decodes, applies and re-encodes trees, or replaces plain text
3. Builds a unified diff when asked
4. Writes the change back through a temp file and rename when asked

⚡ Notes:
- A failing file never stops the others; its error is kept in its result
- Results come back in input order whatever the Jobs limit
- Trees without replacements keep their original bytes
- Wrap rules only make sense for trees; in plain text the wrapper flattens
  back to its text

🔍 Example:

	runner, err := operation.NewRunner(operation.Options{Config: cfg, Write: true})
	if err != nil {
		return err
	}

	results, err := runner.Run(ctx, []string{"README.md", "docs/tree.json"})
	if err != nil {
		return err
	}

	return operation.Failed(results)
*/
package operation
