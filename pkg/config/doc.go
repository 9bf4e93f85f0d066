/*
Package config loads the rules mdreplace runs over documents.

	            +--------------+
	            |    Config    |
	            | (rules, map) |
	            +------+-------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+
	                   |
	                   v
	        +----------+----------+
	        | findreplace.Ruleset |
	        +---------------------+

🎯 Purpose:
- Picks a parser by file extension
- Validates rules before anything is rewritten
- Compiles rules into a findreplace.Ruleset per file

🔄 Flow:
1. Reads the config file
2. Parses format-specific syntax
3. Validates every rule, mapping entry and glob
4. Compiles the rules that apply to a given path

📝 Rules:
Each rule has a find value and exactly one action. A find value is literal
text unless regex is set. first limits a rule to the first match of each
text node. In regex rules, $0 and $1..$n in replace and props expand to the
match and its groups.

	rules:
	  - find: "@(\\w+)"
	    regex: true
	    wrap: link
	    props:
	      url: https://github.com/$1
	  - find: "(c)"
	    replace: "©"
	  - find: TODO
	    remove: true
	    files: "docs/**"
	mapping:
	  "--": "–"
	ignore: [code, inlineCode]

The mapping keeps document order in YAML and JSON. HCL objects are unordered,
so HCL mappings run in sorted key order.

🔍 Example:

	cfg, err := config.Load(ctx, ".mdreplace.yaml")
	if err != nil {
		return err
	}

	rs, err := cfg.Ruleset("README.md")
	if err != nil {
		return err
	}

	_, err = findreplace.Apply(ctx, tree, rs, cfg.Options()...)
*/
package config
