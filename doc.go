// Package blueprints resolves form blueprint documents.
//
// A blueprint is a YAML (or JSON, JSONC, TOML) document describing a form.
// Blueprints reuse one another through two directives:
//
//   - extends (written "@extends" or "extends@") names one or more base
//     blueprints. The document is deep-merged over its bases, later
//     entries winning and the document itself winning last. The special
//     reference "@parent" selects the same blueprint in the next, less
//     specific layer of its scheme.
//   - import (written "@import" or "import@") embeds the form of another
//     blueprint at the position of the directive, local keys winning.
//
// # Packages
//
//   - blueprint: load a blueprint by name, follow its extends chain, expand
//     imports and query the result
//   - merge: the deep merge used to fold documents
//   - directive: recognize directive keys and parse their references
//   - fieldpath: find the form field that governs a data path
//   - locator: map logical "scheme://path" names onto layered directories
//   - store: parse documents from disk or memory
//   - tree: the ordered mapping that holds every document
//   - bperrors: typed errors shared by all packages
//
// # Quick Start
//
//	loc := locator.NewLayered()
//	loc.AddLayer("blueprints", "user/blueprints")
//	loc.AddLayer("blueprints", "system/blueprints")
//
//	bp, err := blueprint.LoadWithOptions(
//	    blueprint.WithName("pages/default"),
//	    blueprint.WithLocator(loc),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(bp.Get("form/fields/title/type", "/"))
//
// # Command Line
//
// The blueprints command resolves, inspects and lists blueprints, and can
// serve the same operations to MCP clients:
//
//	blueprints resolve --root blueprints=user/blueprints --root blueprints=system/blueprints pages/default
//	blueprints fields pages/default
//	blueprints lookup pages/default items/0/name
//	blueprints list 'pages/**/*.yaml'
//	blueprints mcp
package blueprints
