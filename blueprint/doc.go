// Package blueprint resolves form blueprint documents.
//
// A blueprint is a nested mapping describing a form: metadata plus a tree of
// field definitions under "form.fields". Two directives compose blueprints:
//
//	@extends: pages/default      # layer this document over an ancestor
//	form:
//	  fields:
//	    header:
//	      import@: partials/seo  # splice another blueprint's form here
//
// A key is a directive when it starts or ends with "@"; "@extends" and
// "extends@" are the same directive. Values may be a reference string, a
// {type, context} mapping, or a list of either.
//
// # Loading
//
// [Blueprint.Load] resolves the extends chain and then expands imports:
//
//	bp := blueprint.New("pages/modular")
//	bp.Locator = loc
//	if err := bp.Load(); err != nil {
//	    return err
//	}
//	fields := bp.Fields()
//
// Ancestors are folded most-ancestral first, so the document's own values
// win over everything it extends. The special reference "@parent" selects
// the less specific layers of the document's own logical path, letting a
// theme override a plugin's blueprint while still extending it.
//
// Imported forms are merged beneath the map that holds the directive: local
// values win over imported ones.
//
// # References
//
// A reference that names a scheme ("theme://blueprints/x.yaml") is used as
// is. A bare reference is looked up in Overrides, then prefixed with
// Context (default "blueprints://"). A {type, context} reference joins its
// context and type. References without a known document suffix get
// DefaultExtension.
//
// Missing and malformed references are skipped with a warning unless
// StrictReferences is set. A document that extends or imports itself, directly
// or transitively, fails with a *bperrors.ReferenceError matching
// bperrors.ErrCycleDetected.
//
// # Field paths
//
// [Blueprint.Resolve] maps a runtime data path such as "items/0/name" to the
// field definition that governs it, stepping over indices of array fields.
package blueprint
