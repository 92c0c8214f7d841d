// Package bperrors provides structured error types for blueprint resolution.
//
// Import path: github.com/erraggy/blueprints/bperrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish a missing reference from a cycle or a
// malformed directive.
//
// # Error Types
//
//   - [ParseError]: a document could not be read or decoded
//   - [ReferenceError]: extends/import resolution failures, cycles, path traversal
//   - [DirectiveError]: a directive value with an unusable shape
//   - [ResourceLimitError]: chain depth or file size limits exceeded
//   - [ConfigError]: invalid options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrReferenceNotFound]: Matches [ReferenceError] with IsNotFound=true
//   - [ErrCycleDetected]: Matches [ReferenceError] with IsCircular=true
//   - [ErrPathTraversal]: Matches [ReferenceError] with IsPathTraversal=true
//   - [ErrMalformedDirective]: Matches any [DirectiveError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	bp, err := blueprint.LoadWithOptions(blueprint.WithName("pages/default"))
//	if errors.Is(err, bperrors.ErrCycleDetected) {
//	    var refErr *bperrors.ReferenceError
//	    errors.As(err, &refErr)
//	    fmt.Println(strings.Join(refErr.Chain, " -> "))
//	}
//
// Missing references are skipped silently unless strict reference checking is
// enabled, in which case they surface as [ReferenceError] values matching
// [ErrReferenceNotFound].
package bperrors
