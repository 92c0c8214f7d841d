// Package pathutil provides path helpers for walking blueprint trees and for
// writing command output.
//
// [PathBuilder] tracks the key path of a recursive walk with push/pop
// semantics. Segments are kept as-is, so keys that contain the separator
// stay addressable; the joined form is only built when String is called:
//
//	err := pathutil.Borrow(func(path *pathutil.PathBuilder) error {
//		path.Push("form")
//		path.Push("fields")
//		// ... recurse ...
//		path.Pop()
//		return nil
//	})
//
// [SanitizeOutputPath] validates and cleans output file paths. It rejects
// symlinks:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
package pathutil
