// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/blueprints/internal/pathutil"
)

// StdoutPath selects standard output for WriteOutput.
const StdoutPath = "-"

// OutputFileMode is the permission mode for files written by WriteOutput.
const OutputFileMode os.FileMode = 0o600

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteOutput writes data to the file at path, or to stdout when path is
// empty or StdoutPath. A trailing newline is added for stdout when missing.
func WriteOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == StdoutPath {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("cliutil: writing output: %w", err)
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, _ = io.WriteString(stdout, "\n")
		}
		return nil
	}

	abs, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(abs, data, OutputFileMode); err != nil {
		return fmt.Errorf("cliutil: writing %s: %w", path, err)
	}
	return nil
}
