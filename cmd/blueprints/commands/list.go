package commands

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/erraggy/blueprints/locator"
	"github.com/spf13/pflag"
)

// DefaultListPattern matches every recognized blueprint document.
const DefaultListPattern = "**/*.{yaml,yml,json,jsonc,toml}"

// ListFlags contains flags for the list command
type ListFlags struct {
	Scheme string
}

// SetupListFlags creates and configures a FlagSet for the list command.
func SetupListFlags() (*pflag.FlagSet, *ListFlags) {
	fs := newFlagSet("list")
	flags := &ListFlags{}

	fs.StringVar(&flags.Scheme, "scheme", "", "scheme to list (default: the scheme of --context)")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: blueprints list [flags] [pattern]\n\n")
		Writef(output, "List the blueprints available under a scheme across all of its layers.\n")
		Writef(output, "Patterns use doublestar syntax; the default is %s.\n\n", DefaultListPattern)
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  blueprints list --root blueprints=system/blueprints\n")
		Writef(output, "  blueprints list --root theme=themes/quark/blueprints --scheme theme 'pages/*.yaml'\n")
	}

	return fs, flags
}

// HandleList executes the list command
func HandleList(args []string) error {
	fs, flags := SetupListFlags()
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("list command takes at most one pattern")
	}

	s, err := newSession(fs)
	if err != nil {
		return err
	}
	defer s.close()

	scheme := flags.Scheme
	if scheme == "" {
		var ok bool
		if scheme, _, ok = locator.SplitScheme(s.cfg.Context); !ok {
			return fmt.Errorf("context %q has no scheme; use --scheme", s.cfg.Context)
		}
	}
	pattern := DefaultListPattern
	if fs.NArg() == 1 {
		pattern = fs.Arg(0)
	}

	found, err := s.locator.List(strings.TrimSuffix(scheme, locator.SchemeSeparator), pattern)
	if err != nil {
		return err
	}

	var data []byte
	if s.cfg.Format == FormatText {
		var buf bytes.Buffer
		for _, p := range found {
			Writef(&buf, "%s\n", p)
		}
		data = buf.Bytes()
	} else if data, err = marshalValue(found, s.cfg.Format); err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}
