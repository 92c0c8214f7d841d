package commands

import (
	"fmt"

	"github.com/erraggy/blueprints/internal/cliutil"
	"github.com/spf13/pflag"
)

// ResolveFlags contains flags for the resolve command
type ResolveFlags struct {
	File   string
	Output string
	Form   bool
}

// SetupResolveFlags creates and configures a FlagSet for the resolve command.
// Returns the FlagSet and a ResolveFlags struct with bound flag variables.
func SetupResolveFlags() (*pflag.FlagSet, *ResolveFlags) {
	fs := newFlagSet("resolve")
	flags := &ResolveFlags{}

	fs.StringVar(&flags.File, "file", "", "resolve a blueprint file instead of a name")
	fs.StringVarP(&flags.Output, "output", "o", "", "write the document to a file instead of stdout")
	fs.BoolVar(&flags.Form, "form", false, "output only the form section")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: blueprints resolve [flags] <name>\n\n")
		Writef(output, "Resolve extends and import directives and print the merged document.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  blueprints resolve --root blueprints=user/blueprints --root blueprints=system/blueprints pages/default\n")
		Writef(output, "  blueprints resolve --file theme/blueprints/blog.yaml -f json\n")
		Writef(output, "  blueprints resolve --form -o form.yaml pages/default\n")
	}

	return fs, flags
}

// HandleResolve executes the resolve command
func HandleResolve(args []string) error {
	fs, flags := SetupResolveFlags()
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("resolve command takes at most one blueprint name")
	}

	s, err := newSession(fs)
	if err != nil {
		return err
	}
	defer s.close()

	bp, err := s.load(fs.Arg(0), flags.File)
	if err != nil {
		return err
	}

	doc := bp.Items()
	if flags.Form {
		if doc = bp.Form(); doc.Len() == 0 {
			return fmt.Errorf("blueprint %s has no form", bp.Name())
		}
	}

	data, err := marshalTree(doc, s.cfg.Format)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	if err := cliutil.WriteOutput(stdout, flags.Output, data); err != nil {
		return err
	}
	s.printStats(bp)
	return nil
}
