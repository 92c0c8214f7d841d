package commands

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/erraggy/blueprints/internal/cliutil"
	"github.com/erraggy/blueprints/tree"
	"github.com/spf13/pflag"
)

// LookupFlags contains flags for the lookup command
type LookupFlags struct {
	File string
}

// lookupResult is the structured form of a field path resolution.
type lookupResult struct {
	Path      []string  `json:"path"                yaml:"path"`
	Remainder string    `json:"remainder,omitempty" yaml:"remainder,omitempty"`
	Node      *tree.Map `json:"node"                yaml:"node"`
}

// SetupLookupFlags creates and configures a FlagSet for the lookup command.
func SetupLookupFlags() (*pflag.FlagSet, *LookupFlags) {
	fs := newFlagSet("lookup")
	flags := &LookupFlags{}

	fs.StringVar(&flags.File, "file", "", "read a blueprint file instead of a name")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: blueprints lookup [flags] <name> <path>\n")
		Writef(output, "       blueprints lookup [flags] --file <file> <path>\n\n")
		Writef(output, "Find the form field that governs a data path. Item indexes below\n")
		Writef(output, "array fields are skipped; when the path runs past the schema the\n")
		Writef(output, "nearest array field is reported with the unmatched remainder.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  blueprints lookup pages/default header/title\n")
		Writef(output, "  blueprints lookup --separator . pages/default items.0.name\n")
	}

	return fs, flags
}

// HandleLookup executes the lookup command
func HandleLookup(args []string) error {
	fs, flags := SetupLookupFlags()
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	var name, path string
	switch {
	case flags.File != "" && fs.NArg() == 1:
		path = fs.Arg(0)
	case flags.File == "" && fs.NArg() == 2:
		name, path = fs.Arg(0), fs.Arg(1)
	default:
		fs.Usage()
		return fmt.Errorf("lookup command requires a blueprint name (or --file) and a field path")
	}

	s, err := newSession(fs)
	if err != nil {
		return err
	}
	defer s.close()

	bp, err := s.load(name, flags.File)
	if err != nil {
		return err
	}

	sep := s.cfg.Separator
	res := bp.Resolve(tree.SplitPath(path, sep), sep)
	if !res.Found() {
		return fmt.Errorf("no field matches %q", path)
	}

	out := lookupResult{Path: res.Path, Remainder: res.Remainder, Node: res.Node}
	var data []byte
	if s.cfg.Format == FormatText {
		if data, err = lookupText(out, sep); err != nil {
			return err
		}
	} else if data, err = marshalValue(out, s.cfg.Format); err != nil {
		return err
	}
	if err := cliutil.WriteOutput(stdout, "", data); err != nil {
		return err
	}
	s.printStats(bp)
	return nil
}

func lookupText(r lookupResult, sep string) ([]byte, error) {
	node, err := tree.MarshalYAML(r.Node)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	Writef(&buf, "Field: %s\n", strings.Join(r.Path, sep))
	if r.Remainder != "" {
		Writef(&buf, "Remainder: %s\n", r.Remainder)
	}
	Writef(&buf, "\n%s", node)
	return buf.Bytes(), nil
}
