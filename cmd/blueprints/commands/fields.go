package commands

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/erraggy/blueprints/blueprint"
	"github.com/erraggy/blueprints/internal/cliutil"
	"github.com/spf13/pflag"
)

// FieldsFlags contains flags for the fields command
type FieldsFlags struct {
	File   string
	Output string
}

// fieldRow describes one field of a resolved form.
type fieldRow struct {
	Path  string `json:"path"            yaml:"path"`
	Type  string `json:"type,omitempty"  yaml:"type,omitempty"`
	Label string `json:"label"           yaml:"label"`
	Array bool   `json:"array,omitempty" yaml:"array,omitempty"`
}

// SetupFieldsFlags creates and configures a FlagSet for the fields command.
func SetupFieldsFlags() (*pflag.FlagSet, *FieldsFlags) {
	fs := newFlagSet("fields")
	flags := &FieldsFlags{}

	fs.StringVar(&flags.File, "file", "", "read a blueprint file instead of a name")
	fs.StringVarP(&flags.Output, "output", "o", "", "write the listing to a file instead of stdout")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: blueprints fields [flags] <name>\n\n")
		Writef(output, "List the form fields of a resolved blueprint with their labels.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  blueprints fields pages/default\n")
		Writef(output, "  blueprints fields --separator . -f yaml pages/default\n")
	}

	return fs, flags
}

// HandleFields executes the fields command
func HandleFields(args []string) error {
	fs, flags := SetupFieldsFlags()
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("fields command takes at most one blueprint name")
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

	rows := fieldRows(bp, s.cfg.Separator)
	var data []byte
	if s.cfg.Format == FormatText {
		data = fieldTable(rows)
	} else if data, err = marshalValue(rows, s.cfg.Format); err != nil {
		return err
	}
	if err := cliutil.WriteOutput(stdout, flags.Output, data); err != nil {
		return err
	}
	s.printStats(bp)
	return nil
}

// fieldRows flattens the form fields of bp in document order.
func fieldRows(bp *blueprint.Blueprint, separator string) []fieldRow {
	fields := bp.FieldList()
	rows := make([]fieldRow, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, fieldRow{
			Path:  strings.Join(f.Path, separator),
			Type:  f.Type,
			Label: f.Label,
			Array: f.Array,
		})
	}
	return rows
}

func fieldTable(rows []fieldRow) []byte {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	Writef(tw, "PATH\tTYPE\tLABEL\n")
	for _, r := range rows {
		path := r.Path
		if r.Array {
			path += "[]"
		}
		Writef(tw, "%s\t%s\t%s\n", path, r.Type, r.Label)
	}
	_ = tw.Flush()
	return buf.Bytes()
}
