package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/erraggy/blueprints/internal/mcpserver"
)

// HandleMCP starts the MCP server over stdio.
func HandleMCP(args []string) error {
	fs := newFlagSet("mcp")
	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: blueprints mcp [flags]\n\n")
		Writef(output, "Serve blueprint tools over the Model Context Protocol on stdio.\n")
		Writef(output, "Logs go to stderr; stdout carries the protocol.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
	}
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	s, err := newSession(fs)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := mcpserver.New(s.cfg, s.logger, s.registry)
	return srv.Run(ctx)
}
