package main

import (
	"fmt"
	"os"

	"github.com/erraggy/blueprints"
	"github.com/erraggy/blueprints/cmd/blueprints/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	var handler func([]string) error

	switch command {
	case "version", "-v", "--version":
		fmt.Println(blueprints.CurrentBuild())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "resolve":
		handler = commands.HandleResolve
	case "fields":
		handler = commands.HandleFields
	case "lookup":
		handler = commands.HandleLookup
	case "list":
		handler = commands.HandleList
	case "mcp":
		handler = commands.HandleMCP
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err := handler(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `blueprints %s - resolve extends and import directives in blueprint documents

Usage:
  blueprints <command> [flags] [arguments]

Commands:
  resolve    Print the merged document of a blueprint
  fields     List the form fields of a blueprint with their labels
  lookup     Find the field that governs a data path
  list       List the blueprints available under a scheme
  mcp        Serve blueprint tools over MCP (stdio)
  version    Show build information
  help       Show this help

Configuration is read from .blueprints.yaml, BLUEPRINTS_* environment
variables and flags, in increasing precedence. Run
'blueprints <command> --help' for the flags of a command.
`, blueprints.Version())
}
