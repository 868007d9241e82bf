// Package cmd implements the command-line interface for didamcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing Dida365 task tools for AI assistants
//   - list: Aggregate and print tasks from the command line
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
