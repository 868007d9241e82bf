package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the didamcp application
var rootCmd = &cobra.Command{
	Use:   "didamcp",
	Short: "MCP server for Dida365 (TickTick China) task management",
	Long: `didamcp exposes a Dida365 account to AI assistants via the Model
Context Protocol. It aggregates tasks across all projects, normalizes
dates to Beijing civil time, and provides tools to query, create,
update, complete and delete tasks.

It can run as:
  - An MCP server over stdio or HTTP (default)
  - A standalone CLI for listing tasks`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "didamcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
