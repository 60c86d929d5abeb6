package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reqwisectl",
	Short: "Manage the ReqWise requirements-tracking server",
	Long: `reqwisectl manages the ReqWise requirements-tracking server.

It runs the API server, prepares the database schema, manages accounts and
shows the effective configuration.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
