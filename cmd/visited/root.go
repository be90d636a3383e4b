package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command. See serve.go and config.go for subcommands.
var rootCmd = &cobra.Command{
	Use:           "visited",
	Short:         "Users and the countries they visited",
	Long:          "HTTP service that registers users and tracks which countries each user has visited.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
