package main

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/visited-countries/internal/config"
	"github.com/deppfellow/visited-countries/internal/lib/utils"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the environment and print the resolved configuration",
	Long:  "Loads the configuration the way serve does, validates it and prints it with secrets redacted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		return utils.WriteJSON(cmd.OutOrStdout(), cfg.Redacted())
	},
}

func init() {
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}
