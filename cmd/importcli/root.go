package main

import (
	"fmt"
	"os"

	"github.com/prefeitura-rio/app-contacts/internal/config"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "importcli",
	Short: "Operator tool for contact spreadsheet imports",
	Long:  "Parses contact spreadsheets and runs imports against MongoDB or, with --dry-run, against an in-memory store.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.InitLogger(); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		if err := config.LoadConfig(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Logger.Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
