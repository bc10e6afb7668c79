package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prefeitura-rio/app-contacts/internal/config"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/services"
	"github.com/prefeitura-rio/app-contacts/internal/utils"
	"github.com/spf13/cobra"
)

var parseLimit int

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Decode a spreadsheet and print the normalized rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service := services.NewImportService(nil, phoneNormalizer(), logging.Logger, 0)
		rows, err := readRows(service, args[0])
		if err != nil {
			return err
		}

		preview := service.Preview(rows)
		if parseLimit > 0 && len(preview.Rows) > parseLimit {
			preview.Rows = preview.Rows[:parseLimit]
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(preview)
	},
}

func init() {
	parseCmd.Flags().IntVar(&parseLimit, "limit", 0, "max number of rows to print (0 prints all)")
	rootCmd.AddCommand(parseCmd)
}

// readRows opens and decodes the spreadsheet at path
func readRows(service *services.ImportService, path string) ([]models.ParsedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := service.ReadRows(f, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func phoneNormalizer() *utils.PhoneNormalizer {
	if config.AppConfig == nil {
		return utils.DefaultPhoneNormalizer
	}
	return utils.NewPhoneNormalizer(config.AppConfig.PhoneStructuralFallback)
}
