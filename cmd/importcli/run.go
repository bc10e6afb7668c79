package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prefeitura-rio/app-contacts/internal/config"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runGroupID    string
	runOwnerID    string
	runConfigID   string
	runConfigFile string
	runAdmin      bool
	runDryRun     bool
	runOutput     string
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Import a spreadsheet into a group",
	Long: "Imports the spreadsheet into --group on behalf of --owner. With --dry-run the rows are " +
		"processed against an empty in-memory store and nothing is written to MongoDB.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := newRunEnv(runDryRun)
		if err != nil {
			return err
		}

		rows, err := readRows(env.imports, args[0])
		if err != nil {
			return err
		}

		inline, err := loadConfigFile(runConfigFile)
		if err != nil {
			return err
		}
		cfg, err := env.configs.Resolve(ctx, runOwnerID, runConfigID, inline)
		if err != nil {
			return fmt.Errorf("resolve config: %w", err)
		}

		result, err := env.imports.Import(ctx, services.ImportParams{
			GroupID: runGroupID,
			OwnerID: runOwnerID,
			IsAdmin: runAdmin,
			Config:  cfg,
			Rows:    rows,
		})
		if err != nil {
			return fmt.Errorf("import rejected: %w", err)
		}

		printSummary(cmd.OutOrStdout(), cfg, result)

		if runOutput != "" {
			if err := writeResult(runOutput, result); err != nil {
				return err
			}
		}
		if !result.Success {
			return fmt.Errorf("import stopped at row %d", lastErrorRow(result))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runGroupID, "group", "", "target group ID")
	runCmd.Flags().StringVar(&runOwnerID, "owner", "", "user ID the import runs as")
	runCmd.Flags().StringVar(&runConfigID, "config-id", "", "saved config or preset ID (default: the owner's default config)")
	runCmd.Flags().StringVar(&runConfigFile, "config-file", "", "JSON file with an inline import config")
	runCmd.Flags().BoolVar(&runAdmin, "admin", false, "run with admin privileges (allows the all_users scope)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "process against an in-memory store")
	runCmd.Flags().StringVar(&runOutput, "output", "", "write the full import result as JSON to this file")
	_ = runCmd.MarkFlagRequired("group")
	_ = runCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(runCmd)
}

// runEnv holds the services of one CLI import
type runEnv struct {
	imports *services.ImportService
	configs *services.ImportConfigService
}

func newRunEnv(dryRun bool) (*runEnv, error) {
	logger := logging.Logger

	if dryRun {
		store := services.NewMemoryContactStore()
		store.AddGroup(models.Group{ID: runGroupID, Name: "dry-run", OwnerID: runOwnerID})
		return &runEnv{
			imports: services.NewImportService(store, phoneNormalizer(), logger, config.AppConfig.ImportMaxRows),
			configs: services.NewImportConfigService(services.NewMemoryImportConfigRepository(), nil, 0, logger),
		}, nil
	}

	if err := config.InitMongoDB(); err != nil {
		return nil, err
	}
	config.InitRedis()

	store := services.NewMongoContactStore(config.MongoDB, logger)
	return &runEnv{
		imports: services.NewImportService(store, phoneNormalizer(), logger, config.AppConfig.ImportMaxRows),
		configs: services.NewImportConfigService(
			services.NewMongoImportConfigRepository(config.MongoDB, logger),
			config.Redis,
			config.AppConfig.RedisTTL,
			logger,
		),
	}, nil
}

// loadConfigFile reads an inline config; an empty path yields nil
func loadConfigFile(path string) (*models.ImportConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg models.ImportConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidImportConfig, err)
	}
	return &cfg, nil
}

func printSummary(w io.Writer, cfg *models.ImportConfig, result *models.ImportResult) {
	stats := result.Statistics
	fmt.Fprintf(w, "group:    %s (%s)\n", result.GroupName, result.GroupID)
	fmt.Fprintf(w, "config:   %s\n", cfg.Name)
	fmt.Fprintf(w, "success:  %t\n", result.Success)
	fmt.Fprintf(w, "total:    %d\n", stats.Total)
	fmt.Fprintf(w, "created:  %d\n", stats.Created)
	fmt.Fprintf(w, "updated:  %d\n", stats.Updated)
	fmt.Fprintf(w, "skipped:  %d\n", stats.Skipped)
	fmt.Fprintf(w, "errors:   %d\n", stats.Errors)
	fmt.Fprintf(w, "regions:  %d new\n", stats.RegionsCreated)
	for _, e := range result.Errors {
		fmt.Fprintf(w, "  row %d: %s\n", e.RowNumber, e.Message)
	}
}

func writeResult(path string, result *models.ImportResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	logging.Logger.Info("import result written", zap.String("path", path))
	return nil
}

func lastErrorRow(result *models.ImportResult) int {
	if len(result.Errors) == 0 {
		return 0
	}
	return result.Errors[len(result.Errors)-1].RowNumber
}
