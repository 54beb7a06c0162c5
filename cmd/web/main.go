package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/config"
	"github.com/de-tools/sales-atlas/pkg/server"
	"github.com/de-tools/sales-atlas/pkg/services/auth"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/dataset"
	"github.com/de-tools/sales-atlas/pkg/services/source"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/warehouse"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	sourceArg string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Sales Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the atlas config file (default ./atlas.yaml)")
	rootCmd.Flags().StringVarP(&sourceArg, "source", "s", "", "Dataset source, overrides dataset.source")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if sourceArg != "" {
		cfg.Dataset.Source = sourceArg
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	var deps source.Dependencies
	if strings.TrimSpace(cfg.Dataset.Source) == warehouse.DriverDuckDB {
		db, err := duckdb.NewDB(duckdb.Settings{
			DbPath:  cfg.DuckDB.Path,
			Threads: cfg.DuckDB.Threads,
		})
		if err != nil {
			return fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		defer db.Close()
		deps.DuckDB = db
	}

	src, err := source.New(ctx, cfg.Dataset, deps)
	if err != nil {
		return fmt.Errorf("failed to resolve dataset source: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close dataset source")
		}
	}()

	store := dataset.NewStore()
	if _, err := store.LoadAsync(ctx, src.Loader); err != nil {
		return fmt.Errorf("failed to start dataset load: %w", err)
	}
	logger.Info().Str("source", src.Loader.Source()).Msg("loading dataset")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Session: dashboard.NewSession(store),
			Auth:    auth.NewGate(),
			Logger:  logger,
		},
	})
	return api.Start()
}
