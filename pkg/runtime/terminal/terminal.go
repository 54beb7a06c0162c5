package terminal

import (
	"context"
	"database/sql"
	"io"
	"os"
	"strings"
	"time"

	"github.com/de-tools/sales-atlas/pkg/config"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/dataset"
	"github.com/de-tools/sales-atlas/pkg/services/source"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/transactions"
	"github.com/de-tools/sales-atlas/pkg/store/warehouse"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *export.Reporter
	rootCmd  *cobra.Command
	now      func() time.Time

	cfgPath  string
	source   string
	dbPath   string
	logLevel string
	cfg      *config.Config
	db       *sql.DB
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Clock  func() time.Time
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
		now:      opts.Clock,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

// ExecuteContext runs the command line given by args, or os.Args when none
// are passed.
func (cli *CLI) ExecuteContext(ctx context.Context, args ...string) error {
	if args != nil {
		cli.rootCmd.SetArgs(args)
	}
	defer cli.closeDB()
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "atlas",
		Short:             "Superstore sales analytics",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "Path to the atlas config file (default ./atlas.yaml)")
	cmd.PersistentFlags().StringVarP(&cli.source, "source", "s", "",
		"Dataset source: URL, file path, s3://bucket/key, duckdb, snowflake or databricks")
	cmd.PersistentFlags().StringVar(&cli.dbPath, "duckdb", "", "Path to the local DuckDB database")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level (default from config)")

	cmd.AddCommand(commands.NewSummaryCmd(cli, cli.reporter))
	cmd.AddCommand(commands.NewAskCmd(cli, cli.reporter))
	cmd.AddCommand(commands.NewTableCmd(cli, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(cli))
	cmd.AddCommand(commands.NewImportCmd(cli, cli.reporter))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cli.cfgPath)
	if err != nil {
		return err
	}
	if cli.source != "" {
		cfg.Dataset.Source = cli.source
	}
	if cli.dbPath != "" {
		cfg.DuckDB.Path = cli.dbPath
	}
	if cli.logLevel != "" {
		cfg.Log.Level = cli.logLevel
	}
	cli.cfg = cfg

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

// openDB opens the local DuckDB database once per run; a file can only be
// held by one instance.
func (cli *CLI) openDB() (*sql.DB, error) {
	if cli.db != nil {
		return cli.db, nil
	}
	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath:  cli.cfg.DuckDB.Path,
		Threads: cli.cfg.DuckDB.Threads,
	})
	if err != nil {
		return nil, err
	}
	cli.db = db
	return db, nil
}

func (cli *CLI) closeDB() {
	if cli.db == nil {
		return
	}
	_ = cli.db.Close()
	cli.db = nil
}

func (cli *CLI) OpenLoader(ctx context.Context) (dataset.Loader, func(), error) {
	var deps source.Dependencies
	if strings.TrimSpace(cli.cfg.Dataset.Source) == warehouse.DriverDuckDB {
		db, err := cli.openDB()
		if err != nil {
			return nil, nil, err
		}
		deps.DuckDB = db
	}

	src, err := source.New(ctx, cli.cfg.Dataset, deps)
	if err != nil {
		return nil, nil, err
	}
	return src.Loader, release(ctx, src.Close), nil
}

func (cli *CLI) OpenSession(ctx context.Context) (*dashboard.Session, func(), error) {
	loader, releaseLoader, err := cli.OpenLoader(ctx)
	if err != nil {
		return nil, nil, err
	}

	// a failed load leaves the store empty in the failed state; commands
	// still run against it and report the error through the status
	store := dataset.NewStore()
	if err := store.Load(ctx, loader); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("source", loader.Source()).Msg("continuing with an empty dataset")
	}
	return dashboard.NewSession(store, dashboard.WithClock(cli.now)), releaseLoader, nil
}

func (cli *CLI) OpenTransactions(ctx context.Context) (*sql.DB, transactions.Store, func(), error) {
	db, err := cli.openDB()
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := transactions.NewStore(db)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, store, func() {}, nil
}

func release(ctx context.Context, closer func() error) func() {
	return func() {
		if err := closer(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to release dataset source")
		}
	}
}
