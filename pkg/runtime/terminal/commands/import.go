package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	name     string
	list     bool
	env      Env
	reporter *export.Reporter
}

func NewImportCmd(env Env, reporter *export.Reporter) *cobra.Command {
	ic := &ImportCmd{env: env, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the configured dataset source into the local DuckDB store",
		Long: "Copy the configured dataset source into the local DuckDB store. " +
			"Importing under an existing name replaces that import.",
		Args: cobra.NoArgs,
		RunE: ic.run,
	}
	cmd.Flags().StringVar(&ic.name, "name", "", "Name of the import (default: the source location)")
	cmd.Flags().BoolVar(&ic.list, "list", false, "List imported sources instead of importing")
	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	db, transactions, releaseStore, err := ic.env.OpenTransactions(ctx)
	if err != nil {
		return err
	}
	defer releaseStore()

	if ic.list {
		sources, err := transactions.Sources(ctx)
		if err != nil {
			return err
		}
		return ic.reporter.Sources(sources)
	}

	loader, releaseLoader, err := ic.env.OpenLoader(ctx)
	if err != nil {
		return err
	}
	defer releaseLoader()

	ds, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", loader.Source(), err)
	}

	name := ic.name
	if name == "" {
		name = loader.Source()
	}

	records := make([]store.TransactionRecord, 0, ds.Len())
	for _, t := range ds.Transactions {
		records = append(records, adapters.MapDomainTransactionToStore(t, name))
	}

	err = duckdb.InTransaction(ctx, db, func(ctx context.Context) error {
		removed, err := transactions.Delete(ctx, name)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Info().Str("source", name).Int64("rows", removed).Msg("replacing previous import")
		}
		return transactions.Add(ctx, records)
	})
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", name, err)
	}

	stats, err := transactions.Stats(ctx, name)
	if err != nil {
		return err
	}
	return ic.reporter.Import(stats)
}
