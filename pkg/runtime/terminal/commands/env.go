package commands

import (
	"context"
	"database/sql"

	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/dataset"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb/transactions"
)

// Env resolves the configured dataset source and storage for a command.
// Every returned release func must be called once the command is done.
type Env interface {
	OpenLoader(ctx context.Context) (dataset.Loader, func(), error)
	OpenSession(ctx context.Context) (*dashboard.Session, func(), error)
	OpenTransactions(ctx context.Context) (*sql.DB, transactions.Store, func(), error)
}
