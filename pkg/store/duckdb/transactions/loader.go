package transactions

import (
	"context"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Loader serves a previously imported source as a dataset.
type Loader struct {
	store  Store
	source string
}

func NewLoader(store Store, source string) *Loader {
	return &Loader{store: store, source: source}
}

func (l *Loader) Load(ctx context.Context) (domain.Dataset, error) {
	records, err := l.store.List(ctx, l.source)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("load imported transactions: %w", err)
	}
	return adapters.MapStoreTransactionsToDataset(records), nil
}

func (l *Loader) Source() string {
	if l.source == "" {
		return "duckdb"
	}
	return "duckdb:" + l.source
}
