package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const TransactionsSequence = `CREATE SEQUENCE IF NOT EXISTS transactions_row_id START 1;`

const TransactionsTableSchema = `
	CREATE TABLE IF NOT EXISTS transactions (
		row_id BIGINT NOT NULL DEFAULT nextval('transactions_row_id'),
		source VARCHAR NOT NULL,
		order_id VARCHAR NOT NULL,
		order_date DATE,
		raw_date VARCHAR,
		product_name VARCHAR,
		category VARCHAR,
		customer_name VARCHAR,
		region VARCHAR,
		sales DOUBLE NOT NULL,
		quantity INTEGER NOT NULL,
		profit DOUBLE NOT NULL,
		imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (row_id)
	);
`

var bootQueries = []string{
	TransactionsSequence,
	TransactionsTableSchema,
}

type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}

	dsn := fmt.Sprintf("%s?threads=%d", settings.DbPath, threads)
	c, err := duckdb.NewConnector(dsn, func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return fmt.Errorf("boot query failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create duckdb connector: %w", err)
	}

	return sql.OpenDB(c), nil
}
