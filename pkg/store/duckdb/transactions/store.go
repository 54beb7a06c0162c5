package transactions

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/store"
	"github.com/de-tools/sales-atlas/pkg/store/duckdb"
)

// Store persists imported transactions in DuckDB. Add joins the transaction
// carried in ctx when there is one.
type Store interface {
	Add(ctx context.Context, records []store.TransactionRecord) error
	List(ctx context.Context, source string) ([]store.TransactionRecord, error)
	Delete(ctx context.Context, source string) (int64, error)
	Stats(ctx context.Context, source string) (*store.ImportStats, error)
	Sources(ctx context.Context) ([]string, error)
}

type transactionStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &transactionStore{db: db}, nil
}

func (s *transactionStore) Add(ctx context.Context, records []store.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO transactions (
			source, order_id, order_date, raw_date, product_name, category,
			customer_name, region, sales, quantity, profit
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)`

	var stmt *sql.Stmt
	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		stmt, err = tx.PrepareContext(ctx, query)
	} else {
		stmt, err = s.db.PrepareContext(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		var orderDate interface{}
		if r.OrderDate != nil {
			orderDate = *r.OrderDate
		}
		_, err = stmt.ExecContext(ctx,
			r.Source,
			r.OrderID,
			orderDate,
			r.RawDate,
			r.ProductName,
			r.Category,
			r.CustomerName,
			r.Region,
			r.Sales,
			r.Quantity,
			r.Profit,
		)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", r.OrderID, err)
		}
	}
	return nil
}

// List returns the transactions of source in import order. An empty source
// lists every import.
func (s *transactionStore) List(ctx context.Context, source string) ([]store.TransactionRecord, error) {
	query := `
		SELECT row_id, source, order_id, order_date, raw_date, product_name, category,
			customer_name, region, sales, quantity, profit, imported_at
		FROM transactions`
	var args []interface{}
	if source != "" {
		query += " WHERE source = ?"
		args = append(args, source)
	}
	query += " ORDER BY row_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	records := make([]store.TransactionRecord, 0)
	for rows.Next() {
		var (
			r         store.TransactionRecord
			orderDate sql.NullTime
			rawDate   sql.NullString
			product   sql.NullString
			category  sql.NullString
			customer  sql.NullString
			region    sql.NullString
		)
		if err := rows.Scan(
			&r.RowID, &r.Source, &r.OrderID, &orderDate, &rawDate, &product, &category,
			&customer, &region, &r.Sales, &r.Quantity, &r.Profit, &r.ImportedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if orderDate.Valid {
			d := orderDate.Time
			r.OrderDate = &d
		}
		r.RawDate = rawDate.String
		r.ProductName = product.String
		r.Category = category.String
		r.CustomerName = customer.String
		r.Region = region.String
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *transactionStore) Delete(ctx context.Context, source string) (int64, error) {
	query := `DELETE FROM transactions WHERE source = ?`

	var res sql.Result
	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		res, err = tx.ExecContext(ctx, query, source)
	} else {
		res, err = s.db.ExecContext(ctx, query, source)
	}
	if err != nil {
		return 0, fmt.Errorf("delete transactions of %s: %w", source, err)
	}
	return res.RowsAffected()
}

func (s *transactionStore) Stats(ctx context.Context, source string) (*store.ImportStats, error) {
	query := `SELECT COUNT(*), MIN(order_date), MAX(order_date) FROM transactions WHERE source = ?`

	var (
		total       int64
		first, last sql.NullTime
	)
	if err := s.db.QueryRowContext(ctx, query, source).Scan(&total, &first, &last); err != nil {
		return nil, fmt.Errorf("get import stats: %w", err)
	}

	stats := &store.ImportStats{Source: source, Rows: total}
	if first.Valid {
		stats.FirstAt = timePtr(first.Time)
	}
	if last.Valid {
		stats.LastAt = timePtr(last.Time)
	}
	return stats, nil
}

func (s *transactionStore) Sources(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT source FROM transactions ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	sources := make([]string, 0)
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

func timePtr(t time.Time) *time.Time {
	return &t
}
