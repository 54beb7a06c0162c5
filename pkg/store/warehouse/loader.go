package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/dataset"
	"github.com/rs/zerolog"
)

// DefaultQuery expects a table laid out like the Superstore export.
const DefaultQuery = `
	SELECT
		"Order ID", "Order Date", "Product Name", "Category", "Region",
		"Customer Name", "Sales", "Quantity", "Profit"
	FROM superstore`

// Loader reads the dataset from any database/sql driver. Result columns must
// carry the source column names.
type Loader struct {
	db     *sql.DB
	name   string
	query  string
	source string
}

func NewLoader(db *sql.DB, driverName, query string) (*Loader, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if query == "" {
		query = DefaultQuery
	}
	return &Loader{db: db, name: driverName, query: query, source: driverName}, nil
}

func (l *Loader) Source() string {
	return l.source
}

func (l *Loader) Load(ctx context.Context) (domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := l.db.QueryContext(ctx, l.query)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%s dataset query failed: %w", l.name, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close dataset query rows")
		}
	}(rows)

	columns, err := rows.Columns()
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read result columns: %w", err)
	}

	return dataset.ParseRows(ctx, columns, &rowReader{rows: rows, width: len(columns)})
}

type rowReader struct {
	rows  *sql.Rows
	width int
}

func (r *rowReader) Read() ([]string, error) {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}

	values := make([]interface{}, r.width)
	ptrs := make([]interface{}, r.width)
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan dataset row: %w", err)
	}

	record := make([]string, r.width)
	for i, v := range values {
		record[i] = format(v)
	}
	return record, nil
}

func format(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.DateOnly)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}
