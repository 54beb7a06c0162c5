package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf-8"
)

// ParseCSV reads a transactions CSV. Every required column must be present in
// the header; rows whose numeric fields cannot be parsed are skipped and
// counted, rows with an unparsable order date are kept without a date.
func ParseCSV(ctx context.Context, r io.Reader, encoding string) (domain.Dataset, error) {
	decoded, err := decode(r, encoding)
	if err != nil {
		return domain.Dataset{}, err
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Dataset{}, fmt.Errorf("empty csv: %w", domain.ErrMissingColumn)
		}
		return domain.Dataset{}, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	return ParseRows(ctx, header, reader)
}

// RowReader yields raw records until io.EOF. *csv.Reader satisfies it.
type RowReader interface {
	Read() ([]string, error)
}

// ParseRows maps records laid out by header into a dataset.
func ParseRows(ctx context.Context, header []string, rows RowReader) (domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	index, err := columnIndex(header)
	if err != nil {
		return domain.Dataset{}, err
	}

	ds := domain.Dataset{
		Columns:      header,
		Transactions: make([]domain.Transaction, 0),
	}

	skipped := 0
	line := 1
	for {
		record, err := rows.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("read line %d: %w", line, err)
		}

		t, err := parseRecord(record, index)
		if err != nil {
			skipped++
			logger.Debug().Err(err).Int("line", line).Msg("skipping malformed row")
			continue
		}
		ds.Transactions = append(ds.Transactions, t)
	}

	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Int("rows", ds.Len()).Msg("dataset contained malformed rows")
	}
	return ds, nil
}

func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingLatin1, "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case EncodingUTF8, "utf8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

func trimBOM(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.TrimPrefix(name, "\u00ef\u00bb\u00bf")
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}

	var missing []string
	for _, name := range domain.RequiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRecord(record []string, index map[string]int) (domain.Transaction, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	if len(record) <= maxIndex(index) {
		return domain.Transaction{}, fmt.Errorf("expected at least %d fields, got %d", maxIndex(index)+1, len(record))
	}

	sales, err := parseAmount(field(domain.ColumnSales))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("sales: %w", err)
	}
	profit, err := parseAmount(field(domain.ColumnProfit))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("profit: %w", err)
	}
	quantity, err := parseQuantity(field(domain.ColumnQuantity))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("quantity: %w", err)
	}

	t := domain.Transaction{
		OrderID:      field(domain.ColumnOrderID),
		RawDate:      field(domain.ColumnOrderDate),
		ProductName:  field(domain.ColumnProductName),
		Category:     field(domain.ColumnCategory),
		CustomerName: field(domain.ColumnCustomerName),
		Region:       field(domain.ColumnRegion),
		Sales:        sales,
		Quantity:     quantity,
		Profit:       profit,
		Raw:          record,
	}
	t.OrderDate, t.HasDate = domain.ParseDate(t.RawDate)
	return t, nil
}

func maxIndex(index map[string]int) int {
	m := 0
	for _, name := range domain.RequiredColumns {
		if index[name] > m {
			m = index[name]
		}
	}
	return m
}

func parseAmount(value string) (float64, error) {
	value = strings.NewReplacer("$", "", ",", "").Replace(value)
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", value)
	}
	return f, nil
}

func parseQuantity(value string) (int, error) {
	if q, err := strconv.Atoi(value); err == nil {
		return q, nil
	}
	f, err := parseAmount(value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("fractional quantity %q", value)
	}
	return int(f), nil
}
