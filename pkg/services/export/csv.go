package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// CSVExporter writes the source header and every source column of each
// transaction. An empty dataset produces no output at all.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Export(data *Data, w io.Writer) error {
	ds := data.Dataset
	if ds.IsEmpty() {
		return nil
	}

	header := ds.Columns
	if len(header) == 0 {
		header = domain.RequiredColumns
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range ds.Transactions {
		if err := cw.Write(record(t, header)); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", t.OrderID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func (e *CSVExporter) GetContentType() string {
	return "text/csv"
}

func (e *CSVExporter) GetFileExtension() string {
	return ".csv"
}

// record prefers the untouched source row, padded with empty fields or cut to
// the header width, and rebuilds one from the typed fields only when the
// transaction did not come from a file.
func record(t domain.Transaction, header []string) []string {
	if t.Raw != nil {
		out := make([]string, len(header))
		copy(out, t.Raw)
		return out
	}
	out := make([]string, len(header))
	for i, column := range header {
		out[i] = field(t, column)
	}
	return out
}

func field(t domain.Transaction, column string) string {
	switch column {
	case domain.ColumnOrderID:
		return t.OrderID
	case domain.ColumnOrderDate:
		return domain.NewTableRow(t).OrderDate
	case domain.ColumnProductName:
		return t.ProductName
	case domain.ColumnCategory:
		return t.Category
	case domain.ColumnRegion:
		return t.Region
	case domain.ColumnCustomerName:
		return t.CustomerName
	case domain.ColumnSales:
		return strconv.FormatFloat(t.Sales, 'f', -1, 64)
	case domain.ColumnQuantity:
		return strconv.Itoa(t.Quantity)
	case domain.ColumnProfit:
		return strconv.FormatFloat(t.Profit, 'f', -1, 64)
	}
	return ""
}

// CSV renders ds as CSV text, "" when ds is empty.
func CSV(ds domain.Dataset) (string, error) {
	var buf bytes.Buffer
	if err := NewCSVExporter().Export(&Data{Dataset: ds}, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
