package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts a format name in any case; "excel" is an alias of xlsx.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	case "excel":
		return FormatXLSX, nil
	case "":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
}

// Exporter writes a dataset in one file format.
type Exporter interface {
	Export(data *Data, w io.Writer) error
	GetContentType() string
	GetFileExtension() string
}

// Data is the filtered view being exported.
type Data struct {
	Title     string
	Dataset   domain.Dataset
	KPI       domain.KPI
	Filters   domain.FilterState
	CreatedAt time.Time
}

func (d *Data) rows() []domain.TableRow {
	rows := make([]domain.TableRow, 0, d.Dataset.Len())
	for _, t := range d.Dataset.Transactions {
		rows = append(rows, domain.NewTableRow(t))
	}
	return rows
}

// cells returns a table row in display column order.
func cells(r domain.TableRow) []interface{} {
	return []interface{}{
		r.OrderDate,
		r.ProductName,
		r.Category,
		r.Sales,
		r.Quantity,
		r.Profit,
		r.CustomerName,
		r.Region,
	}
}

// DescribeFilters renders the active filters on one line.
func DescribeFilters(f domain.FilterState) string {
	parts := make([]string, 0, 3)
	if f.DateRange.IsSet() {
		parts = append(parts, fmt.Sprintf("%s to %s", f.DateRange.Start, f.DateRange.End))
	}
	if len(f.Categories) > 0 {
		parts = append(parts, "categories: "+strings.Join(f.Categories, ", "))
	}
	if len(f.Regions) > 0 {
		parts = append(parts, "regions: "+strings.Join(f.Regions, ", "))
	}
	if len(parts) == 0 {
		return "No filters"
	}
	return strings.Join(parts, "; ")
}
