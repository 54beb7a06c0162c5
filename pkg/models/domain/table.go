package domain

import "time"

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const DefaultItemsPerPage = 50

// DisplayColumns are the table columns, in display order.
var DisplayColumns = []string{
	ColumnOrderDate,
	ColumnProductName,
	ColumnCategory,
	ColumnSales,
	ColumnQuantity,
	ColumnProfit,
	ColumnCustomerName,
	ColumnRegion,
}

type TableViewState struct {
	SearchQuery   string
	SortColumn    string
	SortDirection SortDirection
	CurrentPage   int
	ItemsPerPage  int
}

type TableRow struct {
	OrderDate    string
	ProductName  string
	Category     string
	Sales        float64
	Quantity     int
	Profit       float64
	CustomerName string
	Region       string
}

type TableView struct {
	Rows        []TableRow
	TotalRows   int
	TotalPages  int
	CurrentPage int
}

func NewTableRow(t Transaction) TableRow {
	date := t.RawDate
	if t.HasDate && date == "" {
		date = t.OrderDate.Format(time.DateOnly)
	}
	return TableRow{
		OrderDate:    date,
		ProductName:  t.ProductName,
		Category:     t.Category,
		Sales:        t.Sales,
		Quantity:     t.Quantity,
		Profit:       t.Profit,
		CustomerName: t.CustomerName,
		Region:       t.Region,
	}
}
