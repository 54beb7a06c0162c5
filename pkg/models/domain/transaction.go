package domain

import (
	"strings"
	"time"
)

// Source columns consumed from the transactions dataset.
const (
	ColumnOrderID      = "Order ID"
	ColumnOrderDate    = "Order Date"
	ColumnProductName  = "Product Name"
	ColumnCategory     = "Category"
	ColumnRegion       = "Region"
	ColumnCustomerName = "Customer Name"
	ColumnSales        = "Sales"
	ColumnQuantity     = "Quantity"
	ColumnProfit       = "Profit"
)

var RequiredColumns = []string{
	ColumnOrderID,
	ColumnOrderDate,
	ColumnProductName,
	ColumnCategory,
	ColumnRegion,
	ColumnCustomerName,
	ColumnSales,
	ColumnQuantity,
	ColumnProfit,
}

// Transaction is a single line item of an order.
type Transaction struct {
	OrderID      string
	OrderDate    time.Time // zero unless HasDate
	HasDate      bool
	RawDate      string // Order Date as it appeared in the source
	ProductName  string
	Category     string // Technology, Furniture, Office Supplies
	CustomerName string
	Region       string
	Sales        float64
	Quantity     int
	Profit       float64  // may be negative
	Raw          []string // every source column, aligned with Dataset.Columns
}

// Dataset is an ordered, immutable sequence of transactions together with the
// header of the source it was read from.
type Dataset struct {
	Columns      []string
	Transactions []Transaction
}

func (d Dataset) Len() int {
	return len(d.Transactions)
}

func (d Dataset) IsEmpty() bool {
	return len(d.Transactions) == 0
}

// Categories returns the distinct categories in first-seen order.
func (d Dataset) Categories() []string {
	return d.distinct(func(t Transaction) string { return t.Category })
}

// Regions returns the distinct regions in first-seen order.
func (d Dataset) Regions() []string {
	return d.distinct(func(t Transaction) string { return t.Region })
}

// LatestOrderDate returns the most recent parsable order date.
func (d Dataset) LatestOrderDate() (time.Time, bool) {
	var latest time.Time
	found := false
	for _, t := range d.Transactions {
		if t.HasDate && (!found || t.OrderDate.After(latest)) {
			latest = t.OrderDate
			found = true
		}
	}
	return latest, found
}

func (d Dataset) distinct(field func(Transaction) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, t := range d.Transactions {
		v := field(t)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"2006/01/02",
	"1/2/06",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04",
	time.RFC3339,
}

// ParseDate parses an order date in any of the layouts seen in sales exports.
// The returned time is truncated to the calendar day in UTC.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOnly(t), true
		}
	}
	return time.Time{}, false
}

func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
