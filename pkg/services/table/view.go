package table

import (
	"cmp"
	"slices"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// View searches, sorts and paginates the filtered dataset.
func View(ds domain.Dataset, s domain.TableViewState) domain.TableView {
	rows := Search(ds.Transactions, s.SearchQuery)
	Sort(rows, s.SortColumn, s.SortDirection)

	perPage := s.ItemsPerPage
	if perPage <= 0 {
		perPage = domain.DefaultItemsPerPage
	}
	totalPages := TotalPages(len(rows), perPage)
	page := clamp(s.CurrentPage, totalPages)

	start := min((page-1)*perPage, len(rows))
	end := min(page*perPage, len(rows))
	out := make([]domain.TableRow, 0, end-start)
	for _, t := range rows[start:end] {
		out = append(out, domain.NewTableRow(t))
	}
	return domain.TableView{
		Rows:        out,
		TotalRows:   len(rows),
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}

// Search keeps the transactions whose product, category, customer or region
// contains query, ignoring case. The result never aliases txs.
func Search(txs []domain.Transaction, query string) []domain.Transaction {
	if strings.TrimSpace(query) == "" {
		return slices.Clone(txs)
	}
	query = strings.ToLower(query)
	out := make([]domain.Transaction, 0)
	for _, t := range txs {
		if matches(t, query) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t domain.Transaction, query string) bool {
	for _, field := range []string{t.ProductName, t.Category, t.CustomerName, t.Region} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Sort orders txs in place and keeps the relative order of equal rows.
// Unknown columns leave txs untouched.
func Sort(txs []domain.Transaction, column string, direction domain.SortDirection) {
	compare, ok := comparators[column]
	if !ok {
		return
	}
	if direction == domain.SortDesc {
		slices.SortStableFunc(txs, func(a, b domain.Transaction) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(txs, compare)
}

var comparators = map[string]func(a, b domain.Transaction) int{
	domain.ColumnOrderDate:    compareDates,
	domain.ColumnProductName:  func(a, b domain.Transaction) int { return cmp.Compare(a.ProductName, b.ProductName) },
	domain.ColumnCategory:     func(a, b domain.Transaction) int { return cmp.Compare(a.Category, b.Category) },
	domain.ColumnSales:        func(a, b domain.Transaction) int { return cmp.Compare(a.Sales, b.Sales) },
	domain.ColumnQuantity:     func(a, b domain.Transaction) int { return cmp.Compare(a.Quantity, b.Quantity) },
	domain.ColumnProfit:       func(a, b domain.Transaction) int { return cmp.Compare(a.Profit, b.Profit) },
	domain.ColumnCustomerName: func(a, b domain.Transaction) int { return cmp.Compare(a.CustomerName, b.CustomerName) },
	domain.ColumnRegion:       func(a, b domain.Transaction) int { return cmp.Compare(a.Region, b.Region) },
}

// compareDates puts undated rows before every dated one.
func compareDates(a, b domain.Transaction) int {
	switch {
	case a.HasDate && b.HasDate:
		return a.OrderDate.Compare(b.OrderDate)
	case a.HasDate:
		return 1
	case b.HasDate:
		return -1
	}
	return 0
}
