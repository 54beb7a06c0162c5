package table

import (
	"fmt"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id, date, product, category, customer, region string, sales float64, quantity int) domain.Transaction {
	t := domain.Transaction{
		OrderID:      id,
		RawDate:      date,
		ProductName:  product,
		Category:     category,
		CustomerName: customer,
		Region:       region,
		Sales:        sales,
		Quantity:     quantity,
	}
	t.OrderDate, t.HasDate = domain.ParseDate(date)
	return t
}

func fixture() domain.Dataset {
	return domain.Dataset{
		Columns: domain.RequiredColumns,
		Transactions: []domain.Transaction{
			tx("1", "3/1/2024", "Office Chair", "Furniture", "Alice Smith", "East", 100, 2),
			tx("2", "1/15/2024", "Smart Phone", "Technology", "Bob Jones", "West", 300, 1),
			tx("3", "", "Paper", "Office Supplies", "Carol White", "Central", 100, 7),
			tx("4", "2/2/2024", "Desk", "Furniture", "Dan Brown", "South", 50, 1),
		},
	}
}

func products(v domain.TableView) []string {
	out := make([]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		out = append(out, r.ProductName)
	}
	return out
}

func TestNewState(t *testing.T) {
	s := NewState()

	assert.Equal(t, domain.ColumnSales, s.SortColumn)
	assert.Equal(t, domain.SortDesc, s.SortDirection)
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, 50, s.ItemsPerPage)
	assert.Empty(t, s.SearchQuery)
}

func TestSortBy(t *testing.T) {
	s := NewState()
	s.CurrentPage = 3

	s, err := SortBy(s, domain.ColumnSales)
	require.NoError(t, err)
	assert.Equal(t, domain.SortAsc, s.SortDirection)
	assert.Equal(t, 1, s.CurrentPage)

	s, err = SortBy(s, domain.ColumnSales)
	require.NoError(t, err)
	assert.Equal(t, domain.SortDesc, s.SortDirection)

	s, _ = SortBy(s, domain.ColumnSales)
	s, err = SortBy(s, domain.ColumnRegion)
	require.NoError(t, err)
	assert.Equal(t, domain.ColumnRegion, s.SortColumn)
	assert.Equal(t, domain.SortDesc, s.SortDirection)
}

func TestSortBy_UnknownColumn(t *testing.T) {
	s := NewState()

	got, err := SortBy(s, "Order ID")

	assert.ErrorIs(t, err, domain.ErrUnknownColumn)
	assert.Equal(t, s, got)
}

func TestSetSearch_ResetsPage(t *testing.T) {
	s := NewState()
	s.CurrentPage = 4

	s = SetSearch(s, "chair")

	assert.Equal(t, "chair", s.SearchQuery)
	assert.Equal(t, 1, s.CurrentPage)
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		op         func(domain.TableViewState, int) domain.TableViewState
		expected   int
	}{
		{"next within range", 1, 3, NextPage, 2},
		{"next on last page", 3, 3, NextPage, 3},
		{"previous on first page", 1, 3, PreviousPage, 1},
		{"previous within range", 3, 3, PreviousPage, 2},
		{"set beyond last page", 1, 3, func(s domain.TableViewState, n int) domain.TableViewState { return SetPage(s, 10, n) }, 3},
		{"set below first page", 2, 3, func(s domain.TableViewState, n int) domain.TableViewState { return SetPage(s, -2, n) }, 1},
		{"empty table", 1, 0, NextPage, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.CurrentPage = tt.page

			got := tt.op(s, tt.totalPages)

			assert.Equal(t, tt.expected, got.CurrentPage)
			assert.GreaterOrEqual(t, got.CurrentPage, 1)
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		rows, perPage, expected int
	}{
		{0, 50, 1},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{120, 50, 3},
		{10, 0, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d rows of %d", tt.rows, tt.perPage), func(t *testing.T) {
			assert.Equal(t, tt.expected, TotalPages(tt.rows, tt.perPage))
		})
	}
}

func TestView_Sort(t *testing.T) {
	tests := []struct {
		name      string
		column    string
		direction domain.SortDirection
		expected  []string
	}{
		{
			name:      "sales descending keeps ties in source order",
			column:    domain.ColumnSales,
			direction: domain.SortDesc,
			expected:  []string{"Smart Phone", "Office Chair", "Paper", "Desk"},
		},
		{
			name:      "sales ascending keeps ties in source order",
			column:    domain.ColumnSales,
			direction: domain.SortAsc,
			expected:  []string{"Desk", "Office Chair", "Paper", "Smart Phone"},
		},
		{
			name:      "dates ascending put undated rows first",
			column:    domain.ColumnOrderDate,
			direction: domain.SortAsc,
			expected:  []string{"Paper", "Smart Phone", "Desk", "Office Chair"},
		},
		{
			name:      "customer descending",
			column:    domain.ColumnCustomerName,
			direction: domain.SortDesc,
			expected:  []string{"Desk", "Paper", "Smart Phone", "Office Chair"},
		},
		{
			name:      "quantity descending",
			column:    domain.ColumnQuantity,
			direction: domain.SortDesc,
			expected:  []string{"Paper", "Office Chair", "Smart Phone", "Desk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.SortColumn = tt.column
			s.SortDirection = tt.direction

			v := View(fixture(), s)

			assert.Equal(t, tt.expected, products(v))
			assert.Equal(t, 4, v.TotalRows)
			assert.Equal(t, 1, v.TotalPages)
		})
	}
}

func TestView_Search(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"product", "CHAIR", []string{"Office Chair"}},
		{"category", "furniture", []string{"Office Chair", "Desk"}},
		{"customer", "bob", []string{"Smart Phone"}},
		{"region", "centr", []string{"Paper"}},
		{"any field", "office", []string{"Office Chair", "Paper"}},
		{"no match", "zebra", []string{}},
		{"blank", "   ", []string{"Smart Phone", "Office Chair", "Paper", "Desk"}},
		{"leading space is matched", " chair", []string{"Office Chair"}},
		{"trailing space is matched", "desk ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := View(fixture(), SetSearch(NewState(), tt.query))

			assert.Equal(t, tt.expected, products(v))
			assert.Equal(t, len(tt.expected), v.TotalRows)
			assert.Equal(t, 1, v.TotalPages)
		})
	}
}

func TestView_DoesNotReorderInput(t *testing.T) {
	ds := fixture()

	View(ds, NewState())

	assert.Equal(t, "1", ds.Transactions[0].OrderID)
	assert.Equal(t, "4", ds.Transactions[3].OrderID)
}

func TestView_Paginate(t *testing.T) {
	txs := make([]domain.Transaction, 0, 120)
	for i := 0; i < 120; i++ {
		txs = append(txs, tx(fmt.Sprint(i), "1/1/2024", fmt.Sprintf("Product %03d", i), "Furniture", "Alice", "East", float64(i), 1))
	}
	ds := domain.Dataset{Columns: domain.RequiredColumns, Transactions: txs}

	s := NewState()
	s.SortColumn = domain.ColumnProductName
	s.SortDirection = domain.SortAsc

	first := View(ds, s)
	assert.Equal(t, 120, first.TotalRows)
	assert.Equal(t, 3, first.TotalPages)
	require.Len(t, first.Rows, 50)
	assert.Equal(t, "Product 000", first.Rows[0].ProductName)

	s = SetPage(s, 3, first.TotalPages)
	last := View(ds, s)
	require.Len(t, last.Rows, 20)
	assert.Equal(t, "Product 100", last.Rows[0].ProductName)
	assert.Equal(t, 3, last.CurrentPage)

	s.CurrentPage = 9
	clamped := View(ds, s)
	assert.Equal(t, 3, clamped.CurrentPage)
	assert.Len(t, clamped.Rows, 20)
}

func TestView_Empty(t *testing.T) {
	v := View(domain.Dataset{}, NewState())

	assert.NotNil(t, v.Rows)
	assert.Empty(t, v.Rows)
	assert.Equal(t, 0, v.TotalRows)
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, 1, v.CurrentPage)
}

func TestView_RowColumns(t *testing.T) {
	v := View(fixture(), SetSearch(NewState(), "desk"))

	require.Len(t, v.Rows, 1)
	assert.Equal(t, domain.TableRow{
		OrderDate:    "2/2/2024",
		ProductName:  "Desk",
		Category:     "Furniture",
		Sales:        50,
		Quantity:     1,
		CustomerName: "Dan Brown",
		Region:       "South",
	}, v.Rows[0])
}
