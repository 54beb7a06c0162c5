package filter

import (
	"testing"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id, date, category, region string, sales float64) domain.Transaction {
	t := domain.Transaction{
		OrderID:  id,
		RawDate:  date,
		Category: category,
		Region:   region,
		Sales:    sales,
		Quantity: 1,
	}
	t.OrderDate, t.HasDate = domain.ParseDate(date)
	return t
}

func fixture() domain.Dataset {
	return domain.Dataset{
		Columns: domain.RequiredColumns,
		Transactions: []domain.Transaction{
			tx("1", "1/5/2024", "Furniture", "East", 100),
			tx("2", "2/10/2024", "Technology", "West", 300),
			tx("3", "not a date", "Furniture", "West", 50),
			tx("4", "3/31/2024", "Office Supplies", "East", 20),
		},
	}
}

func ids(ds domain.Dataset) []string {
	out := make([]string, 0, ds.Len())
	for _, t := range ds.Transactions {
		out = append(out, t.OrderID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		filters  domain.FilterState
		expected []string
	}{
		{
			name:     "no filters keeps every row",
			filters:  domain.FilterState{},
			expected: []string{"1", "2", "3", "4"},
		},
		{
			name:     "single category",
			filters:  domain.FilterState{Categories: []string{"Furniture"}},
			expected: []string{"1", "3"},
		},
		{
			name:     "categories are OR-ed",
			filters:  domain.FilterState{Categories: []string{"Technology", "Office Supplies"}},
			expected: []string{"2", "4"},
		},
		{
			name: "dimensions are AND-ed",
			filters: domain.FilterState{
				Categories: []string{"Furniture"},
				Regions:    []string{"West"},
			},
			expected: []string{"3"},
		},
		{
			name: "inclusive date bounds drop undated rows",
			filters: domain.FilterState{
				DateRange: domain.DateRange{Start: "2024-01-05", End: "2024-02-10"},
			},
			expected: []string{"1", "2"},
		},
		{
			name: "single bound is ignored",
			filters: domain.FilterState{
				DateRange: domain.DateRange{Start: "2024-02-01"},
			},
			expected: []string{"1", "2", "3", "4"},
		},
		{
			name: "unparsable bound matches nothing",
			filters: domain.FilterState{
				DateRange: domain.DateRange{Start: "yesterday", End: "2024-12-31"},
			},
			expected: []string{},
		},
		{
			name: "inverted range matches nothing",
			filters: domain.FilterState{
				DateRange: domain.DateRange{Start: "2024-12-31", End: "2024-01-01"},
			},
			expected: []string{},
		},
		{
			name:     "unknown region matches nothing",
			filters:  domain.FilterState{Regions: []string{"North"}},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixture(), tt.filters)
			assert.Equal(t, tt.expected, ids(got))
			assert.Equal(t, domain.RequiredColumns, got.Columns)
		})
	}
}

func TestApply_EmptyRaw(t *testing.T) {
	got := Apply(domain.Dataset{}, domain.FilterState{Categories: []string{"Furniture"}})
	assert.True(t, got.IsEmpty())
	assert.NotNil(t, got.Transactions)
}

func TestApply_Idempotent(t *testing.T) {
	filters := domain.FilterState{
		DateRange:  domain.DateRange{Start: "2024-01-01", End: "2024-03-31"},
		Categories: []string{"Furniture", "Office Supplies"},
	}
	once := Apply(fixture(), filters)
	twice := Apply(once, filters)
	assert.Equal(t, ids(once), ids(twice))
}

func TestApply_NeverIncreasesTotals(t *testing.T) {
	sum := func(ds domain.Dataset) float64 {
		total := 0.0
		for _, t := range ds.Transactions {
			total += t.Sales
		}
		return total
	}
	raw := fixture()
	for _, f := range []domain.FilterState{
		{Regions: []string{"East"}},
		{Categories: []string{"Technology"}},
		{DateRange: domain.DateRange{Start: "2024-02-01", End: "2024-02-28"}},
	} {
		assert.LessOrEqual(t, sum(Apply(raw, f)), sum(raw))
	}
}

func TestToggle(t *testing.T) {
	values := []string{"East"}

	added := Toggle(values, "West")
	assert.Equal(t, []string{"East", "West"}, added)
	assert.Equal(t, []string{"East"}, values)

	removed := Toggle(added, "East")
	assert.Equal(t, []string{"West"}, removed)
	assert.Equal(t, []string{"East", "West"}, added)
}

func TestShift(t *testing.T) {
	r := domain.DateRange{Start: "2024-03-01", End: "2024-03-31"}

	yoy, ok := Shift(r, domain.ComparisonYearOverYear)
	require.True(t, ok)
	assert.Equal(t, domain.DateRange{Start: "2023-03-01", End: "2023-03-31"}, yoy)

	mom, ok := Shift(r, domain.ComparisonMonthOverMonth)
	require.True(t, ok)
	assert.Equal(t, domain.DateRange{Start: "2024-02-01", End: "2024-03-02"}, mom)

	_, ok = Shift(domain.DateRange{Start: "2024-03-01"}, domain.ComparisonYearOverYear)
	assert.False(t, ok)

	_, ok = Shift(r, domain.ComparisonNone)
	assert.False(t, ok)
}

func TestPreset(t *testing.T) {
	anchor := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		preset   string
		expected domain.DateRange
	}{
		{PresetLast30Days, domain.DateRange{Start: "2024-05-17", End: "2024-06-15"}},
		{PresetLast90Days, domain.DateRange{Start: "2024-03-18", End: "2024-06-15"}},
		{PresetYearToDate, domain.DateRange{Start: "2024-01-01", End: "2024-06-15"}},
		{PresetLastYear, domain.DateRange{Start: "2023-01-01", End: "2023-12-31"}},
		{PresetAll, domain.DateRange{}},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			got, err := Preset(tt.preset, anchor)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := Preset("fortnight", anchor)
	assert.ErrorIs(t, err, domain.ErrUnknownPreset)
}
