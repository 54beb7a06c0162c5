package analytics

import "github.com/de-tools/sales-atlas/pkg/models/domain"

// MonthlyTrend totals sales, profit and distinct orders per calendar month,
// oldest first. Undated rows are left out.
func MonthlyTrend(ds domain.Dataset) []domain.MonthlyTrend {
	months, totals := byMonth(ds)
	out := make([]domain.MonthlyTrend, 0, len(months))
	for _, m := range months {
		t := totals[m]
		out = append(out, domain.MonthlyTrend{
			Month:        m.Format(monthLabelLayout),
			Sales:        t.sales,
			Profit:       t.profit,
			Orders:       len(t.orders),
			ProfitMargin: margin(t.profit, t.sales),
		})
	}
	return out
}

// SalesTrend projects a monthly trend onto its sales column.
func SalesTrend(monthly []domain.MonthlyTrend) []domain.SalesTrendPoint {
	out := make([]domain.SalesTrendPoint, 0, len(monthly))
	for _, m := range monthly {
		out = append(out, domain.SalesTrendPoint{Month: m.Month, Sales: m.Sales})
	}
	return out
}

// CategoryTrend pivots monthly sales so every category becomes a column.
// Missing month/category combinations are 0.
func CategoryTrend(ds domain.Dataset) domain.CategoryTrend {
	categories := newGroups[string, struct{}]()
	for _, tx := range ds.Transactions {
		if tx.HasDate {
			categories.get(tx.Category)
		}
	}

	type monthCategory struct {
		month    string
		category string
	}
	sales := make(map[monthCategory]float64)
	for _, tx := range ds.Transactions {
		if tx.HasDate {
			sales[monthCategory{monthOf(tx.OrderDate).Format(monthLabelLayout), tx.Category}] += tx.Sales
		}
	}

	months, _ := byMonth(ds)
	out := domain.CategoryTrend{
		Categories: append([]string{}, categories.order...),
		Rows:       make([]domain.CategoryTrendRow, 0, len(months)),
	}
	for _, m := range months {
		label := m.Format(monthLabelLayout)
		row := domain.CategoryTrendRow{Month: label, Sales: make(map[string]float64, categories.len())}
		for _, c := range categories.order {
			row.Sales[c] = sales[monthCategory{label, c}]
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// OrderVolume reports distinct orders, sales and average order value per
// month.
func OrderVolume(ds domain.Dataset) []domain.OrderVolume {
	months, totals := byMonth(ds)
	out := make([]domain.OrderVolume, 0, len(months))
	for _, m := range months {
		t := totals[m]
		v := domain.OrderVolume{
			Month:      m.Format(monthLabelLayout),
			OrderCount: len(t.orders),
			Sales:      t.sales,
		}
		if v.OrderCount > 0 {
			v.AverageOrderValue = RoundTo(t.sales/float64(v.OrderCount), 2)
		}
		out = append(out, v)
	}
	return out
}
