package analytics

import "github.com/de-tools/sales-atlas/pkg/models/domain"

const (
	TopProductsLimit = 10
	ScatterLimit     = 100
)

func sumBy(ds domain.Dataset, key func(domain.Transaction) string, value func(domain.Transaction) float64) []domain.NamedValue {
	g := newGroups[string, float64]()
	for _, tx := range ds.Transactions {
		*g.get(key(tx)) += value(tx)
	}
	out := make([]domain.NamedValue, 0, g.len())
	for _, name := range g.order {
		out = append(out, domain.NamedValue{Name: name, Value: *g.index[name]})
	}
	rank(out)
	return out
}

func categoryOf(tx domain.Transaction) string { return tx.Category }
func regionOf(tx domain.Transaction) string   { return tx.Region }
func productOf(tx domain.Transaction) string  { return tx.ProductName }
func salesOf(tx domain.Transaction) float64   { return tx.Sales }
func profitOf(tx domain.Transaction) float64  { return tx.Profit }

// CategoryPerformance ranks categories by total sales.
func CategoryPerformance(ds domain.Dataset) []domain.NamedValue {
	return sumBy(ds, categoryOf, salesOf)
}

// RegionalSales ranks regions by total sales.
func RegionalSales(ds domain.Dataset) []domain.NamedValue {
	return sumBy(ds, regionOf, salesOf)
}

// ProfitByCategory ranks categories by total profit.
func ProfitByCategory(ds domain.Dataset) []domain.NamedValue {
	return sumBy(ds, categoryOf, profitOf)
}

// TopProducts returns the best selling products, at most TopProductsLimit.
func TopProducts(ds domain.Dataset) []domain.NamedValue {
	ranked := sumBy(ds, productOf, salesOf)
	if len(ranked) > TopProductsLimit {
		ranked = ranked[:TopProductsLimit]
	}
	return ranked
}

// CategoryProfitability reports sales, profit and margin per category in
// first-seen order.
func CategoryProfitability(ds domain.Dataset) []domain.CategoryProfitability {
	g := newGroups[string, totals]()
	for _, tx := range ds.Transactions {
		g.get(tx.Category).add(tx)
	}
	out := make([]domain.CategoryProfitability, 0, g.len())
	for _, name := range g.order {
		t := g.index[name]
		out = append(out, domain.CategoryProfitability{
			Category:     name,
			Sales:        t.sales,
			Profit:       t.profit,
			ProfitMargin: margin(t.profit, t.sales),
		})
	}
	return out
}
