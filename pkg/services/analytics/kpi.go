package analytics

import "github.com/de-tools/sales-atlas/pkg/models/domain"

// KPIs totals sales and profit, counts distinct orders and derives the
// profit margin in percent.
func KPIs(ds domain.Dataset) domain.KPI {
	var t totals
	for _, tx := range ds.Transactions {
		t.add(tx)
	}
	return domain.KPI{
		TotalSales:   t.sales,
		TotalProfit:  t.profit,
		TotalOrders:  len(t.orders),
		ProfitMargin: margin(t.profit, t.sales),
	}
}
