package analytics

import (
	"context"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Compute derives every aggregate for ds.
func Compute(ctx context.Context, ds domain.Dataset) domain.Snapshot {
	monthly := Safe(ctx, "monthly_trend", []domain.MonthlyTrend{}, func() []domain.MonthlyTrend {
		return MonthlyTrend(ds)
	})
	return domain.Snapshot{
		KPI:          Safe(ctx, "kpi", domain.KPI{}, func() domain.KPI { return KPIs(ds) }),
		MonthlyTrend: monthly,
		SalesTrend: Safe(ctx, "sales_trend", []domain.SalesTrendPoint{}, func() []domain.SalesTrendPoint {
			return SalesTrend(monthly)
		}),
		CategoryTrend: Safe(ctx, "category_trend", domain.CategoryTrend{Categories: []string{}, Rows: []domain.CategoryTrendRow{}},
			func() domain.CategoryTrend { return CategoryTrend(ds) }),
		Scatter: Safe(ctx, "quantity_profit_scatter", []domain.ScatterPoint{}, func() []domain.ScatterPoint {
			return QuantityProfitScatter(ds)
		}),
		Heatmap: Safe(ctx, "region_category_heatmap", []domain.HeatmapCell{}, func() []domain.HeatmapCell {
			return RegionCategoryHeatmap(ds)
		}),
		OrderVolume: Safe(ctx, "order_volume", []domain.OrderVolume{}, func() []domain.OrderVolume {
			return OrderVolume(ds)
		}),
		CategoryPerformance: Safe(ctx, "category_performance", []domain.NamedValue{}, func() []domain.NamedValue {
			return CategoryPerformance(ds)
		}),
		RegionalSales: Safe(ctx, "regional_sales", []domain.NamedValue{}, func() []domain.NamedValue {
			return RegionalSales(ds)
		}),
		ProfitByCategory: Safe(ctx, "profit_by_category", []domain.NamedValue{}, func() []domain.NamedValue {
			return ProfitByCategory(ds)
		}),
		TopProducts: Safe(ctx, "top_products", []domain.NamedValue{}, func() []domain.NamedValue {
			return TopProducts(ds)
		}),
		CategoryProfitability: Safe(ctx, "category_profitability", []domain.CategoryProfitability{},
			func() []domain.CategoryProfitability { return CategoryProfitability(ds) }),
	}
}

// ComputeKPI is the KPI part of Compute on its own.
func ComputeKPI(ctx context.Context, ds domain.Dataset) domain.KPI {
	return Safe(ctx, "kpi", domain.KPI{}, func() domain.KPI { return KPIs(ds) })
}
