package adapters

import (
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

func MapDomainKPIToAPI(k domain.KPI) api.KPI {
	return api.KPI{
		TotalSales:   k.TotalSales,
		TotalProfit:  k.TotalProfit,
		TotalOrders:  k.TotalOrders,
		ProfitMargin: k.ProfitMargin,
	}
}

func MapDomainKPIResponseToAPI(k domain.KPI, cmp *domain.KPIComparison) api.KPIResponse {
	resp := api.KPIResponse{Current: MapDomainKPIToAPI(k)}
	if cmp != nil {
		resp.Comparison = &api.KPIComparison{
			Mode:     string(cmp.Mode),
			Start:    cmp.Start,
			End:      cmp.End,
			Previous: MapDomainKPIToAPI(cmp.Previous),
		}
	}
	return resp
}

func MapDomainMonthlyTrendToAPI(in []domain.MonthlyTrend) []api.MonthlyTrend {
	out := make([]api.MonthlyTrend, 0, len(in))
	for _, m := range in {
		out = append(out, api.MonthlyTrend{
			Month:        m.Month,
			Sales:        m.Sales,
			Profit:       m.Profit,
			Orders:       m.Orders,
			ProfitMargin: m.ProfitMargin,
		})
	}
	return out
}

func MapDomainSalesTrendToAPI(in []domain.SalesTrendPoint) []api.SalesTrendPoint {
	out := make([]api.SalesTrendPoint, 0, len(in))
	for _, p := range in {
		out = append(out, api.SalesTrendPoint{Month: p.Month, Sales: p.Sales})
	}
	return out
}

func MapDomainCategoryTrendToAPI(in domain.CategoryTrend) api.CategoryTrend {
	out := api.CategoryTrend{
		Categories: append([]string{}, in.Categories...),
		Rows:       make([]api.CategoryTrendRow, 0, len(in.Rows)),
	}
	for _, r := range in.Rows {
		sales := make(map[string]float64, len(r.Sales))
		for k, v := range r.Sales {
			sales[k] = v
		}
		out.Rows = append(out.Rows, api.CategoryTrendRow{Month: r.Month, Sales: sales})
	}
	return out
}

func MapDomainScatterToAPI(in []domain.ScatterPoint) []api.ScatterPoint {
	out := make([]api.ScatterPoint, 0, len(in))
	for _, p := range in {
		out = append(out, api.ScatterPoint{
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			Profit:      p.Profit,
			Sales:       p.Sales,
			BubbleSize:  p.BubbleSize,
		})
	}
	return out
}

func MapDomainHeatmapToAPI(in []domain.HeatmapCell) []api.HeatmapCell {
	out := make([]api.HeatmapCell, 0, len(in))
	for _, c := range in {
		out = append(out, api.HeatmapCell{
			Region:           c.Region,
			Category:         c.Category,
			Sales:            c.Sales,
			PerformanceScore: c.PerformanceScore,
		})
	}
	return out
}

func MapDomainOrderVolumeToAPI(in []domain.OrderVolume) []api.OrderVolume {
	out := make([]api.OrderVolume, 0, len(in))
	for _, v := range in {
		out = append(out, api.OrderVolume{
			Month:             v.Month,
			OrderCount:        v.OrderCount,
			Sales:             v.Sales,
			AverageOrderValue: v.AverageOrderValue,
		})
	}
	return out
}

func MapDomainNamedValuesToAPI(in []domain.NamedValue) []api.NamedValue {
	out := make([]api.NamedValue, 0, len(in))
	for _, v := range in {
		out = append(out, api.NamedValue{Name: v.Name, Value: v.Value})
	}
	return out
}

func MapDomainCategoryProfitabilityToAPI(in []domain.CategoryProfitability) []api.CategoryProfitability {
	out := make([]api.CategoryProfitability, 0, len(in))
	for _, c := range in {
		out = append(out, api.CategoryProfitability{
			Category:     c.Category,
			Sales:        c.Sales,
			Profit:       c.Profit,
			ProfitMargin: c.ProfitMargin,
		})
	}
	return out
}

func MapDomainStatusToAPI(s domain.DatasetStatus) api.DatasetStatus {
	return api.DatasetStatus{
		State:     string(s.State),
		Loading:   s.IsLoading(),
		Version:   s.Version,
		Rows:      s.Rows,
		Source:    s.Source,
		LoadedAt:  s.LoadedAt,
		LastError: s.Error,
	}
}

func MapDomainFiltersToAPI(f domain.FilterState, mode domain.ComparisonMode, s domain.DatasetStatus) api.Filters {
	return api.Filters{
		DateRange:           api.DateRange{Start: f.DateRange.Start, End: f.DateRange.End},
		Categories:          nonNil(f.Categories),
		Regions:             nonNil(f.Regions),
		Comparison:          string(mode),
		AvailableCategories: nonNil(s.Categories),
		AvailableRegions:    nonNil(s.Regions),
	}
}

func MapDomainTableViewToAPI(v domain.TableView, state domain.TableViewState) api.TableView {
	rows := make([]api.TableRow, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, api.TableRow{
			OrderDate:    r.OrderDate,
			ProductName:  r.ProductName,
			Category:     r.Category,
			Sales:        r.Sales,
			Quantity:     r.Quantity,
			Profit:       r.Profit,
			CustomerName: r.CustomerName,
			Region:       r.Region,
		})
	}
	return api.TableView{
		Rows:          rows,
		TotalRows:     v.TotalRows,
		TotalPages:    v.TotalPages,
		CurrentPage:   v.CurrentPage,
		ItemsPerPage:  state.ItemsPerPage,
		SearchQuery:   state.SearchQuery,
		SortColumn:    state.SortColumn,
		SortDirection: string(state.SortDirection),
	}
}

func MapDomainMessageToAPI(m domain.Message) api.Message {
	return api.Message{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

func MapDomainConversationToAPI(messages []domain.Message, processing bool) api.Conversation {
	out := api.Conversation{
		Processing: processing,
		Messages:   make([]api.Message, 0, len(messages)),
	}
	for _, m := range messages {
		out.Messages = append(out.Messages, MapDomainMessageToAPI(m))
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string{}, values...)
}

func MapDomainSnapshotToAPI(s domain.Snapshot, cmp *domain.KPIComparison) api.Dashboard {
	return api.Dashboard{
		KPI:                   MapDomainKPIResponseToAPI(s.KPI, cmp),
		MonthlyTrend:          MapDomainMonthlyTrendToAPI(s.MonthlyTrend),
		SalesTrend:            MapDomainSalesTrendToAPI(s.SalesTrend),
		CategoryTrend:         MapDomainCategoryTrendToAPI(s.CategoryTrend),
		Scatter:               MapDomainScatterToAPI(s.Scatter),
		Heatmap:               MapDomainHeatmapToAPI(s.Heatmap),
		OrderVolume:           MapDomainOrderVolumeToAPI(s.OrderVolume),
		CategoryPerformance:   MapDomainNamedValuesToAPI(s.CategoryPerformance),
		RegionalSales:         MapDomainNamedValuesToAPI(s.RegionalSales),
		ProfitByCategory:      MapDomainNamedValuesToAPI(s.ProfitByCategory),
		TopProducts:           MapDomainNamedValuesToAPI(s.TopProducts),
		CategoryProfitability: MapDomainCategoryProfitabilityToAPI(s.CategoryProfitability),
	}
}
