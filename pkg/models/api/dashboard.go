package api

type KPI struct {
	TotalSales   float64 `json:"total_sales"`
	TotalProfit  float64 `json:"total_profit"`
	TotalOrders  int     `json:"total_orders"`
	ProfitMargin float64 `json:"profit_margin"`
}

type KPIComparison struct {
	Mode     string `json:"mode"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Previous KPI    `json:"previous"`
}

type KPIResponse struct {
	Current    KPI            `json:"current"`
	Comparison *KPIComparison `json:"comparison,omitempty"`
}

type MonthlyTrend struct {
	Month        string  `json:"month"`
	Sales        float64 `json:"sales"`
	Profit       float64 `json:"profit"`
	Orders       int     `json:"orders"`
	ProfitMargin float64 `json:"profit_margin"`
}

type SalesTrendPoint struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

type CategoryTrendRow struct {
	Month string             `json:"month"`
	Sales map[string]float64 `json:"sales"`
}

type CategoryTrend struct {
	Categories []string           `json:"categories"`
	Rows       []CategoryTrendRow `json:"rows"`
}

type ScatterPoint struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Profit      float64 `json:"profit"`
	Sales       float64 `json:"sales"`
	BubbleSize  float64 `json:"bubble_size"`
}

type HeatmapCell struct {
	Region           string  `json:"region"`
	Category         string  `json:"category"`
	Sales            float64 `json:"sales"`
	PerformanceScore float64 `json:"performance_score"`
}

type OrderVolume struct {
	Month             string  `json:"month"`
	OrderCount        int     `json:"order_count"`
	Sales             float64 `json:"sales"`
	AverageOrderValue float64 `json:"average_order_value"`
}

type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type CategoryProfitability struct {
	Category     string  `json:"category"`
	Sales        float64 `json:"sales"`
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

type Dashboard struct {
	Status                DatasetStatus           `json:"status"`
	Filters               Filters                 `json:"filters"`
	KPI                   KPIResponse             `json:"kpi"`
	MonthlyTrend          []MonthlyTrend          `json:"monthly_trend"`
	SalesTrend            []SalesTrendPoint       `json:"sales_trend"`
	CategoryTrend         CategoryTrend           `json:"category_trend"`
	Scatter               []ScatterPoint          `json:"scatter"`
	Heatmap               []HeatmapCell           `json:"heatmap"`
	OrderVolume           []OrderVolume           `json:"order_volume"`
	CategoryPerformance   []NamedValue            `json:"category_performance"`
	RegionalSales         []NamedValue            `json:"regional_sales"`
	ProfitByCategory      []NamedValue            `json:"profit_by_category"`
	TopProducts           []NamedValue            `json:"top_products"`
	CategoryProfitability []CategoryProfitability `json:"category_profitability"`
}
