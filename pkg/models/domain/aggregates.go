package domain

type KPI struct {
	TotalSales   float64
	TotalProfit  float64
	TotalOrders  int
	ProfitMargin float64 // percent, 0 when there are no sales
}

// KPIComparison holds the KPI of the period preceding the active date range.
type KPIComparison struct {
	Mode     ComparisonMode
	Previous KPI
	Start    string
	End      string
}

type MonthlyTrend struct {
	Month        string // "Jan 24"
	Sales        float64
	Profit       float64
	Orders       int
	ProfitMargin float64
}

type SalesTrendPoint struct {
	Month string
	Sales float64
}

type CategoryTrendRow struct {
	Month string
	Sales map[string]float64 // every category present, 0 when absent that month
}

type CategoryTrend struct {
	Categories []string
	Rows       []CategoryTrendRow
}

type ScatterPoint struct {
	ProductName string
	Quantity    int
	Profit      float64
	Sales       float64
	BubbleSize  float64
}

type HeatmapCell struct {
	Region           string
	Category         string
	Sales            float64
	PerformanceScore float64
}

type OrderVolume struct {
	Month             string
	OrderCount        int
	Sales             float64
	AverageOrderValue float64
}

type NamedValue struct {
	Name  string
	Value float64
}

type CategoryProfitability struct {
	Category     string
	Sales        float64
	Profit       float64
	ProfitMargin float64
}

// Snapshot is every aggregate derived from one filtered dataset.
type Snapshot struct {
	KPI                   KPI
	MonthlyTrend          []MonthlyTrend
	SalesTrend            []SalesTrendPoint
	CategoryTrend         CategoryTrend
	Scatter               []ScatterPoint
	Heatmap               []HeatmapCell
	OrderVolume           []OrderVolume
	CategoryPerformance   []NamedValue
	RegionalSales         []NamedValue
	ProfitByCategory      []NamedValue
	TopProducts           []NamedValue
	CategoryProfitability []CategoryProfitability
}
