package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	NotReadyReply   = "The data is not loaded yet. Please wait a moment."
	NotUnderstood   = "I'm sorry, I could not understand your query. Try one of the suggestions."
	ApologyReply    = "Sorry, I encountered an error processing your query. Please try a different question."
	topProductCount = 5
)

var suggestions = []string{
	"What are the top selling products?",
	"Show me sales vs profit trends",
	"Which region-category combo performs best?",
	"Analyze quantity vs profit relationship",
	"What's the order volume trend?",
}

// Suggestions returns the canned example queries.
func Suggestions() []string {
	return append([]string{}, suggestions...)
}

// Facts is what the responder reads to answer a query.
type Facts interface {
	// Ready reports whether a non-empty dataset has been loaded.
	Ready() bool
	// Snapshot holds the aggregates of the filtered view.
	Snapshot(ctx context.Context) domain.Snapshot
	// RawSnapshot holds the aggregates of the unfiltered dataset.
	RawSnapshot(ctx context.Context) domain.Snapshot
}

type intent struct {
	name    string
	matches func(q string) bool
	// answer returns false when its backing aggregation is empty.
	answer func(ctx context.Context, f Facts) (string, bool)
}

func containsAny(q string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(q, s) {
			return true
		}
	}
	return false
}

// intents in priority order; the first match answers.
var intents = []intent{
	{
		name:    "sales_vs_profit",
		matches: func(q string) bool { return containsAny(q, "sales vs profit", "sales profit trend") },
		answer:  salesVsProfit,
	},
	{
		name:    "top_products",
		matches: func(q string) bool { return containsAny(q, "top selling products", "best products") },
		answer:  topProducts,
	},
	{
		name: "region_category",
		matches: func(q string) bool {
			return strings.Contains(q, "region") && strings.Contains(q, "category") && containsAny(q, "perform", "best")
		},
		answer: regionCategory,
	},
	{
		name:    "quantity_profit",
		matches: func(q string) bool { return strings.Contains(q, "quantity") && strings.Contains(q, "profit") },
		answer:  quantityProfit,
	},
	{
		name:    "order_volume",
		matches: func(q string) bool { return containsAny(q, "order volume", "order trend") },
		answer:  orderVolume,
	},
	{
		name:    "profit_margin",
		matches: func(q string) bool { return strings.Contains(q, "profit margin") },
		answer:  profitMargin,
	},
	{
		name:    "category_performance",
		matches: func(q string) bool { return strings.Contains(q, "category") && containsAny(q, "best", "perform") },
		answer:  categoryPerformance,
	},
}

// Respond maps query onto an aggregate and renders the answer. It never
// fails: panics while answering turn into ApologyReply.
func Respond(ctx context.Context, query string, facts Facts) (reply string) {
	logger := zerolog.Ctx(ctx)
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("query", query).Msg("failed to process query")
			reply = ApologyReply
		}
	}()

	if facts == nil || !facts.Ready() {
		return NotReadyReply
	}

	q := strings.ToLower(query)
	for _, in := range intents {
		if !in.matches(q) {
			continue
		}
		logger.Debug().Str("intent", in.name).Msg("query matched")
		if text, ok := in.answer(ctx, facts); ok {
			return text
		}
		return notUnderstood()
	}
	return notUnderstood()
}

func notUnderstood() string {
	var b strings.Builder
	b.WriteString(NotUnderstood)
	b.WriteString("\n")
	for _, s := range suggestions {
		b.WriteString("\n- ")
		b.WriteString(s)
	}
	return b.String()
}

func strength(margin float64) string {
	switch {
	case margin > 15:
		return "strong"
	case margin > 10:
		return "moderate"
	}
	return "weak"
}

func salesVsProfit(ctx context.Context, f Facts) (string, bool) {
	trend := f.Snapshot(ctx).MonthlyTrend
	if len(trend) == 0 {
		return "", false
	}
	latest := trend[len(trend)-1]
	return fmt.Sprintf("📈 **Sales vs Profit Trend Analysis:**\n\n"+
		"Latest month (%s):\n- Sales: %s\n- Profit: %s\n- Profit Margin: %.1f%%\n\n"+
		"The trend shows %s profitability with a %.1f%% margin.",
		latest.Month, money(latest.Sales), money(latest.Profit), latest.ProfitMargin,
		strength(latest.ProfitMargin), latest.ProfitMargin), true
}

func topProducts(ctx context.Context, f Facts) (string, bool) {
	top := f.Snapshot(ctx).TopProducts
	if len(top) == 0 {
		top = f.RawSnapshot(ctx).TopProducts
	}
	if len(top) == 0 {
		return "", false
	}
	top = top[:min(len(top), topProductCount)]

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 **Top %d Selling Products:**\n", topProductCount)
	for i, p := range top {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, p.Name, money(p.Value))
	}
	return b.String(), true
}

func regionCategory(ctx context.Context, f Facts) (string, bool) {
	cells := f.Snapshot(ctx).Heatmap
	if len(cells) == 0 {
		return "", false
	}
	best := cells[0]
	for _, c := range cells[1:] {
		if c.Sales > best.Sales {
			best = c
		}
	}
	return fmt.Sprintf("🎯 **Regional-Category Performance:**\n\n"+
		"Best performing combination:\n- Region: **%s**\n- Category: **%s**\n- Sales: %s\n- Performance Score: %.1f/100\n\n"+
		"This combination generates the highest sales volume in our dataset.",
		best.Region, best.Category, money(best.Sales), best.PerformanceScore), true
}

func quantityProfit(ctx context.Context, f Facts) (string, bool) {
	points := f.Snapshot(ctx).Scatter
	if len(points) == 0 {
		return "", false
	}
	byProfit, byQuantity := points[0], points[0]
	for _, p := range points[1:] {
		if p.Profit > byProfit.Profit {
			byProfit = p
		}
		if p.Quantity > byQuantity.Quantity {
			byQuantity = p
		}
	}
	insight := "This product excels in both volume and profitability"
	if byProfit.ProductName != byQuantity.ProductName {
		insight = "High quantity doesn't always mean high profit"
	}
	return fmt.Sprintf("📊 **Quantity vs Profit Analysis:**\n\n"+
		"Highest Profit Product:\n- %s: %s profit from %d units\n\n"+
		"Highest Quantity Product:\n- %s: %d units sold, %s profit\n\n"+
		"**Insight:** %s.",
		byProfit.ProductName, money(byProfit.Profit), byProfit.Quantity,
		byQuantity.ProductName, byQuantity.Quantity, money(byQuantity.Profit),
		insight), true
}

func orderVolume(ctx context.Context, f Facts) (string, bool) {
	volume := f.Snapshot(ctx).OrderVolume
	if len(volume) == 0 {
		return "", false
	}
	latest := volume[len(volume)-1]
	return fmt.Sprintf("📦 **Order Volume Analysis:**\n\n"+
		"Latest month (%s):\n- Order Count: %d orders\n- Average Order Value: $%.2f\n- Total Sales: %s\n\n"+
		"The average customer spends $%.2f per order.",
		latest.Month, latest.OrderCount, latest.AverageOrderValue, money(latest.Sales),
		latest.AverageOrderValue), true
}

func marginGrade(margin float64) string {
	switch {
	case margin > 20:
		return "excellent (>20%)"
	case margin > 15:
		return "good (15-20%)"
	case margin > 10:
		return "average (10-15%)"
	}
	return "below average (<10%)"
}

func profitMargin(ctx context.Context, f Facts) (string, bool) {
	margin := f.Snapshot(ctx).KPI.ProfitMargin
	return fmt.Sprintf("💰 **Profit Margin Analysis:**\n\n"+
		"Current overall profit margin: **%.2f%%**\n\n"+
		"This is %s for retail operations.",
		margin, marginGrade(margin)), true
}

func categoryPerformance(ctx context.Context, f Facts) (string, bool) {
	categories := f.Snapshot(ctx).CategoryProfitability
	if len(categories) == 0 {
		categories = f.RawSnapshot(ctx).CategoryProfitability
	}
	if len(categories) == 0 {
		return "", false
	}
	bySales, byMargin := categories[0], categories[0]
	for _, c := range categories[1:] {
		if c.Sales > bySales.Sales || (c.Sales == bySales.Sales && c.Category < bySales.Category) {
			bySales = c
		}
		if c.ProfitMargin > byMargin.ProfitMargin ||
			(c.ProfitMargin == byMargin.ProfitMargin && c.Category < byMargin.Category) {
			byMargin = c
		}
	}
	return fmt.Sprintf("📈 **Category Performance Analysis:**\n\n"+
		"Best by Sales Volume:\n- **%s**: %s (%.1f%% margin)\n\n"+
		"Best by Profit Margin:\n- **%s**: %.1f%% margin (%s sales)\n\n"+
		"**Recommendation:** Focus on %s for volume growth and %s for profitability.",
		bySales.Category, money(bySales.Sales), bySales.ProfitMargin,
		byMargin.Category, byMargin.ProfitMargin, money(byMargin.Sales),
		bySales.Category, byMargin.Category), true
}
