package analytics

import (
	"cmp"
	"math"
	"slices"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const (
	minBubble     = 5
	maxBubble     = 45
	defaultBubble = 25
)

// QuantityProfitScatter sums quantity, profit and sales per product. Bubble
// sizes are scaled against every product before the result is cut down to
// the ScatterLimit best sellers.
func QuantityProfitScatter(ds domain.Dataset) []domain.ScatterPoint {
	g := newGroups[string, totals]()
	for _, tx := range ds.Transactions {
		g.get(tx.ProductName).add(tx)
	}
	if g.len() == 0 {
		return []domain.ScatterPoint{}
	}

	points := make([]domain.ScatterPoint, 0, g.len())
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, name := range g.order {
		t := g.index[name]
		points = append(points, domain.ScatterPoint{
			ProductName: name,
			Quantity:    t.quantity,
			Profit:      t.profit,
			Sales:       t.sales,
		})
		lo = math.Min(lo, t.sales)
		hi = math.Max(hi, t.sales)
	}

	for i := range points {
		points[i].BubbleSize = bubbleSize(points[i].Sales, lo, hi)
	}

	slices.SortStableFunc(points, func(a, b domain.ScatterPoint) int {
		if c := cmp.Compare(b.Sales, a.Sales); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductName, b.ProductName)
	})
	if len(points) > ScatterLimit {
		points = points[:ScatterLimit]
	}
	return points
}

func bubbleSize(v, lo, hi float64) float64 {
	if hi <= lo {
		return defaultBubble
	}
	return math.Round(minBubble + (maxBubble-minBubble)*(v-lo)/(hi-lo))
}
