package analytics

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const monthLabelLayout = "Jan 06"

// groups accumulates values per key and remembers first-seen key order.
type groups[K comparable, V any] struct {
	order []K
	index map[K]*V
}

func newGroups[K comparable, V any]() *groups[K, V] {
	return &groups[K, V]{index: make(map[K]*V)}
}

func (g *groups[K, V]) get(key K) *V {
	if v, ok := g.index[key]; ok {
		return v
	}
	v := new(V)
	g.index[key] = v
	g.order = append(g.order, key)
	return v
}

func (g *groups[K, V]) len() int {
	return len(g.order)
}

type totals struct {
	sales    float64
	profit   float64
	quantity int
	orders   map[string]struct{}
}

func (t *totals) add(tx domain.Transaction) {
	t.sales += tx.Sales
	t.profit += tx.Profit
	t.quantity += tx.Quantity
	if t.orders == nil {
		t.orders = make(map[string]struct{})
	}
	t.orders[tx.OrderID] = struct{}{}
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// byMonth groups dated transactions by calendar month, chronologically.
// Transactions without a parsable date are left out.
func byMonth(ds domain.Dataset) ([]time.Time, map[time.Time]*totals) {
	g := newGroups[time.Time, totals]()
	for _, tx := range ds.Transactions {
		if !tx.HasDate {
			continue
		}
		g.get(monthOf(tx.OrderDate)).add(tx)
	}
	months := slices.Clone(g.order)
	slices.SortFunc(months, func(a, b time.Time) int { return a.Compare(b) })
	return months, g.index
}

func margin(profit, sales float64) float64 {
	if sales == 0 {
		return 0
	}
	return RoundTo(profit/sales*100, 2)
}

// RoundTo rounds half away from zero to the given number of decimals.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// rank orders values by Value, descending, breaking ties on Name.
func rank(values []domain.NamedValue) {
	slices.SortStableFunc(values, func(a, b domain.NamedValue) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}
