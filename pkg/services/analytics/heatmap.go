package analytics

import (
	"cmp"
	"math"
	"slices"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const flatScore = 50

type regionCategory struct {
	region   string
	category string
}

// RegionCategoryHeatmap sums sales per region and category. Each cell's
// performance score is its sales normalized to [0, 100] within its own
// region. Cells are ordered by region, then category.
func RegionCategoryHeatmap(ds domain.Dataset) []domain.HeatmapCell {
	g := newGroups[regionCategory, float64]()
	for _, tx := range ds.Transactions {
		*g.get(regionCategory{tx.Region, tx.Category}) += tx.Sales
	}

	type bounds struct{ lo, hi float64 }
	byRegion := make(map[string]*bounds)
	cells := make([]domain.HeatmapCell, 0, g.len())
	for _, key := range g.order {
		v := *g.index[key]
		cells = append(cells, domain.HeatmapCell{Region: key.region, Category: key.category, Sales: v})
		b, ok := byRegion[key.region]
		if !ok {
			byRegion[key.region] = &bounds{lo: v, hi: v}
			continue
		}
		b.lo = math.Min(b.lo, v)
		b.hi = math.Max(b.hi, v)
	}

	for i := range cells {
		b := byRegion[cells[i].Region]
		if b.hi <= b.lo {
			cells[i].PerformanceScore = flatScore
			continue
		}
		cells[i].PerformanceScore = RoundTo((cells[i].Sales-b.lo)/(b.hi-b.lo)*100, 1)
	}

	slices.SortFunc(cells, func(a, b domain.HeatmapCell) int {
		if c := cmp.Compare(a.Region, b.Region); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return cells
}
