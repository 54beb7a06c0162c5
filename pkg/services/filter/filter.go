package filter

import (
	"slices"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Apply restricts raw to the rows matching every active filter dimension.
// Row order is preserved. The date range only applies when both bounds are
// set; rows without a parsable order date never match it, and an unparsable
// bound matches nothing.
func Apply(raw domain.Dataset, filters domain.FilterState) domain.Dataset {
	out := domain.Dataset{
		Columns:      raw.Columns,
		Transactions: make([]domain.Transaction, 0),
	}
	if raw.IsEmpty() {
		return out
	}

	match := newMatcher(filters)
	for _, t := range raw.Transactions {
		if match(t) {
			out.Transactions = append(out.Transactions, t)
		}
	}
	return out
}

func newMatcher(filters domain.FilterState) func(domain.Transaction) bool {
	categories := toSet(filters.Categories)
	regions := toSet(filters.Regions)

	dateSet := filters.DateRange.IsSet()
	start, startOK := domain.ParseDate(filters.DateRange.Start)
	end, endOK := domain.ParseDate(filters.DateRange.End)
	boundsOK := startOK && endOK

	return func(t domain.Transaction) bool {
		if dateSet {
			if !boundsOK || !t.HasDate || !within(t.OrderDate, start, end) {
				return false
			}
		}
		if categories != nil {
			if _, ok := categories[t.Category]; !ok {
				return false
			}
		}
		if regions != nil {
			if _, ok := regions[t.Region]; !ok {
				return false
			}
		}
		return true
	}
}

func within(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Toggle adds value to the set when absent and removes it otherwise.
func Toggle(values []string, value string) []string {
	if i := slices.Index(values, value); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}
	return append(slices.Clone(values), value)
}

// Shift moves a date range back by the comparison period. It reports false
// when the range is unset or unparsable.
func Shift(r domain.DateRange, mode domain.ComparisonMode) (domain.DateRange, bool) {
	if !r.IsSet() || mode == domain.ComparisonNone || mode == "" {
		return domain.DateRange{}, false
	}
	start, ok := domain.ParseDate(r.Start)
	if !ok {
		return domain.DateRange{}, false
	}
	end, ok := domain.ParseDate(r.End)
	if !ok {
		return domain.DateRange{}, false
	}

	years, months := 0, 0
	switch mode {
	case domain.ComparisonYearOverYear:
		years = -1
	case domain.ComparisonMonthOverMonth:
		months = -1
	default:
		return domain.DateRange{}, false
	}

	return domain.DateRange{
		Start: start.AddDate(years, months, 0).Format(time.DateOnly),
		End:   end.AddDate(years, months, 0).Format(time.DateOnly),
	}, true
}
