package domain

import (
	"slices"
	"strings"
)

// DateRange bounds are ISO dates (YYYY-MM-DD). An empty bound means unset.
type DateRange struct {
	Start string
	End   string
}

func (r DateRange) IsSet() bool {
	return r.Start != "" && r.End != ""
}

type FilterState struct {
	DateRange  DateRange
	Categories []string
	Regions    []string
}

// Clone returns a copy that shares no slices with f.
func (f FilterState) Clone() FilterState {
	return FilterState{
		DateRange:  f.DateRange,
		Categories: slices.Clone(f.Categories),
		Regions:    slices.Clone(f.Regions),
	}
}

// Key identifies the filter state for memoization.
func (f FilterState) Key() string {
	var b strings.Builder
	b.WriteString(f.DateRange.Start)
	b.WriteByte('|')
	b.WriteString(f.DateRange.End)
	b.WriteByte('|')
	b.WriteString(strings.Join(f.Categories, "\x1f"))
	b.WriteByte('|')
	b.WriteString(strings.Join(f.Regions, "\x1f"))
	return b.String()
}

type ComparisonMode string

const (
	ComparisonNone           ComparisonMode = "none"
	ComparisonYearOverYear   ComparisonMode = "yoy"
	ComparisonMonthOverMonth ComparisonMode = "mom"
)

func (m ComparisonMode) Valid() bool {
	switch m {
	case ComparisonNone, ComparisonYearOverYear, ComparisonMonthOverMonth:
		return true
	}
	return false
}
