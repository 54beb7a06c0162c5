package filter

import (
	"fmt"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const (
	PresetLast30Days = "30d"
	PresetLast90Days = "90d"
	PresetYearToDate = "ytd"
	PresetLastYear   = "last_year"
	PresetAll        = "all"
)

var Presets = []string{PresetLast30Days, PresetLast90Days, PresetYearToDate, PresetLastYear, PresetAll}

// Preset resolves a named range relative to anchor, usually the latest order
// date of the dataset. PresetAll clears the range.
func Preset(name string, anchor time.Time) (domain.DateRange, error) {
	anchor = domain.DateOnly(anchor)
	var start, end time.Time

	switch name {
	case PresetAll:
		return domain.DateRange{}, nil
	case PresetLast30Days:
		start, end = anchor.AddDate(0, 0, -29), anchor
	case PresetLast90Days:
		start, end = anchor.AddDate(0, 0, -89), anchor
	case PresetYearToDate:
		start, end = time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), anchor
	case PresetLastYear:
		year := anchor.Year() - 1
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		return domain.DateRange{}, fmt.Errorf("%w: %q", domain.ErrUnknownPreset, name)
	}

	return domain.DateRange{
		Start: start.Format(time.DateOnly),
		End:   end.Format(time.DateOnly),
	}, nil
}
