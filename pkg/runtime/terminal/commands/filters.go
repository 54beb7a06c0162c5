package commands

import (
	"fmt"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/spf13/cobra"
)

// FilterFlags are the dashboard filters shared by the read commands.
type FilterFlags struct {
	From       string
	To         string
	Preset     string
	Compare    string
	Categories []string
	Regions    []string
}

func (f *FilterFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.From, "from", "", "Start of the order date range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.To, "to", "", "End of the order date range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.Preset, "preset", "", "Named date range: 30d, 90d, ytd, last_year, all")
	cmd.Flags().StringVar(&f.Compare, "compare", "", "Compare against the previous period: yoy or mom")
	cmd.Flags().StringSliceVar(&f.Categories, "category", nil, "Category to include (repeatable)")
	cmd.Flags().StringSliceVar(&f.Regions, "region", nil, "Region to include (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("preset", "from")
	cmd.MarkFlagsMutuallyExclusive("preset", "to")
}

func (f *FilterFlags) Apply(session *dashboard.Session) error {
	switch {
	case f.Preset != "":
		if err := session.ApplyDatePreset(f.Preset); err != nil {
			return err
		}
	case f.From != "" || f.To != "":
		for _, bound := range []struct{ name, value string }{{"from", f.From}, {"to", f.To}} {
			if bound.value == "" {
				continue
			}
			if _, err := time.Parse(time.DateOnly, bound.value); err != nil {
				return fmt.Errorf("invalid --%s date %q, expected YYYY-MM-DD", bound.name, bound.value)
			}
		}
		session.SetDateFilter(f.From, f.To)
	}

	for _, c := range f.Categories {
		session.ToggleCategoryFilter(c)
	}
	for _, r := range f.Regions {
		session.ToggleRegionFilter(r)
	}

	if f.Compare != "" {
		return session.SetComparisonMode(domain.ComparisonMode(f.Compare))
	}
	return nil
}
