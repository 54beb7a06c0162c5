package commands

import (
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	dataexport "github.com/de-tools/sales-atlas/pkg/services/export"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	filters  FilterFlags
	env      Env
	reporter *export.Reporter
}

func NewSummaryCmd(env Env, reporter *export.Reporter) *cobra.Command {
	sc := &SummaryCmd{env: env, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print KPIs and rankings of the filtered dataset",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}
	sc.filters.Bind(cmd)
	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	session, release, err := sc.env.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := sc.filters.Apply(session); err != nil {
		return err
	}

	snapshot := session.Snapshot(ctx)
	filters, _ := session.Filters()
	status := session.Status()

	return sc.reporter.Summary(export.SummaryReport{
		Title:      "Superstore Sales Summary",
		Source:     status.Source,
		Filters:    dataexport.DescribeFilters(filters),
		Rows:       session.Filtered(ctx).Len(),
		LoadError:  status.Error,
		KPI:        snapshot.KPI,
		Comparison: session.Comparison(ctx),
		Sections: []export.Section{
			{Title: "Sales by Category", Rows: snapshot.CategoryPerformance},
			{Title: "Sales by Region", Rows: snapshot.RegionalSales},
			{Title: "Profit by Category", Rows: snapshot.ProfitByCategory},
			{Title: "Top Products", Rows: snapshot.TopProducts},
		},
	})
}
