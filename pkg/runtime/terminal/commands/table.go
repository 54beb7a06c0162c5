package commands

import (
	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type TableCmd struct {
	filters FilterFlags
	search  string
	sort    string
	asc     bool
	page    int
	env     Env
	report  *export.Reporter
}

func NewTableCmd(env Env, reporter *export.Reporter) *cobra.Command {
	tc := &TableCmd{env: env, report: reporter}
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print one page of the transaction table",
		Args:  cobra.NoArgs,
		RunE:  tc.run,
	}
	tc.filters.Bind(cmd)
	cmd.Flags().StringVar(&tc.search, "search", "", "Case-insensitive search over product, category, customer and region")
	cmd.Flags().StringVar(&tc.sort, "sort", "", "Column to sort by, e.g. \"Order Date\"")
	cmd.Flags().BoolVar(&tc.asc, "asc", false, "Sort ascending instead of descending")
	cmd.Flags().IntVar(&tc.page, "page", 1, "Page to print")
	return cmd
}

func (tc *TableCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	session, release, err := tc.env.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := tc.filters.Apply(session); err != nil {
		return err
	}
	if tc.search != "" {
		session.SetSearchQuery(tc.search)
	}
	_, state := session.Table(ctx)
	column := state.SortColumn
	if tc.sort != "" && tc.sort != column {
		if err := session.SortBy(tc.sort); err != nil {
			return err
		}
		column = tc.sort
	}
	// a fresh column always starts descending, so sorting it again flips it
	if tc.asc {
		if err := session.SortBy(column); err != nil {
			return err
		}
	}
	session.SetPage(ctx, tc.page)

	view, state := session.Table(ctx)
	return tc.report.Table(view, state)
}
