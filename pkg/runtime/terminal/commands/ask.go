package commands

import (
	"strings"

	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type AskCmd struct {
	filters    FilterFlags
	suggestion int
	env        Env
	reporter   *export.Reporter
}

func NewAskCmd(env Env, reporter *export.Reporter) *cobra.Command {
	ac := &AskCmd{env: env, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question about the filtered dataset",
		Long: "Ask a question about the filtered dataset. Without a question the " +
			"suggested questions are listed; --suggestion picks one of them by index.",
		RunE: ac.run,
	}
	ac.filters.Bind(cmd)
	cmd.Flags().IntVar(&ac.suggestion, "suggestion", -1, "Index of a suggested question to ask")
	return cmd
}

func (ac *AskCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.TrimSpace(strings.Join(args, " "))

	session, release, err := ac.env.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer release()

	if query == "" && ac.suggestion < 0 {
		return ac.reporter.Suggestions(session.Suggestions())
	}
	if err := ac.filters.Apply(session); err != nil {
		return err
	}

	if query == "" {
		reply, ok := session.ClickSuggestion(ctx, ac.suggestion)
		if !ok {
			return ac.reporter.Suggestions(session.Suggestions())
		}
		return ac.reporter.Answer(reply.Content)
	}
	return ac.reporter.Answer(session.SubmitQuery(ctx, query).Content)
}
