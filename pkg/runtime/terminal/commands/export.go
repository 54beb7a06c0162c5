package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/sales-atlas/pkg/services/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultExportName = "superstore_sales"

type ExportCmd struct {
	filters FilterFlags
	format  string
	output  string
	env     Env
}

func NewExportCmd(env Env) *cobra.Command {
	ec := &ExportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered transactions as csv, xlsx or pdf",
		Args:  cobra.NoArgs,
		RunE:  ec.run,
	}
	ec.filters.Bind(cmd)
	cmd.Flags().StringVar(&ec.format, "format", "csv", "Export format: csv, xlsx or pdf")
	cmd.Flags().StringVarP(&ec.output, "output", "o", "", "Output file, \"-\" for stdout (default superstore_sales.<ext>)")
	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	format, err := export.ParseFormat(ec.format)
	if err != nil {
		return err
	}

	session, release, err := ec.env.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := ec.filters.Apply(session); err != nil {
		return err
	}

	data, exporter, err := session.Export(ctx, format)
	if err != nil {
		return fmt.Errorf("failed to export dataset: %w", err)
	}

	if ec.output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	path := ec.output
	if path == "" {
		path = defaultExportName + exporter.GetFileExtension()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info().Str("path", path).Int("bytes", len(data)).Msg("export written")
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", session.Filtered(ctx).Len(), path)
	return err
}
