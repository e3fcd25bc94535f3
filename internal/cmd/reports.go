package cmd

import (
	"fmt"

	"github.com/cognicore/paperiq/internal/report"
	"github.com/cognicore/paperiq/pkg/paperiq/internalerr"
	"github.com/spf13/cobra"
)

var listLimit int

var reportsCmd = &cobra.Command{
	Use:   "reports [id]",
	Short: "Browse archived reports",
	Long: `List archived reports, newest first, or show one report in full.

Archiving is enabled with archive.path in the config or PAPERIQ_ARCHIVE_PATH.

Examples:
  paperiq reports
  paperiq reports --limit 50
  paperiq reports 01J9Z3W4Q8R6T2M5N7P0XKVB3C --format json`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runReports,
	SilenceUsage: true,
}

func init() {
	reportsCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum number of reports to list (default 20)")
	RootCmd.AddCommand(reportsCmd)
}

func runReports(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := setup(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.comp.Archive == nil {
		return internalerr.ErrArchiveDisabled
	}
	renderer, err := report.New(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		summaries, err := s.comp.Archive.List(ctx, listLimit)
		if err != nil {
			return fmt.Errorf("list reports: %w", err)
		}
		return renderer.RenderList(summaries)
	}

	rec, found, err := s.comp.Archive.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get report %s: %w", args[0], err)
	}
	if !found {
		return fmt.Errorf("report %s: %w", args[0], internalerr.ErrNotFound)
	}
	out := report.NewAnalysis(rec.Report, rec.Source)
	out.ID = rec.ID
	return renderer.Render(out)
}
