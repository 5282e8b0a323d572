package commands

import (
	"github.com/de-tools/dmarc-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type ReportCmd struct {
	startDate string
	endDate   string
	load      StoreLoader
	reporter  *export.Reporter
}

func NewReportCmd(load StoreLoader, reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report <domain>",
		Short: "Show the DMARC summary report of a domain",
		Long: `Show the per-source summary of a domain together with a daily pass/fail chart.
Without --start and --end the range selected with "range set" is used, or the last 30 days.`,
		Args: cobra.ExactArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringVar(&rc.startDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.endDate, "end", "", "End date (YYYY-MM-DD)")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := rc.load(ctx)
	if err != nil {
		return err
	}

	start, end := resolveDates(ctx, store, rc.startDate, rc.endDate)
	store.FetchSummaryReport(ctx, args[0], start, end)
	if err := storeError(store); err != nil {
		return err
	}
	return rc.reporter.Summary(store.Snapshot().SummaryReport, store.ChartView(ctx))
}
