package commands

import (
	"context"
	"strings"

	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/de-tools/dmarc-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/dmarc-atlas/pkg/services/report"
	"github.com/de-tools/dmarc-atlas/pkg/util"
	"github.com/spf13/cobra"
)

type DetailCmd struct {
	source     string
	sourceType string
	startDate  string
	endDate    string
	copyIPs    bool
	load       StoreLoader
	reporter   *export.Reporter
	clipboard  func(ctx context.Context, text string)
}

func NewDetailCmd(load StoreLoader, reporter *export.Reporter) *cobra.Command {
	dc := &DetailCmd{load: load, reporter: reporter, clipboard: util.CopyToClipboard}
	cmd := &cobra.Command{
		Use:   "detail <domain>",
		Short: "Show the per-message evaluation rows of one source",
		Args:  cobra.ExactArgs(1),
		RunE:  dc.run,
	}

	cmd.Flags().StringVar(&dc.source, "source", "", "Sending source, as listed by the report command")
	cmd.Flags().StringVar(&dc.sourceType, "source-type", "", "Source type, as listed by the report command")
	cmd.Flags().StringVar(&dc.startDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dc.endDate, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&dc.copyIPs, "copy", false, "Copy the source IPs of the report to the clipboard")

	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func (dc *DetailCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := dc.load(ctx)
	if err != nil {
		return err
	}

	start, end := resolveDates(ctx, store, dc.startDate, dc.endDate)
	store.FetchDetailReport(ctx, args[0], dc.source, start, end, dc.sourceType)
	if err := storeError(store); err != nil {
		return err
	}

	detail := store.Snapshot().DetailReport
	if dc.copyIPs && detail != nil {
		dc.clipboard(ctx, sourceIPs(detail))
	}
	return dc.reporter.Detail(detail)
}

func sourceIPs(detail *domain.DetailReport) string {
	ips := make([]string, 0, len(detail.Rows))
	for _, row := range detail.Rows {
		if row.SourceIP != "" {
			ips = append(ips, row.SourceIP)
		}
	}
	return strings.Join(ips, "\n")
}

// resolveDates prefers the flags and falls back to the selected range.
func resolveDates(ctx context.Context, store *report.Store, start, end string) (string, string) {
	if start == "" && end == "" {
		selected := store.SelectedRange(ctx)
		return selected.StartDate, selected.EndDate
	}
	return start, end
}
