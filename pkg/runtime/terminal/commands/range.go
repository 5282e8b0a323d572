package commands

import (
	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/de-tools/dmarc-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type RangeCmd struct {
	load     StoreLoader
	reporter *export.Reporter
}

// NewRangeCmd manages the date range remembered between invocations.
func NewRangeCmd(load StoreLoader, reporter *export.Reporter) *cobra.Command {
	rc := &RangeCmd{load: load, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Show or change the selected date range",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the selected date range",
		Args:  cobra.NoArgs,
		RunE:  rc.show,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <start> <end>",
		Short: "Select a date range (YYYY-MM-DD YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE:  rc.set,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Go back to the last 30 days",
		Args:  cobra.NoArgs,
		RunE:  rc.reset,
	})

	return cmd
}

func (rc *RangeCmd) show(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := rc.load(ctx)
	if err != nil {
		return err
	}
	return rc.reporter.Range(store.SelectedRange(ctx))
}

func (rc *RangeCmd) set(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := rc.load(ctx)
	if err != nil {
		return err
	}

	r := domain.DateRange{StartDate: args[0], EndDate: args[1]}
	if err := store.SelectRange(ctx, r); err != nil {
		return err
	}
	return rc.reporter.Range(r)
}

func (rc *RangeCmd) reset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := rc.load(ctx)
	if err != nil {
		return err
	}

	store.ResetRange(ctx)
	return rc.reporter.Range(store.SelectedRange(ctx))
}
