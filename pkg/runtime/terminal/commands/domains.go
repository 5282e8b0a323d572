package commands

import (
	"github.com/de-tools/dmarc-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type DomainsCmd struct {
	load     StoreLoader
	reporter *export.Reporter
}

func NewDomainsCmd(load StoreLoader, reporter *export.Reporter) *cobra.Command {
	dc := &DomainsCmd{load: load, reporter: reporter}
	return &cobra.Command{
		Use:   "domains",
		Short: "List the domains with DMARC reports",
		Args:  cobra.NoArgs,
		RunE:  dc.run,
	}
}

func (dc *DomainsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := dc.load(ctx)
	if err != nil {
		return err
	}

	store.FetchDomains(ctx)
	if err := storeError(store); err != nil {
		return err
	}
	return dc.reporter.Domains(store.Snapshot().Domains)
}
