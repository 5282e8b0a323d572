package commands

import (
	"context"
	"errors"

	"github.com/de-tools/dmarc-atlas/pkg/services/report"
)

// StoreLoader returns the report store built from the global flags.
type StoreLoader func(ctx context.Context) (*report.Store, error)

// storeError turns the error message left in the store by the last fetch into
// a command error.
func storeError(store *report.Store) error {
	if msg := store.Snapshot().Error; msg != "" {
		return errors.New(msg)
	}
	return nil
}
