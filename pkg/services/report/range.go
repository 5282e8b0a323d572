package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/de-tools/dmarc-atlas/pkg/util"
	"github.com/rs/zerolog"
)

// RangeKey is the session key under which the selected date range is cached.
const RangeKey = "dmarc.dateRange"

// SelectRange validates r and remembers it for later views.
func (s *Store) SelectRange(ctx context.Context, r domain.DateRange) error {
	start, err := util.ParseDate(r.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", r.StartDate, err)
	}
	end, err := util.ParseDate(r.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", r.EndDate, err)
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", r.EndDate, r.StartDate)
	}

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode date range: %w", err)
	}
	s.storage.Set(ctx, RangeKey, string(payload))
	return nil
}

// SelectedRange returns the cached range, or the default range when nothing
// usable is cached.
func (s *Store) SelectedRange(ctx context.Context) domain.DateRange {
	raw, ok := s.storage.Get(ctx, RangeKey)
	if !ok {
		return util.DefaultRange()
	}

	var r domain.DateRange
	if err := json.Unmarshal([]byte(raw), &r); err != nil || r.StartDate == "" || r.EndDate == "" {
		zerolog.Ctx(ctx).Warn().Err(err).Str("value", raw).Msg("discarding unreadable cached date range")
		s.storage.Remove(ctx, RangeKey)
		return util.DefaultRange()
	}
	return r
}

func (s *Store) ResetRange(ctx context.Context) {
	s.storage.Remove(ctx, RangeKey)
}
