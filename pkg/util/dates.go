// Package util holds the small helpers shared by the dashboard views.
package util

import (
	"time"

	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
)

const defaultRangeDays = 30

var now = time.Now

// DefaultRange returns the last 30 days ending today, as UTC calendar dates.
func DefaultRange() domain.DateRange {
	return DefaultRangeAt(now())
}

func DefaultRangeAt(t time.Time) domain.DateRange {
	end := t.UTC()
	start := end.AddDate(0, 0, -defaultRangeDays)
	return domain.DateRange{
		StartDate: start.Format(domain.DateLayout),
		EndDate:   end.Format(domain.DateLayout),
	}
}

// ResolveRange fills a partially specified range with the default one.
// Both bounds are replaced when either is missing.
func ResolveRange(start, end string) domain.DateRange {
	if start == "" || end == "" {
		return DefaultRange()
	}
	return domain.DateRange{StartDate: start, EndDate: end}
}

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, value, time.UTC)
}
