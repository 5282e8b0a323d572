package util

import (
	"github.com/de-tools/dmarc-atlas/pkg/models/api"
	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
)

// CalculatePassingPercentage returns the share of passing messages in [0, 100].
func CalculatePassingPercentage(item api.CountEntry) float64 {
	if item.TotalCount == 0 {
		return 0
	}
	return float64(item.PassCount) / float64(item.TotalCount) * 100
}

// PercentageColor maps a passing percentage to its display tier.
func PercentageColor(percentage float64) domain.Severity {
	if percentage >= 99 {
		return domain.SeveritySuccess
	}
	if percentage >= 90 {
		return domain.SeverityWarning
	}
	return domain.SeverityError
}
