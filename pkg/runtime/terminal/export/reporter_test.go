package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/de-tools/dmarc-atlas/pkg/models/api"
	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Summary(t *testing.T) {
	t.Run("renders totals, sources and chart", func(t *testing.T) {
		var buf bytes.Buffer
		report := &domain.SummaryReport{
			Domain:    "example.com",
			StartDate: "2024-03-01",
			EndDate:   "2024-03-31",
			DomainSummaryCounts: api.CountEntry{
				TotalCount: 2000, PassCount: 1990, SPFAlignedCount: 1500, DKIMAlignedCount: 1800, FullyAlignedCount: 1400,
			},
			Summary: []api.SummaryEntry{
				{Source: "Google", SourceType: "ESP", CountEntry: api.CountEntry{TotalCount: 1000, PassCount: 950}},
				{Source: "", SourceType: "", CountEntry: api.CountEntry{TotalCount: 0}},
			},
		}
		chart := &domain.ChartView{
			Labels: []string{"2024-03-01", "2024-03-02"},
			Datasets: []domain.ChartDataset{
				{Label: "Pass", Data: []float64{30, 10}},
				{Label: "Fail", Data: []float64{10}},
			},
		}

		require.NoError(t, NewReporter(&buf).Summary(report, chart))

		out := buf.String()
		assert.Contains(t, out, "DMARC summary for example.com")
		assert.Contains(t, out, "2024-03-01 to 2024-03-31")
		assert.Contains(t, out, "2,000")
		assert.Contains(t, out, "99.5%")
		assert.Contains(t, out, "95.0%")
		assert.Contains(t, out, "0.0%")
		assert.Contains(t, out, "Daily pass/fail")
		assert.Contains(t, out, "30 / 10")
		assert.Contains(t, out, "10 / 0")
		assert.Equal(t, 40, strings.Count(lineWith(out, "30 / 10"), "█"))
	})

	t.Run("no chart and no sources", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf).Summary(&domain.SummaryReport{Domain: "example.com"}, nil))

		assert.Contains(t, buf.String(), "No sources reported for this period")
		assert.NotContains(t, buf.String(), "Daily pass/fail")
	})

	t.Run("nil report", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf).Summary(nil, nil))

		assert.Contains(t, buf.String(), "No summary report loaded")
	})
}

func TestReporter_Detail(t *testing.T) {
	var buf bytes.Buffer
	detail := &domain.DetailReport{
		Domain:     "example.com",
		Source:     "Google",
		SourceType: "ESP",
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-31",
		Rows: []api.DetailReportRow{{
			MessageCount:   1500,
			SourceIP:       "192.0.2.1",
			Country:        `""`,
			EvalDKIM:       "pass",
			AuthDKIMDomain: []string{"example.com", "mail.example.com"},
		}},
	}

	require.NoError(t, NewReporter(&buf).Detail(detail))

	out := buf.String()
	assert.Contains(t, out, "Detail report for Google (ESP) on example.com")
	assert.Contains(t, out, "Record 1")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "192.0.2.1")
	assert.Contains(t, out, "mail.example.com")
	assert.Contains(t, lineWith(out, "Country"), "-")
	assert.Contains(t, lineWith(out, "Reverse lookup"), "-")
	assert.NotContains(t, out, `""`)
}

func TestReporter_DetailWithoutRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Detail(&domain.DetailReport{Domain: "example.com", Source: "Google"}))

	assert.Contains(t, buf.String(), "Detail report for Google on example.com")
	assert.Contains(t, buf.String(), "No records for this source")
}

func TestReporter_DomainsAndRange(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	require.NoError(t, r.Domains(nil))
	require.NoError(t, r.Domains([]string{"example.com"}))
	require.NoError(t, r.Range(domain.DateRange{StartDate: "2024-03-01", EndDate: "2024-03-31"}))

	out := buf.String()
	assert.Contains(t, out, "Domains (0)")
	assert.Contains(t, out, "No domains reported yet")
	assert.Contains(t, out, "Domains (1)")
	assert.Contains(t, out, "  example.com")
	assert.Contains(t, out, "Date range: 2024-03-01 to 2024-03-31")
}

func lineWith(out, needle string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	return ""
}
