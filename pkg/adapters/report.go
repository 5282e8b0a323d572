package adapters

import (
	"github.com/de-tools/dmarc-atlas/pkg/models/api"
	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
)

// MapSummaryResponseToDomain builds the summary view. An empty response still
// yields a report for the requested domain so a chart can be attached to it.
func MapSummaryResponseToDomain(resp *api.DomainSummaryResponse, name string, r domain.DateRange) *domain.SummaryReport {
	if resp == nil {
		return &domain.SummaryReport{
			Domain:    name,
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			Summary:   []api.SummaryEntry{},
		}
	}

	report := &domain.SummaryReport{
		Domain:              resp.Domain,
		StartDate:           resp.StartDate,
		EndDate:             resp.EndDate,
		DomainSummaryCounts: resp.DomainSummaryCounts,
		Summary:             resp.Summary,
	}
	if report.Domain == "" {
		report.Domain = name
	}
	if report.Summary == nil {
		report.Summary = []api.SummaryEntry{}
	}
	return report
}

func MapDetailResponseToDomain(resp *api.DomainDetailResponse, name, source, sourceType string, r domain.DateRange) *domain.DetailReport {
	report := &domain.DetailReport{
		Domain:     name,
		Source:     source,
		SourceType: sourceType,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Rows:       []api.DetailReportRow{},
	}
	if resp == nil {
		return report
	}

	if resp.DetailRows != nil {
		report.Rows = resp.DetailRows
	}
	if resp.Domain != "" {
		report.Domain = resp.Domain
	}
	if resp.Source != "" {
		report.Source = resp.Source
	}
	if resp.SourceType != "" {
		report.SourceType = resp.SourceType
	}
	if resp.StartDate != "" {
		report.StartDate = resp.StartDate
	}
	if resp.EndDate != "" {
		report.EndDate = resp.EndDate
	}
	return report
}
