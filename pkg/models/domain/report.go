package domain

import "github.com/de-tools/dmarc-atlas/pkg/models/api"

// SummaryReport is the summary view of a domain over a date range
type SummaryReport struct {
	Domain              string             `json:"domain"`
	StartDate           string             `json:"start_date"`
	EndDate             string             `json:"end_date"`
	DomainSummaryCounts api.CountEntry     `json:"domain_summary_counts"`
	Summary             []api.SummaryEntry `json:"summary"`
	ChartData           *ChartData         `json:"chart_data,omitempty"`
}

// DetailReport holds the per-message evaluation rows for one source
type DetailReport struct {
	Domain     string                `json:"domain"`
	Source     string                `json:"source"`
	SourceType string                `json:"source_type"`
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	Rows       []api.DetailReportRow `json:"detail_rows"`
}

// ChartData is the canonical chart shape: parallel date, pass and fail arrays
type ChartData struct {
	Dates []string  `json:"dates"`
	Pass  []float64 `json:"pass"`
	Fail  []float64 `json:"fail"`
}

// ChartDataset is one labelled, coloured line ready for a charting component
type ChartDataset struct {
	Label                     string    `json:"label"`
	Data                      []float64 `json:"data"`
	BorderColor               string    `json:"borderColor"`
	BackgroundColor           string    `json:"backgroundColor"`
	Fill                      bool      `json:"fill"`
	PointRadius               int       `json:"pointRadius"`
	PointBorderWidth          int       `json:"pointBorderWidth"`
	PointHoverRadius          int       `json:"pointHoverRadius"`
	PointHoverBorderWidth     int       `json:"pointHoverBorderWidth"`
	PointHoverBackgroundColor string    `json:"pointHoverBackgroundColor"`
}

// ChartView is the rendered form of ChartData
type ChartView struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}
