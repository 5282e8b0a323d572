package api

// CountEntry holds the message counters shared by domain totals and per-source rows.
type CountEntry struct {
	TotalCount        int64 `json:"total_count"`
	PassCount         int64 `json:"pass_count"`
	SPFAlignedCount   int64 `json:"spf_aligned_count"`
	DKIMAlignedCount  int64 `json:"dkim_aligned_count"`
	FullyAlignedCount int64 `json:"fully_aligned_count"`
}

type SummaryEntry struct {
	CountEntry
	Source     string `json:"source"`
	SourceType string `json:"source_type"`
}

type DomainSummaryResponse struct {
	Summary             []SummaryEntry `json:"summary"`
	DomainSummaryCounts CountEntry     `json:"domain_summary_counts"`
	StartDate           string         `json:"start_date"`
	EndDate             string         `json:"end_date"`
	Domain              string         `json:"domain"`
}

type DetailReportRow struct {
	MessageCount     int64    `json:"message_count"`
	ReportOrgName    string   `json:"report_org_name"`
	SourceIP         string   `json:"source_ip"`
	ESP              string   `json:"esp"`
	SourceDomain     string   `json:"source_domain"`
	SourceHost       string   `json:"source_host"`
	ReverseLookup    []string `json:"reverse_lookup"`
	Country          string   `json:"country"`
	Disposition      string   `json:"disposition"`
	EvalDKIM         string   `json:"eval_dkim"`
	EvalSPF          string   `json:"eval_spf"`
	HeaderFrom       string   `json:"header_from"`
	EnvelopeFrom     string   `json:"envelope_from"`
	EnvelopeTo       string   `json:"envelope_to"`
	AuthDKIMDomain   []string `json:"auth_dkim_domain"`
	AuthDKIMSelector []string `json:"auth_dkim_selector"`
	AuthDKIMResult   []string `json:"auth_dkim_result"`
	AuthSPFDomain    []string `json:"auth_spf_domain"`
	AuthSPFScope     []string `json:"auth_spf_scope"`
	AuthSPFResult    []string `json:"auth_spf_result"`
	POReason         []string `json:"po_reason"`
	POComment        []string `json:"po_comment"`
}

type DomainDetailResponse struct {
	DetailRows []DetailReportRow `json:"detail_rows"`
	Domain     string            `json:"domain"`
	Source     string            `json:"source"`
	StartDate  string            `json:"start_date,omitempty"`
	EndDate    string            `json:"end_date,omitempty"`
	SourceType string            `json:"source_type,omitempty"`
}

// ChartDataPoint is one point of a named series. Name is either a millisecond
// timestamp or a date string, Value is expected to be numeric but is not trusted.
type ChartDataPoint struct {
	Name  any `json:"name"`
	Value any `json:"value"`
}

type ChartDataSeries struct {
	Name   string           `json:"name"`
	Series []ChartDataPoint `json:"series"`
}

type FlatChartData struct {
	Dates []string  `json:"dates"`
	Pass  []float64 `json:"pass"`
	Fail  []float64 `json:"fail"`
}

// ChartDataResponse covers every chart payload the backend has been seen to send.
// At most one of the shapes is expected to be populated.
type ChartDataResponse struct {
	ChartData []ChartDataSeries `json:"chartdata,omitempty"`
	Flat      *FlatChartData    `json:"chart_data,omitempty"`
	Domain    string            `json:"domain,omitempty"`

	Dates []string  `json:"dates,omitempty"`
	Pass  []float64 `json:"pass,omitempty"`
	Fail  []float64 `json:"fail,omitempty"`
}

// ErrorResponse is the error body returned by the backend on non-2xx responses.
type ErrorResponse struct {
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}
