package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/de-tools/dmarc-atlas/pkg/models/api"
	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/de-tools/dmarc-atlas/pkg/util"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("240")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

var severityStyles = map[domain.Severity]lipgloss.Style{
	domain.SeveritySuccess: passStyle,
	domain.SeverityWarning: warnStyle,
	domain.SeverityError:   failStyle,
}

type TableConfig struct {
	SourceWidth int
	TypeWidth   int
	CountWidth  int
	RateWidth   int
	LabelWidth  int
	BarWidth    int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		SourceWidth: 30,
		TypeWidth:   12,
		CountWidth:  12,
		RateWidth:   8,
		LabelWidth:  18,
		BarWidth:    40,
	}
}

// Reporter renders report views as styled terminal output.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Domains(domains []string) error {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Domains (%d)", len(domains))))
	sb.WriteString("\n")
	if len(domains) == 0 {
		sb.WriteString(mutedStyle.Render("No domains reported yet"))
		sb.WriteString("\n")
	}
	for _, d := range domains {
		sb.WriteString("  " + d + "\n")
	}
	return c.write(sb.String())
}

func (c *Reporter) Range(r domain.DateRange) error {
	return c.write(fmt.Sprintf("%s %s to %s\n", labelStyle.Render("Date range:"), r.StartDate, r.EndDate))
}

// Summary renders the domain totals, the per-source table and, when chart is
// not nil, one pass/fail bar per day.
func (c *Reporter) Summary(report *domain.SummaryReport, chart *domain.ChartView) error {
	if report == nil {
		return c.write(mutedStyle.Render("No summary report loaded") + "\n")
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("DMARC summary for " + report.Domain))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Period: "))
	sb.WriteString(fmt.Sprintf("%s to %s\n", report.StartDate, report.EndDate))

	totals := report.DomainSummaryCounts
	sb.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  %s %s\n",
		labelStyle.Render("Messages"), util.FormatNumber(totals.TotalCount),
		labelStyle.Render("Passing"), formatRate(util.CalculatePassingPercentage(totals)),
		labelStyle.Render("SPF aligned"), util.FormatNumber(totals.SPFAlignedCount),
		labelStyle.Render("DKIM aligned"), util.FormatNumber(totals.DKIMAlignedCount),
		labelStyle.Render("Fully aligned"), util.FormatNumber(totals.FullyAlignedCount)))

	sb.WriteString(sectionStyle.Render("Sources"))
	sb.WriteString("\n")
	if len(report.Summary) == 0 {
		sb.WriteString(mutedStyle.Render("No sources reported for this period"))
		sb.WriteString("\n")
	} else {
		sb.WriteString(c.renderSummaryTable(report.Summary))
	}

	if chart != nil {
		sb.WriteString(sectionStyle.Render("Daily pass/fail"))
		sb.WriteString("\n")
		sb.WriteString(c.renderChart(chart))
	}

	return c.write(sb.String())
}

func (c *Reporter) renderSummaryTable(entries []api.SummaryEntry) string {
	widths := []int{
		c.config.SourceWidth, c.config.TypeWidth, c.config.CountWidth, c.config.CountWidth,
		c.config.RateWidth, c.config.CountWidth, c.config.CountWidth, c.config.CountWidth,
	}

	var sb strings.Builder
	sb.WriteString(renderTableRow(widths, true,
		"Source", "Type", "Messages", "Pass", "Rate", "SPF", "DKIM", "Aligned"))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString(renderTableRow(widths, false,
			util.DashPlaceholder(e.Source),
			util.DashPlaceholder(e.SourceType),
			util.FormatNumber(e.TotalCount),
			util.FormatNumber(e.PassCount),
			formatRate(util.CalculatePassingPercentage(e.CountEntry)),
			util.FormatNumber(e.SPFAlignedCount),
			util.FormatNumber(e.DKIMAlignedCount),
			util.FormatNumber(e.FullyAlignedCount),
		))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (c *Reporter) renderChart(chart *domain.ChartView) string {
	pass := datasetValues(chart, "Pass")
	fail := datasetValues(chart, "Fail")

	peak := 0.0
	for i := range chart.Labels {
		peak = math.Max(peak, valueAt(pass, i)+valueAt(fail, i))
	}

	var sb strings.Builder
	for i, label := range chart.Labels {
		p, f := valueAt(pass, i), valueAt(fail, i)
		passLen, failLen := 0, 0
		if peak > 0 {
			passLen = int(math.Round(p / peak * float64(c.config.BarWidth)))
			failLen = int(math.Round(f / peak * float64(c.config.BarWidth)))
		}
		bar := passStyle.Render(strings.Repeat("█", passLen)) +
			failStyle.Render(strings.Repeat("█", failLen)) +
			strings.Repeat(" ", max(0, c.config.BarWidth-passLen-failLen))

		sb.WriteString(fmt.Sprintf("%s %s %s / %s\n",
			labelStyle.Render(label), bar,
			passStyle.Render(util.FormatNumber(p)),
			failStyle.Render(util.FormatNumber(f))))
	}
	return sb.String()
}

// Detail renders every evaluation row of a source as a labelled block.
func (c *Reporter) Detail(report *domain.DetailReport) error {
	if report == nil {
		return c.write(mutedStyle.Render("No detail report loaded") + "\n")
	}

	var sb strings.Builder
	title := fmt.Sprintf("Detail report for %s on %s", report.Source, report.Domain)
	if report.SourceType != "" {
		title = fmt.Sprintf("Detail report for %s (%s) on %s", report.Source, report.SourceType, report.Domain)
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Period: "))
	sb.WriteString(fmt.Sprintf("%s to %s\n", report.StartDate, report.EndDate))

	if len(report.Rows) == 0 {
		sb.WriteString(mutedStyle.Render("No records for this source"))
		sb.WriteString("\n")
		return c.write(sb.String())
	}

	for i, row := range report.Rows {
		sb.WriteString(sectionStyle.Render(fmt.Sprintf("Record %d", i+1)))
		sb.WriteString("\n")
		for _, f := range detailFields(row) {
			label := labelStyle.Width(c.config.LabelWidth).Render(f.label)
			sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, f.value))
			sb.WriteString("\n")
		}
	}
	return c.write(sb.String())
}

type detailField struct {
	label string
	value string
}

func detailFields(row api.DetailReportRow) []detailField {
	return []detailField{
		{"Messages", util.FormatNumber(row.MessageCount)},
		{"Reporter", util.DashPlaceholder(row.ReportOrgName)},
		{"Source IP", util.DashPlaceholder(row.SourceIP)},
		{"ESP", util.DashPlaceholder(row.ESP)},
		{"Source domain", util.DashPlaceholder(row.SourceDomain)},
		{"Source host", util.DashPlaceholder(row.SourceHost)},
		{"Reverse lookup", util.DashPlaceholder(row.ReverseLookup)},
		{"Country", util.DashPlaceholder(row.Country)},
		{"Disposition", util.DashPlaceholder(row.Disposition)},
		{"DKIM", formatResult(row.EvalDKIM)},
		{"SPF", formatResult(row.EvalSPF)},
		{"Header from", util.DashPlaceholder(row.HeaderFrom)},
		{"Envelope from", util.DashPlaceholder(row.EnvelopeFrom)},
		{"Envelope to", util.DashPlaceholder(row.EnvelopeTo)},
		{"DKIM domain", util.DashPlaceholder(row.AuthDKIMDomain)},
		{"DKIM selector", util.DashPlaceholder(row.AuthDKIMSelector)},
		{"DKIM result", util.DashPlaceholder(row.AuthDKIMResult)},
		{"SPF domain", util.DashPlaceholder(row.AuthSPFDomain)},
		{"SPF scope", util.DashPlaceholder(row.AuthSPFScope)},
		{"SPF result", util.DashPlaceholder(row.AuthSPFResult)},
		{"Override reason", util.DashPlaceholder(row.POReason)},
		{"Override comment", util.DashPlaceholder(row.POComment)},
	}
}

func (c *Reporter) write(s string) error {
	_, err := io.WriteString(c.writer, s)
	return err
}

func renderTableRow(widths []int, isHeader bool, cells ...string) string {
	parts := make([]string, 0, len(cells))
	for i, cell := range cells {
		width := 15
		if i < len(widths) {
			width = widths[i]
		}

		// lipgloss.Width ignores ANSI sequences
		padded := cell
		if w := lipgloss.Width(cell); w < width {
			padded = cell + strings.Repeat(" ", width-w)
		}

		if isHeader {
			parts = append(parts, headerStyle.Render(padded))
		} else {
			parts = append(parts, cellStyle.Render(padded))
		}
	}
	return strings.Join(parts, "")
}

func formatRate(rate float64) string {
	return severityStyles[util.PercentageColor(rate)].Render(fmt.Sprintf("%.1f%%", rate))
}

func formatResult(result string) string {
	switch strings.ToLower(result) {
	case "pass":
		return passStyle.Render(result)
	case "fail":
		return failStyle.Render(result)
	default:
		return util.DashPlaceholder(result)
	}
}

func datasetValues(chart *domain.ChartView, label string) []float64 {
	for _, ds := range chart.Datasets {
		if ds.Label == label {
			return ds.Data
		}
	}
	return nil
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
