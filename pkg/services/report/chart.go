package report

import (
	"context"

	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	passColor      = "#4CAF50"
	passBackground = "rgba(76, 175, 80, 0.1)"
	failColor      = "#F44336"
	failBackground = "rgba(244, 67, 54, 0.1)"
)

// BuildChartView projects chart data into two labelled datasets, Pass and Fail.
// It returns nil when there is nothing to draw; callers must not render an
// empty chart in that case.
func BuildChartView(ctx context.Context, data *domain.ChartData) *domain.ChartView {
	if data == nil {
		return nil
	}
	logger := zerolog.Ctx(ctx)

	if len(data.Dates) == 0 {
		logger.Warn().Msg("chart data missing dates array or empty dates array")
		return nil
	}
	if data.Pass == nil || data.Fail == nil {
		logger.Warn().Msg("chart data missing required data arrays")
		return nil
	}
	if len(data.Pass) != len(data.Dates) || len(data.Fail) != len(data.Dates) {
		logger.Warn().
			Int("dates", len(data.Dates)).
			Int("pass", len(data.Pass)).
			Int("fail", len(data.Fail)).
			Msg("chart data arrays have different lengths")
		return nil
	}

	return &domain.ChartView{
		Labels: data.Dates,
		Datasets: []domain.ChartDataset{
			dataset("Pass", data.Pass, passColor, passBackground),
			dataset("Fail", data.Fail, failColor, failBackground),
		},
	}
}

func dataset(label string, values []float64, color, background string) domain.ChartDataset {
	return domain.ChartDataset{
		Label:                     label,
		Data:                      values,
		BorderColor:               color,
		BackgroundColor:           background,
		Fill:                      true,
		PointRadius:               0,
		PointBorderWidth:          0,
		PointHoverRadius:          4,
		PointHoverBorderWidth:     4,
		PointHoverBackgroundColor: color,
	}
}
