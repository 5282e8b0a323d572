package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/de-tools/dmarc-atlas/pkg/models/api"
	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
)

const (
	seriesPass = "pass"
	seriesFail = "fail"

	// maxTimestampMs bounds representable dates to +/-100,000,000 days around the epoch.
	maxTimestampMs = 8.64e15
)

var (
	ErrUnknownChartShape    = errors.New("unexpected chart data format")
	ErrMissingSeries        = errors.New("chart data is missing the pass or fail series")
	ErrSeriesLengthMismatch = errors.New("pass and fail series have different lengths")
	ErrEmptyChart           = errors.New("chart data has no usable points")
)

// ChartShape is one of the chart payload layouts served by the backend:
// SeriesShape or FlatShape.
type ChartShape interface {
	isChartShape()
}

// SeriesShape is a list of named series, each a sequence of (date, value) points.
type SeriesShape struct {
	Series []api.ChartDataSeries
}

// FlatShape is a payload already laid out as parallel date/pass/fail arrays.
type FlatShape struct {
	Data domain.ChartData
}

func (SeriesShape) isChartShape() {}
func (FlatShape) isChartShape()   {}

// ResolveChartShape discriminates the payload by the fields it carries.
// It returns nil when the payload matches neither shape.
func ResolveChartShape(resp *api.ChartDataResponse) ChartShape {
	if resp == nil {
		return nil
	}
	if resp.ChartData != nil {
		return SeriesShape{Series: resp.ChartData}
	}
	if resp.Flat != nil {
		return FlatShape{Data: domain.ChartData{
			Dates: resp.Flat.Dates,
			Pass:  resp.Flat.Pass,
			Fail:  resp.Flat.Fail,
		}}
	}
	if resp.Dates != nil && resp.Pass != nil && resp.Fail != nil {
		return FlatShape{Data: domain.ChartData{Dates: resp.Dates, Pass: resp.Pass, Fail: resp.Fail}}
	}
	return nil
}

// NormalizeChart turns any supported chart shape into the canonical ChartData.
func NormalizeChart(ctx context.Context, shape ChartShape) (*domain.ChartData, error) {
	switch s := shape.(type) {
	case SeriesShape:
		return normalizeSeries(ctx, s.Series)
	case FlatShape:
		if len(s.Data.Pass) != len(s.Data.Fail) {
			return nil, fmt.Errorf("%w: pass=%d fail=%d", ErrSeriesLengthMismatch, len(s.Data.Pass), len(s.Data.Fail))
		}
		data := s.Data
		return &data, nil
	default:
		return nil, ErrUnknownChartShape
	}
}

func normalizeSeries(ctx context.Context, series []api.ChartDataSeries) (*domain.ChartData, error) {
	logger := zerolog.Ctx(ctx)

	pass, ok := findSeries(series, seriesPass)
	if !ok {
		return nil, ErrMissingSeries
	}
	fail, ok := findSeries(series, seriesFail)
	if !ok {
		return nil, ErrMissingSeries
	}
	if len(pass.Series) != len(fail.Series) {
		return nil, fmt.Errorf("%w: pass=%d fail=%d", ErrSeriesLengthMismatch, len(pass.Series), len(fail.Series))
	}

	data := &domain.ChartData{
		Dates: make([]string, 0, len(pass.Series)),
		Pass:  make([]float64, 0, len(pass.Series)),
		Fail:  make([]float64, 0, len(pass.Series)),
	}
	for i := range pass.Series {
		date, err := NormalizeDate(pass.Series[i].Name)
		if err != nil {
			logger.Error().Err(err).Int("index", i).Msg("error processing chart data point")
			continue
		}
		data.Dates = append(data.Dates, date)
		data.Pass = append(data.Pass, numericValue(pass.Series[i].Value))
		data.Fail = append(data.Fail, numericValue(fail.Series[i].Value))
	}

	if len(data.Dates) == 0 {
		return nil, ErrEmptyChart
	}
	return data, nil
}

func findSeries(series []api.ChartDataSeries, name string) (api.ChartDataSeries, bool) {
	for _, s := range series {
		if s.Name == name {
			return s, true
		}
	}
	return api.ChartDataSeries{}, false
}

// NormalizeDate converts a millisecond timestamp or a date-like string into a
// UTC calendar date (YYYY-MM-DD).
func NormalizeDate(value any) (string, error) {
	var t time.Time

	switch v := value.(type) {
	case float64:
		ms, err := timestampMillis(v)
		if err != nil {
			return "", err
		}
		t = ms
	case int64:
		ms, err := timestampMillis(float64(v))
		if err != nil {
			return "", err
		}
		t = ms
	case int:
		ms, err := timestampMillis(float64(v))
		if err != nil {
			return "", err
		}
		t = ms
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return "", fmt.Errorf("invalid timestamp %q: %w", v, err)
		}
		ms, err := timestampMillis(f)
		if err != nil {
			return "", err
		}
		t = ms
	case string:
		parsed, err := cast.ToTimeInDefaultLocationE(v, time.UTC)
		if err != nil {
			return "", fmt.Errorf("invalid date %q: %w", v, err)
		}
		t = parsed
	default:
		return "", fmt.Errorf("unsupported date value %v (%T)", value, value)
	}

	return t.UTC().Format(domain.DateLayout), nil
}

func timestampMillis(ms float64) (time.Time, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxTimestampMs {
		return time.Time{}, fmt.Errorf("invalid timestamp %v", ms)
	}
	return time.UnixMilli(int64(ms)), nil
}

func numericValue(value any) float64 {
	f, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
