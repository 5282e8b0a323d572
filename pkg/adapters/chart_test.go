package adapters

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/de-tools/dmarc-atlas/pkg/models/api"
	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func decodeChart(t *testing.T, payload string) *api.ChartDataResponse {
	var resp api.ChartDataResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	return &resp
}

func TestNormalizeChart_SeriesShape(t *testing.T) {
	resp := decodeChart(t, `{"chartdata":[
		{"name":"fail","series":[{"name":1700000000000,"value":3}]},
		{"name":"pass","series":[{"name":1700000000000,"value":7}]}
	]}`)

	shape := ResolveChartShape(resp)
	require.IsType(t, SeriesShape{}, shape)

	data, err := NormalizeChart(testContext(t), shape)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-11-14"}, data.Dates)
	assert.Equal(t, []float64{7}, data.Pass)
	assert.Equal(t, []float64{3}, data.Fail)
}

func TestNormalizeChart_IgnoresTotalSeries(t *testing.T) {
	resp := decodeChart(t, `{"chartdata":[
		{"name":"total","series":[{"name":"2024-01-01","value":10},{"name":"2024-01-02","value":12}]},
		{"name":"pass","series":[{"name":"2024-01-01","value":9},{"name":"2024-01-02","value":"11"}]},
		{"name":"fail","series":[{"name":"2024-01-01","value":1},{"name":"2024-01-02","value":null}]}
	]}`)

	data, err := NormalizeChart(testContext(t), ResolveChartShape(resp))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, data.Dates)
	assert.Equal(t, []float64{9, 11}, data.Pass)
	assert.Equal(t, []float64{1, 0}, data.Fail)
}

func TestNormalizeChart_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		err     error
	}{
		{
			name: "length mismatch",
			payload: `{"chartdata":[
				{"name":"pass","series":[{"name":1700000000000,"value":7},{"name":1700086400000,"value":8}]},
				{"name":"fail","series":[{"name":1700000000000,"value":3}]}
			]}`,
			err: ErrSeriesLengthMismatch,
		},
		{
			name:    "missing fail series",
			payload: `{"chartdata":[{"name":"pass","series":[{"name":1700000000000,"value":7}]}]}`,
			err:     ErrMissingSeries,
		},
		{
			name:    "empty series list",
			payload: `{"chartdata":[]}`,
			err:     ErrMissingSeries,
		},
		{
			name: "no parseable dates",
			payload: `{"chartdata":[
				{"name":"pass","series":[{"name":"not a date","value":7}]},
				{"name":"fail","series":[{"name":"not a date","value":3}]}
			]}`,
			err: ErrEmptyChart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := NormalizeChart(testContext(t), ResolveChartShape(decodeChart(t, tt.payload)))
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, data)
		})
	}
}

func TestNormalizeChart_SkipsUnparseablePoints(t *testing.T) {
	resp := decodeChart(t, `{"chartdata":[
		{"name":"pass","series":[{"name":"garbage","value":1},{"name":"2024-02-02T10:00:00Z","value":2}]},
		{"name":"fail","series":[{"name":"garbage","value":5},{"name":"2024-02-02T10:00:00Z","value":6}]}
	]}`)

	data, err := NormalizeChart(testContext(t), ResolveChartShape(resp))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-02"}, data.Dates)
	assert.Equal(t, []float64{2}, data.Pass)
	assert.Equal(t, []float64{6}, data.Fail)
}

func TestResolveChartShape_Flat(t *testing.T) {
	nested := decodeChart(t, `{"chart_data":{"dates":["2024-01-01"],"pass":[4],"fail":[1]}}`)
	topLevel := decodeChart(t, `{"dates":["2024-01-01"],"pass":[4],"fail":[1]}`)
	expected := &domain.ChartData{Dates: []string{"2024-01-01"}, Pass: []float64{4}, Fail: []float64{1}}

	for _, resp := range []*api.ChartDataResponse{nested, topLevel} {
		shape := ResolveChartShape(resp)
		require.IsType(t, FlatShape{}, shape)

		data, err := NormalizeChart(testContext(t), shape)
		require.NoError(t, err)
		assert.Equal(t, expected, data)
	}

	mismatched := ResolveChartShape(&api.ChartDataResponse{Flat: &api.FlatChartData{
		Dates: []string{"2024-01-01", "2024-01-02"},
		Pass:  []float64{1},
		Fail:  []float64{1, 2, 3},
	}})
	require.IsType(t, FlatShape{}, mismatched)
	data, err := NormalizeChart(testContext(t), mismatched)
	assert.ErrorIs(t, err, ErrSeriesLengthMismatch)
	assert.Nil(t, data)
}

func TestResolveChartShape_Unknown(t *testing.T) {
	assert.Nil(t, ResolveChartShape(nil))
	assert.Nil(t, ResolveChartShape(decodeChart(t, `{"domain":"example.com"}`)))
	assert.Nil(t, ResolveChartShape(decodeChart(t, `{"dates":["2024-01-01"]}`)))

	_, err := NormalizeChart(testContext(t), nil)
	assert.ErrorIs(t, err, ErrUnknownChartShape)
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		value    any
		expected string
	}{
		{float64(1700000000000), "2023-11-14"},
		{int64(1711843200000), "2024-03-31"},
		{json.Number("1700000000000"), "2023-11-14"},
		{"2024-03-31", "2024-03-31"},
		{"2024-03-31T23:30:00Z", "2024-03-31"},
		{"2024-03-31T23:30:00-02:00", "2024-04-01"},
	}

	for _, tt := range tests {
		got, err := NormalizeDate(tt.value)
		require.NoError(t, err, "value %v", tt.value)
		assert.Equal(t, tt.expected, got, "value %v", tt.value)
	}

	_, err := NormalizeDate(true)
	assert.Error(t, err)
	_, err = NormalizeDate(nil)
	assert.Error(t, err)

	for _, outOfRange := range []any{
		float64(1e20), float64(-1e20), float64(8.64e15 + 1),
		int64(9e15), int(-9e15), json.Number("100000000000000000000"),
	} {
		_, err = NormalizeDate(outOfRange)
		assert.Error(t, err, "value %v", outOfRange)
	}
	got, err := NormalizeDate(float64(-86400000))
	require.NoError(t, err)
	assert.Equal(t, "1969-12-31", got)
}

func TestNormalizeChart_SkipsOutOfRangeTimestamps(t *testing.T) {
	shape := SeriesShape{Series: []api.ChartDataSeries{
		{Name: "pass", Series: []api.ChartDataPoint{{Name: 1e20, Value: 1}, {Name: "2024-03-01", Value: 2}}},
		{Name: "fail", Series: []api.ChartDataPoint{{Name: 1e20, Value: 3}, {Name: "2024-03-01", Value: 4}}},
	}}

	data, err := NormalizeChart(testContext(t), shape)

	require.NoError(t, err)
	assert.Equal(t, &domain.ChartData{Dates: []string{"2024-03-01"}, Pass: []float64{2}, Fail: []float64{4}}, data)
}
