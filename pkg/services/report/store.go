// Package report holds the dashboard state: the domain list, the loaded summary
// and detail reports, and the loading/error flags describing the last fetch.
package report

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/de-tools/dmarc-atlas/pkg/adapters"
	"github.com/de-tools/dmarc-atlas/pkg/models/api"
	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/de-tools/dmarc-atlas/pkg/store/client"
	"github.com/de-tools/dmarc-atlas/pkg/store/session"
	"github.com/de-tools/dmarc-atlas/pkg/util"
	"github.com/rs/zerolog"
)

// API is the backend the store reads from.
type API interface {
	GetDomains(ctx context.Context) ([]string, error)
	GetDomainSummary(ctx context.Context, name string, r domain.DateRange) (*api.DomainSummaryResponse, error)
	GetDomainDetail(
		ctx context.Context,
		name, source string,
		r domain.DateRange,
		sourceType string,
	) (*api.DomainDetailResponse, error)
	GetChartData(ctx context.Context, name string, r domain.DateRange) (*api.ChartDataResponse, error)
}

type State struct {
	Domains       []string
	SummaryReport *domain.SummaryReport
	DetailReport  *domain.DetailReport
	Loading       bool
	Error         string
}

// Store orchestrates backend calls and keeps their results. Fetches are not
// ordered against each other: when two are in flight the last one to resolve
// wins.
type Store struct {
	api     API
	storage *session.Storage
	metrics *Metrics

	mu    sync.RWMutex
	state State
}

type Options struct {
	API     API
	Storage *session.Storage
	Metrics *Metrics
}

func NewStore(opts Options) *Store {
	if opts.Storage == nil {
		opts.Storage = session.NewStorage(nil)
	}
	return &Store{
		api:     opts.API,
		storage: opts.Storage,
		metrics: opts.Metrics,
		state:   State{Domains: []string{}},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.Domains = slices.Clone(s.state.Domains)
	return st
}

// ChartView derives the chart datasets from the loaded summary report.
func (s *Store) ChartView(ctx context.Context) *domain.ChartView {
	s.mu.RLock()
	report := s.state.SummaryReport
	s.mu.RUnlock()

	if report == nil {
		return nil
	}
	return BuildChartView(ctx, report.ChartData)
}

func (s *Store) FetchDomains(ctx context.Context) {
	logger := zerolog.Ctx(ctx)
	s.begin()
	defer s.finish()

	domains, err := s.api.GetDomains(ctx)
	s.metrics.observeFetch(operationDomains, err)
	if err != nil {
		logger.Error().Err(err).Msg("error fetching domains")
		s.fail("Failed to fetch domains", err)
		return
	}

	if domains == nil {
		domains = []string{}
	}
	s.mu.Lock()
	s.state.Domains = domains
	s.mu.Unlock()
}

// FetchSummaryReport loads the summary report for name, then attaches chart
// data to it. Missing dates default to the last 30 days. A chart failure is
// logged and never reported as an error.
func (s *Store) FetchSummaryReport(ctx context.Context, name, startDate, endDate string) {
	logger := zerolog.Ctx(ctx).With().Str("domain", name).Logger()
	ctx = logger.WithContext(ctx)

	s.begin()
	defer s.finish()

	r := util.ResolveRange(startDate, endDate)

	resp, err := s.api.GetDomainSummary(ctx, name, r)
	s.metrics.observeFetch(operationSummary, err)
	if err != nil {
		logger.Error().Err(err).Msg("error fetching summary report")
		s.fail("Failed to fetch summary report", err)
		return
	}

	report := adapters.MapSummaryResponseToDomain(resp, name, r)
	s.mu.Lock()
	s.state.SummaryReport = report
	s.mu.Unlock()

	chart, err := s.fetchChart(ctx, name, r)
	if err != nil {
		logger.Error().Err(err).Msg("error fetching chart data")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SummaryReport != report {
		logger.Debug().Msg("summary report replaced while chart data was loading")
		return
	}
	withChart := *report
	withChart.ChartData = chart
	s.state.SummaryReport = &withChart
}

func (s *Store) fetchChart(ctx context.Context, name string, r domain.DateRange) (*domain.ChartData, error) {
	resp, err := s.api.GetChartData(ctx, name, r)
	s.metrics.observeFetch(operationChart, err)
	if err != nil {
		return nil, err
	}

	shape := adapters.ResolveChartShape(resp)
	if shape == nil {
		zerolog.Ctx(ctx).Warn().Interface("response", resp).Msg("unexpected chart data format")
		s.metrics.observeChartRejected("unknown_shape")
		return nil, adapters.ErrUnknownChartShape
	}

	data, err := adapters.NormalizeChart(ctx, shape)
	if err != nil {
		s.metrics.observeChartRejected(rejectReason(err))
		return nil, err
	}
	return data, nil
}

// FetchDetailReport loads the per-message rows of one source. The previous
// detail report is cleared first so a stale source is never shown.
func (s *Store) FetchDetailReport(ctx context.Context, name, source, startDate, endDate, sourceType string) {
	logger := zerolog.Ctx(ctx).With().Str("domain", name).Str("source", source).Logger()

	s.begin()
	defer s.finish()

	s.mu.Lock()
	s.state.DetailReport = nil
	s.mu.Unlock()

	r := util.ResolveRange(startDate, endDate)

	resp, err := s.api.GetDomainDetail(ctx, name, source, r, sourceType)
	s.metrics.observeFetch(operationDetail, err)
	if err != nil {
		logger.Error().Err(err).Msg("error fetching detail report")
		s.fail("Failed to fetch detail report", err)
		return
	}

	report := adapters.MapDetailResponseToDomain(resp, name, source, sourceType, r)
	s.mu.Lock()
	s.state.DetailReport = report
	s.mu.Unlock()
}

// ClearReports drops the loaded reports and the error, e.g. when leaving a report view.
func (s *Store) ClearReports() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SummaryReport = nil
	s.state.DetailReport = nil
	s.state.Error = ""
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = true
	s.state.Error = ""
}

func (s *Store) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = false
}

func (s *Store) fail(prefix string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Error = prefix + ": " + client.ErrorMessage(err)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, adapters.ErrMissingSeries):
		return "missing_series"
	case errors.Is(err, adapters.ErrSeriesLengthMismatch):
		return "length_mismatch"
	case errors.Is(err, adapters.ErrEmptyChart):
		return "empty"
	default:
		return "other"
	}
}
