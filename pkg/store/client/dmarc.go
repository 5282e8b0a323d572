package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/de-tools/dmarc-atlas/pkg/models/api"
	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "http://127.0.0.1:6767/api"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 64 << 10
)

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// ErrorMessage returns the human-readable part of err: the server message when
// the backend sent one, the transport error text otherwise.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

type rangeParams struct {
	Start string `url:"start,omitempty"`
	End   string `url:"end,omitempty"`
}

type detailParams struct {
	Source     string `url:"source"`
	SourceType string `url:"source_type,omitempty"`
	rangeParams
}

// Client is a thin HTTP wrapper over the DMARC report backend.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

func NewClient(profile domain.APIProfile) (*Client, error) {
	raw := profile.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", raw, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", raw)
	}

	timeout := profile.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    base,
		token:      profile.Token,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) GetDomains(ctx context.Context) ([]string, error) {
	var domains []string
	if err := c.get(ctx, []string{"domains"}, nil, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

func (c *Client) GetDomainSummary(ctx context.Context, name string, r domain.DateRange) (*api.DomainSummaryResponse, error) {
	var resp *api.DomainSummaryResponse
	params := rangeParams{Start: r.StartDate, End: r.EndDate}
	if err := c.get(ctx, []string{"domains", name, "report"}, params, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetDomainDetail(
	ctx context.Context,
	name, source string,
	r domain.DateRange,
	sourceType string,
) (*api.DomainDetailResponse, error) {
	var resp *api.DomainDetailResponse
	params := detailParams{
		Source:      source,
		SourceType:  sourceType,
		rangeParams: rangeParams{Start: r.StartDate, End: r.EndDate},
	}
	if err := c.get(ctx, []string{"domains", name, "report", "detail"}, params, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetChartData(ctx context.Context, name string, r domain.DateRange) (*api.ChartDataResponse, error) {
	var resp *api.ChartDataResponse
	params := rangeParams{Start: r.StartDate, End: r.EndDate}
	if err := c.get(ctx, []string{"domains", name, "chart", "dmarc"}, params, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, segments []string, params any, out any) error {
	logger := zerolog.Ctx(ctx)

	endpoint := c.baseURL.JoinPath(segments...)
	if params != nil {
		values, err := query.Values(params)
		if err != nil {
			return fmt.Errorf("failed to encode query: %w", err)
		}
		endpoint.RawQuery = values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("url", endpoint.String()).Msg("request failed")
		return err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint.Path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload api.ErrorResponse
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.ErrorMessage
		}
	}
	return apiErr
}
