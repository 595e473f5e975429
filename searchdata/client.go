package searchdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/seolab/gapscout/session"
)

const (
	defaultBaseURL = "https://searchconsole.googleapis.com/webmasters/v3"
	defaultTimeout = 30 * time.Second

	// dataStateFinal asks the endpoint for finalized rather than fresh data.
	dataStateFinal = "final"
)

// Page is one page of rows returned by the remote endpoint. An absent rows
// field in the response body decodes to a nil Rows slice and signals
// end-of-data.
type Page struct {
	Rows []Row
}

// PageQuerier issues a single search analytics page request.
type PageQuerier interface {
	QueryPage(ctx context.Context, sess *session.Session, siteURL string, filter QueryFilter, startRow, rowLimit int64) (*Page, error)
}

var _ PageQuerier = (*Client)(nil)

// Client queries the Search Console search analytics endpoint over HTTPS.
// Each call is one blocking round trip with a bounded timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithBaseURL points the client at a different endpoint (primarily for
// testing).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(options ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

type queryRequest struct {
	StartDate             string        `json:"startDate"`
	EndDate               string        `json:"endDate"`
	Dimensions            []string      `json:"dimensions"`
	DimensionFilterGroups []FilterGroup `json:"dimensionFilterGroups,omitempty"`
	RowLimit              int64         `json:"rowLimit"`
	DataState             string        `json:"dataState"`
	StartRow              int64         `json:"startRow"`
}

type queryResponse struct {
	Rows []responseRow `json:"rows"`
}

type responseRow struct {
	Keys        []string `json:"keys"`
	Clicks      float64  `json:"clicks"`
	Impressions float64  `json:"impressions"`
	CTR         float64  `json:"ctr"`
	Position    float64  `json:"position"`
}

// QueryPage issues one page request authorised by sess. "No rows" and
// "malformed response" are distinct outcomes: the former is a normal empty
// page, the latter an error.
func (c *Client) QueryPage(ctx context.Context, sess *session.Session, siteURL string, filter QueryFilter, startRow, rowLimit int64) (*Page, error) {
	if sess == nil || sess.AccessToken == "" {
		return nil, errors.New("[Client.QueryPage] session is required")
	}

	body, err := json.Marshal(queryRequest{
		StartDate:             filter.StartDate,
		EndDate:               filter.EndDate,
		Dimensions:            filter.Dimensions,
		DimensionFilterGroups: filter.DimensionFilterGroups,
		RowLimit:              rowLimit,
		DataState:             dataStateFinal,
		StartRow:              startRow,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[Client.QueryPage] json.Marshal")
	}

	endpoint := fmt.Sprintf("%s/sites/%s/searchAnalytics/query", c.baseURL, url.PathEscape(siteURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "[Client.QueryPage] http.NewRequestWithContext")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.QueryPage] httpClient.Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("[Client.QueryPage] unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "[Client.QueryPage] decode response")
	}

	page := &Page{}
	for i, raw := range decoded.Rows {
		row, err := toRow(raw, len(filter.Dimensions))
		if err != nil {
			return nil, errors.Wrapf(err, "[Client.QueryPage] row %d", i)
		}
		page.Rows = append(page.Rows, row)
	}
	return page, nil
}

func toRow(raw responseRow, dimensionCount int) (Row, error) {
	if len(raw.Keys) != dimensionCount {
		return Row{}, errors.Errorf("malformed row: %d keys for %d dimensions", len(raw.Keys), dimensionCount)
	}
	clicks := int64(raw.Clicks)
	impressions := int64(raw.Impressions)
	if clicks < 0 || impressions < 0 {
		return Row{}, errors.New("malformed row: negative metric")
	}
	if clicks > impressions {
		return Row{}, errors.Errorf("malformed row: clicks %d exceed impressions %d", clicks, impressions)
	}
	if raw.CTR < 0 || raw.CTR > 1 {
		return Row{}, errors.Errorf("malformed row: ctr %f out of range", raw.CTR)
	}
	return Row{
		Keys:        raw.Keys,
		Clicks:      clicks,
		Impressions: impressions,
		CTR:         raw.CTR,
		Position:    raw.Position,
	}, nil
}
