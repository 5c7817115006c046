// Package ebay provides a client for the eBay Finding API's completed
// and active listing searches.
package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	// ProductionURL is the Finding API endpoint for live data.
	ProductionURL = "https://svcs.ebay.com/services/search/FindingService/v1"
	// SandboxURL is the Finding API endpoint for the eBay sandbox.
	SandboxURL = "https://svcs.sandbox.ebay.com/services/search/FindingService/v1"

	serviceVersion = "1.13.0"

	// endTimeFormat is the ISO 8601 rendering the Finding API expects
	// for time-valued item filters.
	endTimeFormat = "2006-01-02T15:04:05.000Z"
)

// ErrNotConfigured is returned when a search runs without an App ID.
// Callers treat it as a setup problem, not a transient failure.
var ErrNotConfigured = eris.New("ebay: app id not configured")

// ErrAuth is returned when eBay rejects the credentials.
var ErrAuth = eris.New("ebay: authentication rejected")

// Client defines the Finding API operations used by the analyzer.
type Client interface {
	// FindCompleted searches sold listings for the query, price-sorted.
	FindCompleted(ctx context.Context, query string, opts ...SearchOption) (*SearchResult, error)
	// FindActive searches live listings for the query.
	FindActive(ctx context.Context, query string) (*SearchResult, error)
}

// Item is one listing from a search response.
type Item struct {
	ID       string
	Title    string
	Price    float64
	Currency string
	URL      string
	ImageURL string
	// EndTime is when the listing ended. For completed searches this is
	// the sale date; zero when eBay omits or mangles it.
	EndTime time.Time
}

// SearchResult holds one page of items plus the full match count.
type SearchResult struct {
	Items []Item
	// Total is eBay's totalEntries: all matches, not just this page.
	Total int
}

// SearchOption configures a completed-listings search.
type SearchOption func(*searchOpts)

type searchOpts struct {
	endTimeFrom time.Time
}

// WithEndTimeFrom restricts completed results to listings that ended at
// or after t.
func WithEndTimeFrom(t time.Time) SearchOption {
	return func(o *searchOpts) {
		o.endTimeFrom = t
	}
}

// Option configures the eBay client.
type Option func(*httpClient)

// WithBaseURL sets a custom endpoint (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithSandbox points the client at the eBay sandbox.
func WithSandbox() Option {
	return func(c *httpClient) {
		c.baseURL = SandboxURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithRateLimit caps outbound request rate. The Finding API allows
// 5000 calls/day on a starter key, so the default is deliberately slow.
func WithRateLimit(perSec float64, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// WithEntriesPerPage sets the page size for both search operations.
func WithEntriesPerPage(n int) Option {
	return func(c *httpClient) {
		c.entriesPerPage = n
	}
}

type httpClient struct {
	appID          string
	baseURL        string
	entriesPerPage int
	limiter        *rate.Limiter
	http           *http.Client
}

// NewClient creates a Finding API client. An empty appID is allowed at
// construction; searches then fail with ErrNotConfigured.
func NewClient(appID string, opts ...Option) Client {
	c := &httpClient{
		appID:          appID,
		baseURL:        ProductionURL,
		entriesPerPage: 100,
		limiter:        rate.NewLimiter(rate.Limit(1), 1),
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) FindCompleted(ctx context.Context, query string, opts ...SearchOption) (*SearchResult, error) {
	so := &searchOpts{}
	for _, opt := range opts {
		opt(so)
	}

	params := c.baseParams("findCompletedItems", query)
	params.Set("itemFilter(0).name", "SoldItemsOnly")
	params.Set("itemFilter(0).value", "true")
	if !so.endTimeFrom.IsZero() {
		params.Set("itemFilter(1).name", "EndTimeFrom")
		params.Set("itemFilter(1).value", so.endTimeFrom.UTC().Format(endTimeFormat))
	}
	params.Set("sortOrder", "PricePlusShippingLowest")

	return c.find(ctx, params)
}

func (c *httpClient) FindActive(ctx context.Context, query string) (*SearchResult, error) {
	return c.find(ctx, c.baseParams("findItemsAdvanced", query))
}

func (c *httpClient) baseParams(operation, query string) url.Values {
	params := url.Values{}
	params.Set("OPERATION-NAME", operation)
	params.Set("SERVICE-VERSION", serviceVersion)
	params.Set("SECURITY-APPNAME", c.appID)
	params.Set("RESPONSE-DATA-FORMAT", "JSON")
	params.Set("REST-PAYLOAD", "")
	params.Set("keywords", query)
	params.Set("paginationInput.entriesPerPage", strconv.Itoa(c.entriesPerPage))
	return params
}

func (c *httpClient) find(ctx context.Context, params url.Values) (*SearchResult, error) {
	if c.appID == "" {
		return nil, ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "ebay: rate limiter")
	}

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "ebay: create request")
	}
	req.Header.Set("Accept", "application/json")

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "ebay: request failed")
	}

	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return nil, eris.Wrap(ErrAuth, fmt.Sprintf("ebay: status %d", statusCode))
	}
	if statusCode != http.StatusOK {
		return nil, eris.Errorf("ebay: unexpected status %d: %s", statusCode, string(body))
	}

	resp, err := parseResponse(body)
	if err != nil {
		return nil, err
	}
	if resp.ack() == "Failure" {
		return nil, eris.Errorf("ebay: api failure: %s", resp.failureMessage())
	}

	return resp.toResult(), nil
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes an HTTP request with exponential backoff retries on
// transient failures (429, 500, 502, 503). Returns the response body and
// status code on success, or the last error after exhausting retries.
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retryReq := req.Clone(ctx)

		resp, err := c.http.Do(retryReq)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "ebay: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("ebay: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

func parseResponse(body []byte) (*wireResponse, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, eris.Wrap(err, "ebay: unmarshal response")
	}

	switch {
	case len(env.Completed) > 0:
		return &env.Completed[0], nil
	case len(env.Advanced) > 0:
		return &env.Advanced[0], nil
	default:
		return nil, eris.New("ebay: response missing operation payload")
	}
}
