package snow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
)

// Statuses retried at the transport level before error mapping.
var retryableStatuses = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultListLimit  = 100

	// retryInitialInterval is the starting backoff delay between attempts.
	retryInitialInterval = 500 * time.Millisecond

	// maxDetailLength caps how much of a non-JSON error body ends up in a
	// mapped error message.
	maxDetailLength = 300
)

// Config holds the connection parameters for a Client.
type Config struct {
	BaseURL    string        // Table API base, e.g. https://dev12345.service-now.com/api/now
	Username   string        // Basic-auth user
	Password   string        // Basic-auth password
	Timeout    time.Duration // Per-request timeout (default: 30s)
	MaxRetries int           // Transient-error retry cap (default: 3)
	Logger     hclog.Logger  // Logger (optional)
}

// Client is the single point of HTTP communication with the Table API. It
// owns one pooled http.Client reused across sequential calls and maps every
// failure to a typed *Error.
type Client struct {
	baseURL    string
	username   string
	password   string
	maxRetries int
	httpClient *http.Client
	logger     hclog.Logger
}

// NewClient creates a new Table API client.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	if config.MaxRetries == 0 {
		config.MaxRetries = defaultMaxRetries
	}

	if config.Logger == nil {
		config.Logger = hclog.NewNullLogger()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		username:   config.Username,
		password:   config.Password,
		maxRetries: config.MaxRetries,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: config.Logger.Named("snow-client"),
	}, nil
}

// ListOptions control a List call. The query is an opaque pre-built filter
// expression passed through verbatim; the client only URL-encodes it.
type ListOptions struct {
	Query        string
	Fields       []string
	Limit        int // default: 100
	Offset       int
	DisplayValue bool
}

// GetOptions control a Get call.
type GetOptions struct {
	Fields       []string
	DisplayValue bool
}

// List fetches up to Limit records from a table and returns the result array
// of the response envelope, or an empty slice when absent.
func (c *Client) List(ctx context.Context, table string, opts ListOptions) ([]Record, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	params := url.Values{}
	params.Set("sysparm_limit", strconv.Itoa(limit))
	params.Set("sysparm_offset", strconv.Itoa(opts.Offset))
	params.Set("sysparm_display_value", strconv.FormatBool(opts.DisplayValue))
	if opts.Query != "" {
		params.Set("sysparm_query", opts.Query)
	}
	if len(opts.Fields) > 0 {
		params.Set("sysparm_fields", strings.Join(opts.Fields, ","))
	}

	body, err := c.do(ctx, http.MethodGet, c.tableURL(table, ""), params, nil, table, "")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Result []Record `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, c.decodeError(table, "", err)
	}
	if envelope.Result == nil {
		return []Record{}, nil
	}
	return envelope.Result, nil
}

// Get fetches a single record by sys_id, returning the result object or an
// empty record when absent.
func (c *Client) Get(ctx context.Context, table, sysID string, opts GetOptions) (Record, error) {
	params := url.Values{}
	params.Set("sysparm_display_value", strconv.FormatBool(opts.DisplayValue))
	if len(opts.Fields) > 0 {
		params.Set("sysparm_fields", strings.Join(opts.Fields, ","))
	}

	body, err := c.do(ctx, http.MethodGet, c.tableURL(table, sysID), params, nil, table, sysID)
	if err != nil {
		return nil, err
	}
	return c.decodeRecord(body, table, sysID)
}

// Create inserts a record and returns the created record.
func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (Record, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshaling fields for table '%s': %w", table, err)
	}

	body, err := c.do(ctx, http.MethodPost, c.tableURL(table, ""), nil, payload, table, "")
	if err != nil {
		return nil, err
	}
	return c.decodeRecord(body, table, "")
}

// Update patches an existing record and returns the updated record.
func (c *Client) Update(ctx context.Context, table, sysID string, fields map[string]any) (Record, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshaling fields for table '%s': %w", table, err)
	}

	body, err := c.do(ctx, http.MethodPatch, c.tableURL(table, sysID), nil, payload, table, sysID)
	if err != nil {
		return nil, err
	}
	return c.decodeRecord(body, table, sysID)
}

// Delete removes a record. It returns true exactly when the response was a
// non-error status.
func (c *Client) Delete(ctx context.Context, table, sysID string) (bool, error) {
	if _, err := c.do(ctx, http.MethodDelete, c.tableURL(table, sysID), nil, nil, table, sysID); err != nil {
		return false, err
	}
	return true, nil
}

// PingResult is the outcome of a connectivity probe.
type PingResult struct {
	Status        string  `json:"status"`
	ResponseTimeS float64 `json:"response_time_s"`
	Error         string  `json:"error,omitempty"`
}

// Ping is a lightweight connectivity check: it lists one record from
// sys_properties and measures the wall-clock round trip. It never returns an
// error; any failure becomes a degraded-status result.
func (c *Client) Ping(ctx context.Context) PingResult {
	start := time.Now()
	_, err := c.List(ctx, TableProperties, ListOptions{Limit: 1})
	elapsed := math.Round(time.Since(start).Seconds()*1000) / 1000

	if err != nil {
		return PingResult{Status: "error", ResponseTimeS: elapsed, Error: err.Error()}
	}
	return PingResult{Status: "ok", ResponseTimeS: elapsed}
}

func (c *Client) tableURL(table, sysID string) string {
	if sysID != "" {
		return c.baseURL + "/table/" + table + "/" + url.PathEscape(sysID)
	}
	return c.baseURL + "/table/" + table
}

// httpResult carries a fully-read response across retry attempts.
type httpResult struct {
	status int
	body   []byte
}

// retryableStatusError marks a response that should be retried; the final
// one is mapped to a typed error once the retry budget is spent.
type retryableStatusError struct {
	result *httpResult
}

func (e *retryableStatusError) Error() string {
	return fmt.Sprintf("retryable status %d", e.result.status)
}

// do performs one logical HTTP call with the transport retry policy applied,
// returning the response body on success or a typed *Error on any failure.
func (c *Client) do(ctx context.Context, method, rawURL string, params url.Values, payload []byte, table, sysID string) ([]byte, error) {
	c.logger.Debug("sending request",
		"method", method,
		"url", rawURL,
		"table", table,
	)

	attempt := func() (*httpResult, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if params != nil {
			req.URL.RawQuery = params.Encode()
		}
		req.SetBasicAuth(c.username, c.password)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Network-level failure; retried like a 5xx.
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		result := &httpResult{status: resp.StatusCode, body: data}
		if retryableStatuses[resp.StatusCode] {
			return nil, &retryableStatusError{result: result}
		}
		return result, nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = retryInitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(c.maxRetries)), ctx)

	result, err := backoff.RetryWithData(attempt, policy)
	if err != nil {
		var statusErr *retryableStatusError
		if errors.As(err, &statusErr) {
			result = statusErr.result
		} else {
			return nil, c.connectionError(table, sysID, err)
		}
	}

	if result.status >= 400 {
		return nil, newStatusError(result.status, table, sysID, errorDetail(result.body))
	}
	return result.body, nil
}

func (c *Client) connectionError(table, sysID string, cause error) *Error {
	action := "connection error reaching"
	var netErr net.Error
	if errors.As(cause, &netErr) && netErr.Timeout() {
		action = "timeout reaching"
	} else if errors.Is(cause, context.DeadlineExceeded) {
		action = "timeout reaching"
	}

	c.logger.Warn("request failed", "table", table, "error", cause)
	return newConnectionError(table, sysID, action, cause)
}

func (c *Client) decodeError(table, sysID string, cause error) *Error {
	target := table
	if sysID != "" {
		target = table + "/" + sysID
	}
	return &Error{
		Kind:    KindAPI,
		Message: fmt.Sprintf("decoding response from table '%s': %v", target, cause),
		Table:   table,
		SysID:   sysID,
	}
}

func (c *Client) decodeRecord(body []byte, table, sysID string) (Record, error) {
	var envelope struct {
		Result Record `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, c.decodeError(table, sysID, err)
	}
	if envelope.Result == nil {
		return Record{}, nil
	}
	return envelope.Result, nil
}

// errorDetail extracts the error.message field from a JSON error body, or
// falls back to a truncated slice of the raw text.
func errorDetail(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}

	text := string(body)
	if len(text) > maxDetailLength {
		text = text[:maxDetailLength]
	}
	return text
}
