// Package remote is a thin typed client for the PostgREST-style row API the
// backend exposes. It owns no classification: failures surface as
// StatusError (HTTP status received) or plain wrapped errors, and the
// repositories classify them at their boundary.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Status       int
	RequestURL   string
	ResponseBody string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("remote request failed with status %d: %s", e.Status, e.RequestURL)
}

// StatusCode returns the HTTP status code.
func (e *StatusError) StatusCode() int { return e.Status }

// URL returns the request URL that failed.
func (e *StatusError) URL() string { return e.RequestURL }

// Body returns the raw response body.
func (e *StatusError) Body() string { return e.ResponseBody }

// TokenSource supplies the current bearer token. A nil source means
// anonymous access with the project key only.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Client talks to the row API.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	tokens  TokenSource
}

// NewClient creates a Client for the given base URL and project key.
func NewClient(baseURL, anonKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// WithTokenSource sets the bearer-token source and returns the client.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	c.tokens = ts
	return c
}

// Query builds a filtered request against one table.
type Query struct {
	client *Client
	table  string
	params url.Values
}

// From starts a query against a table.
func (c *Client) From(table string) *Query {
	params := url.Values{}
	params.Set("select", "*")
	return &Query{client: c, table: table, params: params}
}

// Eq adds an equality filter.
func (q *Query) Eq(column, value string) *Query {
	q.params.Add(column, "eq."+value)
	return q
}

// Ilike formats a case-insensitive substring term for Or.
func Ilike(column, needle string) string {
	return column + ".ilike.*" + needle + "*"
}

// Or adds a disjunction of filter terms, each in "column.operator.value" form.
func (q *Query) Or(terms ...string) *Query {
	q.params.Add("or", "("+strings.Join(terms, ",")+")")
	return q
}

// Gte adds a greater-or-equal filter.
func (q *Query) Gte(column string, value float64) *Query {
	q.params.Add(column, "gte."+strconv.FormatFloat(value, 'f', -1, 64))
	return q
}

// Lte adds a less-or-equal filter.
func (q *Query) Lte(column string, value float64) *Query {
	q.params.Add(column, "lte."+strconv.FormatFloat(value, 'f', -1, 64))
	return q
}

// Order sets the result ordering.
func (q *Query) Order(column string, descending bool) *Query {
	direction := "asc"
	if descending {
		direction = "desc"
	}
	q.params.Set("order", column+"."+direction)
	return q
}

// Range sets offset+limit pagination.
func (q *Query) Range(offset, limit int) *Query {
	q.params.Set("offset", strconv.Itoa(offset))
	q.params.Set("limit", strconv.Itoa(limit))
	return q
}

func (q *Query) url() string {
	return q.client.baseURL + "/rest/v1/" + q.table + "?" + q.params.Encode()
}

// Select runs the query and decodes the row set into dest.
func (q *Query) Select(ctx context.Context, dest interface{}) error {
	return q.client.do(ctx, http.MethodGet, q.url(), nil, dest)
}

// Insert posts a row and decodes the returned representation into dest when
// dest is non-nil.
func (q *Query) Insert(ctx context.Context, row interface{}, dest interface{}) error {
	return q.client.do(ctx, http.MethodPost, q.url(), row, dest)
}

// Update patches the rows matched by the query's filters.
func (q *Query) Update(ctx context.Context, changes interface{}, dest interface{}) error {
	return q.client.do(ctx, http.MethodPatch, q.url(), changes, dest)
}

// Delete removes the rows matched by the query's filters.
func (q *Query) Delete(ctx context.Context) error {
	return q.client.do(ctx, http.MethodDelete, q.url(), nil, nil)
}

// RPC calls a named remote procedure with the given arguments.
func (c *Client) RPC(ctx context.Context, fn string, args interface{}, dest interface{}) error {
	return c.do(ctx, http.MethodPost, c.baseURL+"/rest/v1/rpc/"+fn, args, dest)
}

func (c *Client) do(ctx context.Context, method, requestURL string, body interface{}, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	token := c.anonKey
	if c.tokens != nil {
		current, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("resolve access token: %w", err)
		}
		if current != "" {
			token = current
		}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if dest != nil && method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &StatusError{
			Status:       resp.StatusCode,
			RequestURL:   requestURL,
			ResponseBody: string(raw),
		}
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}
