/*
http.go - OAuth1-signed HTTP implementation of the Client port

PURPOSE:
  Talks to the SuiteQL REST endpoint:
    POST https://{account}.suitetalk.api.netsuite.com/services/rest/query/v1/suiteql
  with body {"q": "<query>"} and header "Prefer: transient". Requests are
  signed with OAuth1 HMAC-SHA256 (realm = account id).

PAGINATION:
  The endpoint answers {"items": [...], "hasMore": bool}. QueryPaginated
  appends the caller-supplied ORDER BY and walks limit/offset pages until
  hasMore is false.

OUT OF SCOPE:
  No retry, no backoff, no timeout logic beyond the configured HTTP client
  timeout. Cancellation is the caller's context.

SEE ALSO:
  - client.go: Port definition and error codes
  - config/config.go: Credential source
*/
package suiteql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

// pageSize is the row limit per request; the endpoint caps pages at 1000.
const pageSize = 1000

// =============================================================================
// CONFIG
// =============================================================================

// Credentials identifies a token-based integration on one account.
type Credentials struct {
	AccountID      string
	ConsumerKey    string
	ConsumerSecret string
	TokenID        string
	TokenSecret    string
}

// =============================================================================
// HTTP CLIENT
// =============================================================================

// HTTPClient implements Client against the SuiteQL REST endpoint.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithBaseURL overrides the derived endpoint URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *HTTPClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the per-request timeout (default 30s).
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// NewHTTPClient builds a signed client for the given credentials.
func NewHTTPClient(creds Credentials, opts ...Option) *HTTPClient {
	cfg := oauth1.Config{
		ConsumerKey:    creds.ConsumerKey,
		ConsumerSecret: creds.ConsumerSecret,
		Realm:          creds.AccountID,
		Signer:         &oauth1.HMAC256Signer{ConsumerSecret: creds.ConsumerSecret},
	}
	token := oauth1.NewToken(creds.TokenID, creds.TokenSecret)

	c := &HTTPClient{
		baseURL: fmt.Sprintf("https://%s.suitetalk.api.netsuite.com/services/rest/query/v1/suiteql",
			strings.ToLower(creds.AccountID)),
		http: cfg.Client(oauth1.NoContext, token),
	}
	c.http.Timeout = 30 * time.Second

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// queryResponse is the endpoint's envelope.
type queryResponse struct {
	Items   []Row `json:"items"`
	HasMore bool  `json:"hasMore"`
}

// errorResponse is the endpoint's failure envelope (RFC 7807-ish).
type errorResponse struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

// QueryRows executes a single-page query.
func (c *HTTPClient) QueryRows(ctx context.Context, query string) ([]Row, error) {
	page, err := c.post(ctx, query, 0)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// QueryPaginated executes a multi-page query with caller-supplied ordering.
func (c *HTTPClient) QueryPaginated(ctx context.Context, query string, orderBy string) ([]Row, error) {
	q := query
	if orderBy != "" {
		q = query + " ORDER BY " + orderBy
	}

	var rows []Row
	offset := 0
	for {
		page, err := c.post(ctx, q, offset)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page.Items...)
		if !page.HasMore {
			return rows, nil
		}
		offset += pageSize
	}
}

func (c *HTTPClient) post(ctx context.Context, query string, offset int) (*queryResponse, error) {
	body, err := json.Marshal(map[string]string{"q": query})
	if err != nil {
		return nil, &QueryError{Code: CodeDecode, Message: "encode request", Query: query, Err: err}
	}

	url := fmt.Sprintf("%s?limit=%d&offset=%d", c.baseURL, pageSize, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &QueryError{Code: CodeNetwork, Message: "build request", Query: query, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "transient")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &QueryError{Code: CodeNetwork, Message: "execute request", Query: query, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &QueryError{Code: CodeDecode, Message: "read response", Query: query, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &QueryError{
			Code:    CodeUnauthorized,
			Message: fmt.Sprintf("request signing rejected (%d): %s", resp.StatusCode, errorDetail(raw)),
			Query:   query,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &QueryError{
			Code:    CodeHTTPStatus,
			Message: fmt.Sprintf("status %d: %s", resp.StatusCode, errorDetail(raw)),
			Query:   query,
		}
	}

	var page queryResponse
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, &QueryError{Code: CodeDecode, Message: "decode response", Query: query, Err: err}
	}
	return &page, nil
}

// errorDetail pulls a human-readable message out of a failure body,
// falling back to a truncated raw body.
func errorDetail(raw []byte) string {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil {
		if er.Detail != "" {
			return er.Detail
		}
		if er.Title != "" {
			return er.Title
		}
	}
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
