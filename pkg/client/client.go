// Package client is the Go client of the distributor registry API. It decodes
// error envelopes into *APIError, reports network failures as
// *TransportError, and retries only requests that are safe to repeat.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

type methodKey struct{}

// Client calls the registry API.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// Option customizes a Client.
type Option func(*retryablehttp.Client)

// WithLogger routes retry diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *retryablehttp.Client) {
		c.Logger = logger
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *retryablehttp.Client) {
		c.HTTPClient = hc
	}
}

// New builds a client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("client: base URL is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", cfg.BaseURL, err)
	}

	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = cfg.RetryMax
	if cfg.RetryWaitMin > 0 {
		rc.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		rc.RetryWaitMax = cfg.RetryWaitMax
	}
	rc.CheckRetry = retryIdempotent
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	for _, opt := range opts {
		opt(rc)
	}
	if cfg.Timeout > 0 && rc.HTTPClient.Timeout == 0 {
		rc.HTTPClient.Timeout = cfg.Timeout
	}
	return &Client{baseURL: base, http: rc}, nil
}

// retryIdempotent applies the default policy to GET, PUT and DELETE only.
// A POST may have been applied before the failure, so it is never repeated.
func retryIdempotent(ctx context.Context, resp *http.Response, err error) (bool, error) {
	method, _ := ctx.Value(methodKey{}).(string)
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	return false, nil
}

// do sends one call and decodes the response into out when the status is
// want. Any other status becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, want int) error {
	_, err := c.send(ctx, method, path, query, body, out, want)
	return err
}

// send is do accepting several success statuses and reporting which one the
// server answered.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out any, want ...int) (int, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var raw []byte
	if body != nil {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			return 0, &TransportError{Method: method, URL: target, Err: fmt.Errorf("encode body: %w", err)}
		}
	}
	ctx = context.WithValue(ctx, methodKey{}, method)
	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, raw)
	if err != nil {
		return 0, &TransportError{Method: method, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &TransportError{Method: method, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &TransportError{Method: method, URL: target, Err: err}
	}
	if !slices.Contains(want, resp.StatusCode) {
		return resp.StatusCode, decodeAPIError(resp.StatusCode, payload)
	}
	if out == nil || len(payload) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return resp.StatusCode, &TransportError{Method: method, URL: target, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp.StatusCode, nil
}

func decodeAPIError(status int, payload []byte) error {
	apiErr := &APIError{StatusCode: status}
	var env errorEnvelope
	if err := json.Unmarshal(payload, &env); err == nil && env.Error != "" {
		apiErr.Code = env.Error
		apiErr.Message = env.ErrorDescription
		return apiErr
	}
	apiErr.Code = strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	apiErr.Message = strings.TrimSpace(string(payload))
	return apiErr
}

func idPath(collection string, id int64) string {
	return fmt.Sprintf("/%s/%d", collection, id)
}
