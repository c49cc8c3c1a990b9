package obs

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
)

const (
	defaultRetryMax     = 3
	defaultRetryWaitMin = 500 * time.Millisecond
	defaultTimeout      = 30 * time.Second
)

// Client is a thin HTTP gateway to the build service XML API. It only
// moves bytes; decoding the XML payloads is the repository's job.
type Client struct {
	http     *retryablehttp.Client
	baseURL  string
	username string
	password string
}

// NewClient creates a gateway against the given API base URL using
// basic auth. Transient failures are retried with backoff.
func NewClient(baseURL, username, password string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = defaultRetryMax
	httpClient.RetryWaitMin = defaultRetryWaitMin
	httpClient.HTTPClient.Timeout = defaultTimeout
	httpClient.Logger = nil

	return &Client{
		http:     httpClient,
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
	}
}

// Get performs a GET against the given API path.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, "")
}

// Post performs a POST against the given API path. The body is sent as
// plain text, matching how the build service accepts review comments.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, query, body)
}

// Delete performs a DELETE against the given API path.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, "")
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body string) ([]byte, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	slog.Debug("calling build service", "method", method, "url", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &domain.GatewayError{
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Message:    statusMessage(payload, resp.Status),
		}
	}

	return payload, nil
}

// statusMessage extracts the summary from a build service status
// document, falling back to the HTTP status line.
func statusMessage(payload []byte, fallback string) string {
	var status struct {
		Code    string `xml:"code,attr"`
		Summary string `xml:"summary"`
	}
	if err := xml.Unmarshal(payload, &status); err == nil && status.Summary != "" {
		return status.Summary
	}

	return fallback
}
