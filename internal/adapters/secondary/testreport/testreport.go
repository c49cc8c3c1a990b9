package testreport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	"github.com/mimi1vx/osc-plugin-qam/internal/report"
)

const (
	defaultRetryMax = 3
	defaultTimeout  = 30 * time.Second
)

// Loader fetches test report logs from the report server and parses
// them into templates. Reports live in a directory named after the
// source project and the request id.
type Loader struct {
	http    *retryablehttp.Client
	baseURL string
}

// NewLoader creates a loader against the report server base URL.
func NewLoader(baseURL string) *Loader {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = defaultRetryMax
	httpClient.HTTPClient.Timeout = defaultTimeout
	httpClient.Logger = nil

	return &Loader{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ForRequest fetches and parses the report for a request.
func (l *Loader) ForRequest(ctx context.Context, request *domain.Request) (*report.Template, error) {
	if request.SrcProject == "" {
		return nil, &domain.MissingSourceProjectError{ReqID: request.ReqID}
	}

	directory := fmt.Sprintf("%s:%s", request.SrcProject, request.ReqID)
	reportURL := l.baseURL + "/" + directory
	logURL := reportURL + "/log"

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, logURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report %s: %w", logURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &domain.TemplateNotFoundError{Path: logURL}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &domain.GatewayError{
			URL:        logURL,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	log, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", logURL, err)
	}

	return report.New(request, string(log), logURL, reportURL), nil
}
