package report

import (
	"strings"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
)

// Status is the overall outcome recorded in a test report.
type Status int

const (
	StatusUnknown Status = iota
	StatusPassed
	StatusFailed
)

// Template is the parsed header of the test report belonging to one
// request. It is loaded once per workflow action and discarded; it is
// never partially present - either the report artifact exists and was
// fully parsed, or constructing the template failed.
type Template struct {
	Request *domain.Request
	Entries *LogEntries

	// LogURL points at the machine readable report, ReportURL at
	// the human readable rendering.
	LogURL    string
	ReportURL string
}

// New parses the given report log for a request.
func New(request *domain.Request, log string, logURL, reportURL string) *Template {
	return &Template{
		Request:   request,
		Entries:   Parse(log),
		LogURL:    logURL,
		ReportURL: reportURL,
	}
}

// Status derives the report outcome from the SUMMARY header.
func (t *Template) Status() Status {
	switch strings.ToUpper(t.Entries.Summary) {
	case "PASSED":
		return StatusPassed
	case "FAILED":
		return StatusFailed
	default:
		return StatusUnknown
	}
}

// Failed asserts that the report records a failed test run.
func (t *Template) Failed() error {
	if t.Status() != StatusFailed {
		return &domain.TestResultMismatchError{Expected: "FAILED", LogURL: t.LogURL}
	}

	return nil
}

// Passed asserts that the report records a passed test run.
func (t *Template) Passed() error {
	if t.Status() != StatusPassed {
		return &domain.TestResultMismatchError{Expected: "PASSED", LogURL: t.LogURL}
	}

	return nil
}

// TestPlanReviewer returns the reviewer responsible for the test plan.
func (t *Template) TestPlanReviewer() (string, error) {
	reviewer := strings.TrimSpace(t.Entries.TestPlanReviewer)
	if reviewer == "" {
		return "", &domain.TestPlanReviewerNotSetError{LogURL: t.LogURL}
	}

	return reviewer, nil
}
