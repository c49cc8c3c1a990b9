package domain

import (
	"fmt"
	"strings"
)

// GatewayError reports a failed call against the build service. The
// core never retries it; it always reaches the caller, either directly
// or wrapped in a more specific error.
type GatewayError struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("error accessing %s - %d: %s", e.URL, e.StatusCode, e.Message)
}

// UserNotFoundError reports that no account exists for a login.
type UserNotFoundError struct {
	Login string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user not found: %s", e.Login)
}

// GroupNotFoundError reports that no group exists for a name.
type GroupNotFoundError struct {
	Name string
}

func (e *GroupNotFoundError) Error() string {
	return fmt.Sprintf("no group found for name: %s", e.Name)
}

// TemplateNotFoundError reports that no test report exists for a
// request. List actions skip such requests; Assign turns this into a
// ReportNotYetGeneratedError.
type TemplateNotFoundError struct {
	Path string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("report not found: %s", e.Path)
}

// MissingSourceProjectError reports a request that lacks the source
// project needed to locate its test report.
type MissingSourceProjectError struct {
	ReqID string
}

func (e *MissingSourceProjectError) Error() string {
	return fmt.Sprintf("request %s has no source project", e.ReqID)
}

// NoQamReviewsError reports an assign attempt against a request that
// has no open qam-group reviews at all.
type NoQamReviewsError struct {
	ReqID string
}

func (e *NoQamReviewsError) Error() string {
	return fmt.Sprintf("request %s has no open qam-group reviews", e.ReqID)
}

// NonMatchingGroupsError reports that open qam reviews exist but none
// of them can be served by the acting user's groups.
type NonMatchingGroupsError struct {
	UserGroups   []string
	ReviewGroups []string
}

func (e *NonMatchingGroupsError) Error() string {
	return fmt.Sprintf(
		"no matching groups: user groups [%s], review groups [%s]",
		strings.Join(e.UserGroups, ", "),
		strings.Join(e.ReviewGroups, ", "),
	)
}

// UninferableError reports that more than one group is a valid assign
// target, so the caller must name one explicitly.
type UninferableError struct {
	Groups []string
}

func (e *UninferableError) Error() string {
	return fmt.Sprintf(
		"more than one group could be assigned: %s - pass the group explicitly",
		strings.Join(e.Groups, ", "),
	)
}

// NoReviewError reports an unassign attempt by a user who is not
// assigned for any group on the request.
type NoReviewError struct {
	Login string
}

func (e *NoReviewError) Error() string {
	return fmt.Sprintf("user %s is not assigned for any group", e.Login)
}

// MultipleReviewsError reports an unassign attempt where the user is
// assigned for several groups and did not name one.
type MultipleReviewsError struct {
	Login  string
	Groups []string
}

func (e *MultipleReviewsError) Error() string {
	return fmt.Sprintf(
		"user %s is reviewing for multiple groups: %s - pass the group explicitly",
		e.Login,
		strings.Join(e.Groups, ", "),
	)
}

// TestResultMismatchError reports an operation whose precondition on
// the test report outcome does not hold, e.g. rejecting a request
// whose report has not failed.
type TestResultMismatchError struct {
	Expected string
	LogURL   string
}

func (e *TestResultMismatchError) Error() string {
	return fmt.Sprintf("test report is not %s: please check %s", e.Expected, e.LogURL)
}

// ReportNotYetGeneratedError reports an assign attempt before the test
// report for the request exists.
type ReportNotYetGeneratedError struct {
	ReqID string
	Err   error
}

func (e *ReportNotYetGeneratedError) Error() string {
	return fmt.Sprintf(
		"the report for request %s is not generated yet - reserve the request instead of assigning",
		e.ReqID,
	)
}

func (e *ReportNotYetGeneratedError) Unwrap() error {
	return e.Err
}

// NoCommentError reports a reject without any justification: neither
// the report nor the caller supplied a comment.
type NoCommentError struct{}

func (e *NoCommentError) Error() string {
	return "a comment is required to reject a request"
}

// TestPlanReviewerNotSetError reports a report whose test plan
// reviewer header is missing or empty.
type TestPlanReviewerNotSetError struct {
	LogURL string
}

func (e *TestPlanReviewerNotSetError) Error() string {
	return fmt.Sprintf("test plan reviewer is not set in %s", e.LogURL)
}

// InvalidRejectReasonError reports a reject reason outside the fixed
// vocabulary.
type InvalidRejectReasonError struct {
	Value string
	Valid []string
}

func (e *InvalidRejectReasonError) Error() string {
	return fmt.Sprintf("unknown reject reason %q - valid reasons: %s",
		e.Value, strings.Join(e.Valid, ", "))
}

// ConflictingOptionsError reports mutually exclusive caller inputs.
// It belongs to the CLI boundary, not to the workflow engine.
type ConflictingOptionsError struct {
	Options []string
}

func (e *ConflictingOptionsError) Error() string {
	return fmt.Sprintf("conflicting options: pass only one of %s", strings.Join(e.Options, ", "))
}
