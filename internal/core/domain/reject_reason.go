package domain

// RejectReason classifies why a request was declined. The vocabulary
// is fixed; the build service records the chosen reasons as a
// MAINT:RejectReason attribute on the incident project so release
// tooling can act on them.
type RejectReason string

const (
	RejectAdministrative RejectReason = "admin"
	RejectRetracted      RejectReason = "retracted"
	RejectBuildProblem   RejectReason = "build_problem"
	RejectNotFixed       RejectReason = "not_fixed"
	RejectRegression     RejectReason = "regression"
	RejectFalseReject    RejectReason = "false_reject"
	RejectTrackingIssue  RejectReason = "tracking_issue"
)

var rejectReasons = []RejectReason{
	RejectAdministrative,
	RejectRetracted,
	RejectBuildProblem,
	RejectNotFixed,
	RejectRegression,
	RejectFalseReject,
	RejectTrackingIssue,
}

// ParseRejectReason maps a flag value onto a reason.
func ParseRejectReason(value string) (RejectReason, error) {
	for _, reason := range rejectReasons {
		if string(reason) == value {
			return reason, nil
		}
	}

	return "", &InvalidRejectReasonError{Value: value, Valid: RejectReasonValues()}
}

// RejectReasonValues returns the accepted flag values.
func RejectReasonValues() []string {
	values := make([]string, 0, len(rejectReasons))
	for _, reason := range rejectReasons {
		values = append(values, string(reason))
	}

	return values
}
