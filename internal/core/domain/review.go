package domain

// ReviewState is the state of a single review on a request.
type ReviewState string

// Review state machine: a review starts as "new", may pass through
// "review" and ends in "accepted" or "declined". Only "new" and
// "review" count as open.
const (
	ReviewStateNew      ReviewState = "new"
	ReviewStateReview   ReviewState = "review"
	ReviewStateAccepted ReviewState = "accepted"
	ReviewStateDeclined ReviewState = "declined"
)

// Open reports whether the state still awaits a decision.
func (s ReviewState) Open() bool {
	return s == ReviewStateNew || s == ReviewStateReview
}

// Review is a single approval gate on a request. Exactly one of
// ByGroup and ByUser is set in well-formed data; Who records the
// account that put the review into its current state.
type Review struct {
	State   ReviewState
	ByGroup string
	ByUser  string
	Who     string
}

// Open reports whether the review still awaits a decision.
func (r Review) Open() bool {
	return r.State.Open()
}

// ReviewerName normalizes the reviewer reference to a single name,
// regardless of which form the remote delivered.
func (r Review) ReviewerName() string {
	switch {
	case r.ByGroup != "":
		return r.ByGroup
	case r.ByUser != "":
		return r.ByUser
	default:
		return r.Who
	}
}
