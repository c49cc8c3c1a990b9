package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRequest() *Request {
	return &Request{
		ReqID:      "12345",
		State:      "review",
		SrcProject: "SUSE:Maintenance:130:12345",
		Reviews: []Review{
			{State: ReviewStateNew, ByGroup: "qam-cloud"},
			{State: ReviewStateReview, ByGroup: "qam-sle"},
			{State: ReviewStateAccepted, ByGroup: "qam-auto", Who: "autobot"},
			{State: ReviewStateDeclined, ByUser: "someone"},
		},
	}
}

func assignedRequest() *Request {
	return &Request{
		ReqID:      "52542",
		State:      "review",
		SrcProject: "SUSE:Maintenance:130:52542",
		Reviews: []Review{
			{State: ReviewStateAccepted, ByGroup: "qam-sle", Who: "anonymous"},
			{State: ReviewStateNew, ByUser: "anonymous", Who: "anonymous"},
		},
	}
}

func TestOpenReviews(t *testing.T) {
	request := openRequest()

	open := request.OpenReviews()

	assert.Len(t, open, 2)
	for _, review := range open {
		assert.True(t, review.State.Open())
	}
}

func TestOpenGroupReviewsSkipsUserReviews(t *testing.T) {
	request := openRequest()
	request.Reviews = append(request.Reviews, Review{State: ReviewStateNew, ByUser: "anonymous"})

	open := request.OpenGroupReviews()

	assert.Len(t, open, 2)
	for _, review := range open {
		assert.NotEmpty(t, review.ByGroup)
	}
}

func TestReviewerNameNormalization(t *testing.T) {
	tests := []struct {
		name     string
		review   Review
		expected string
	}{
		{
			name:     "group reviewer",
			review:   Review{State: ReviewStateNew, ByGroup: "qam-sle"},
			expected: "qam-sle",
		},
		{
			name:     "user reviewer",
			review:   Review{State: ReviewStateNew, ByUser: "anonymous"},
			expected: "anonymous",
		},
		{
			name:     "free-text reviewer",
			review:   Review{State: ReviewStateNew, Who: "someone"},
			expected: "someone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.review.ReviewerName())
		})
	}
}

func TestAssignedRoles(t *testing.T) {
	request := assignedRequest()

	roles := request.AssignedRoles()

	assert.Len(t, roles, 1)
	assert.Equal(t, "anonymous", roles[0].User.Login)
	assert.Equal(t, "qam-sle", roles[0].Group.Name)
}

func TestAssignedRolesAfterUnassign(t *testing.T) {
	// Unassigning reopens the group review and closes the user
	// review, so no role must be derived anymore.
	request := &Request{
		ReqID: "52542",
		Reviews: []Review{
			{State: ReviewStateNew, ByGroup: "qam-sle", Who: "anonymous"},
			{State: ReviewStateAccepted, ByUser: "anonymous", Who: "anonymous"},
		},
	}

	assert.Empty(t, request.AssignedRoles())
}

func TestAssignmentEquality(t *testing.T) {
	first := Assignment{User: User{Login: "anonymous"}, Group: Group{Name: "qam-sle"}}
	second := Assignment{
		User:  User{Login: "anonymous", Realname: "Anonymous Coward"},
		Group: Group{Name: "qam-sle", Title: "QAM SLE"},
	}

	assert.True(t, first.Equal(second))
	assert.Equal(t, first, Assignment{User: User{Login: "anonymous"}, Group: Group{Name: "qam-sle"}})
}

func TestParseRequestID(t *testing.T) {
	assert.Equal(t, "45678", ParseRequestID("SUSE:Maintenance:123:45678"))
	assert.Equal(t, "45678", ParseRequestID("45678"))
}

func TestFilterByProject(t *testing.T) {
	requests := []*Request{
		{ReqID: "1", SrcProject: "SUSE:Maintenance:123"},
		{ReqID: "2", SrcProject: "home:someone"},
		{ReqID: "3", SrcProject: ""},
	}

	filtered := FilterByProject("SUSE:Maintenance", requests)

	assert.Len(t, filtered, 1)
	assert.Equal(t, "1", filtered[0].ReqID)
}

func TestIsQAMGroup(t *testing.T) {
	tests := []struct {
		name     string
		group    Group
		expected bool
	}{
		{name: "qam group", group: Group{Name: "qam-sle"}, expected: true},
		{name: "automated reviews excluded", group: Group{Name: "qam-auto"}, expected: false},
		{name: "openqa excluded", group: Group{Name: "qam-openqa"}, expected: false},
		{name: "unrelated group", group: Group{Name: "autobuild"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.group.IsQAMGroup())
		})
	}
}

func TestPriorityOrdering(t *testing.T) {
	urgent := NewPriority(90)
	low := NewPriority(10)
	unknown := UnknownPriority()

	assert.True(t, urgent.Less(low))
	assert.True(t, low.Less(unknown))
	assert.False(t, unknown.Less(low))
	assert.Equal(t, "None", unknown.String())
	assert.Equal(t, "90", urgent.String())
}

func TestParseRejectReason(t *testing.T) {
	reason, err := ParseRejectReason("regression")
	require.NoError(t, err)
	assert.Equal(t, RejectRegression, reason)

	_, err = ParseRejectReason("because")
	var invalid *InvalidRejectReasonError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "because", invalid.Value)
	assert.Contains(t, invalid.Valid, "build_problem")
}
