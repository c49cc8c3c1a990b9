package domain

import "strings"

// Request is a maintenance-incident change under review. The request,
// not its reviews, is the long-lived entity: once a review for a group
// is closed a fresh one may be opened later on the same request.
type Request struct {
	ReqID      string
	State      string
	Creator    string
	SrcProject string
	Reviews    []Review
}

// OpenReviews returns the reviews still awaiting a decision.
func (r *Request) OpenReviews() []Review {
	open := make([]Review, 0, len(r.Reviews))
	for _, review := range r.Reviews {
		if review.Open() {
			open = append(open, review)
		}
	}

	return open
}

// OpenGroupReviews returns the open reviews addressed to a group.
func (r *Request) OpenGroupReviews() []Review {
	open := make([]Review, 0, len(r.Reviews))
	for _, review := range r.Reviews {
		if review.Open() && review.ByGroup != "" {
			open = append(open, review)
		}
	}

	return open
}

// ReviewGroups returns the names of all groups that appear as
// reviewers on the request, open or closed.
func (r *Request) ReviewGroups() []string {
	seen := make(map[string]struct{})
	groups := make([]string, 0, len(r.Reviews))
	for _, review := range r.Reviews {
		if review.ByGroup == "" {
			continue
		}
		if _, ok := seen[review.ByGroup]; ok {
			continue
		}
		seen[review.ByGroup] = struct{}{}
		groups = append(groups, review.ByGroup)
	}

	return groups
}

// AssignedRoles derives the (user, group) assignments from the review
// snapshot alone: a group review that was accepted by a user who still
// holds an open personal review marks that user as the assignee for
// the group.
func (r *Request) AssignedRoles() []Assignment {
	openUsers := make(map[string]struct{})
	for _, review := range r.Reviews {
		if review.Open() && review.ByUser != "" {
			openUsers[review.ByUser] = struct{}{}
		}
	}

	var roles []Assignment
	for _, review := range r.Reviews {
		if review.ByGroup == "" || review.State != ReviewStateAccepted || review.Who == "" {
			continue
		}
		if _, ok := openUsers[review.Who]; !ok {
			continue
		}
		roles = append(roles, Assignment{
			User:  User{Login: review.Who},
			Group: Group{Name: review.ByGroup},
		})
	}

	return roles
}

// ParseRequestID extracts the plain request number from a full
// maintenance identifier such as "SUSE:Maintenance:123:45678". Plain
// numbers pass through unchanged.
func ParseRequestID(id string) string {
	parts := strings.Split(id, ":")

	return parts[len(parts)-1]
}

// FilterByProject keeps the requests whose source project contains the
// given maintenance-project prefix. Requests without a source project
// never match.
func FilterByProject(prefix string, requests []*Request) []*Request {
	filtered := make([]*Request, 0, len(requests))
	for _, request := range requests {
		if request.SrcProject != "" && strings.Contains(request.SrcProject, prefix) {
			filtered = append(filtered, request)
		}
	}

	return filtered
}
