package app

import (
	"context"
	"sort"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
)

// reviewableGroups returns the groups the user could be assigned for:
// open qam-group reviews on the request, minus groups that already
// have an assignee, intersected with the user's qam-groups.
//
// The result is sorted by name so that inference is deterministic for
// a fixed snapshot of remote state.
func reviewableGroups(request *domain.Request, userGroups []domain.Group) ([]domain.Group, error) {
	assigned := make(map[string]struct{})
	for _, role := range request.AssignedRoles() {
		assigned[role.Group.Name] = struct{}{}
	}

	openNames := make(map[string]struct{})
	var reviewGroups []string
	for _, review := range request.OpenGroupReviews() {
		group := domain.Group{Name: review.ByGroup}
		if !group.IsQAMGroup() {
			continue
		}
		reviewGroups = append(reviewGroups, group.Name)
		if _, taken := assigned[group.Name]; taken {
			continue
		}
		openNames[group.Name] = struct{}{}
	}

	if len(reviewGroups) == 0 {
		return nil, &domain.NoQamReviewsError{ReqID: request.ReqID}
	}

	var candidates []domain.Group
	for _, group := range userGroups {
		if _, open := openNames[group.Name]; open {
			candidates = append(candidates, group)
		}
	}

	if len(candidates) == 0 {
		return nil, &domain.NonMatchingGroupsError{
			UserGroups:   groupNames(userGroups),
			ReviewGroups: reviewGroups,
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})

	return candidates, nil
}

// inferAssignGroup picks the single group an assign without explicit
// group argument must target. Ambiguity is never tie-broken silently.
func (a *App) inferAssignGroup(
	ctx context.Context,
	request *domain.Request,
	groups *groupsMemo,
) (domain.Group, error) {
	userGroups, err := groups.QAMGroups(ctx)
	if err != nil {
		return domain.Group{}, err
	}

	candidates, err := reviewableGroups(request, userGroups)
	if err != nil {
		return domain.Group{}, err
	}
	if len(candidates) > 1 {
		return domain.Group{}, &domain.UninferableError{Groups: groupNames(candidates)}
	}

	return candidates[0], nil
}

// assignedGroups returns the groups the user is currently the assigned
// reviewer for on this request.
func assignedGroups(request *domain.Request, login string) []domain.Group {
	var groups []domain.Group
	for _, role := range request.AssignedRoles() {
		if role.User.Login == login {
			groups = append(groups, role.Group)
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})

	return groups
}

// inferUnassignGroups picks the groups an unassign without explicit
// group arguments must target.
func inferUnassignGroups(assigned []domain.Group, user *domain.User) ([]domain.Group, error) {
	switch len(assigned) {
	case 0:
		return nil, &domain.NoReviewError{Login: user.Login}
	case 1:
		return assigned, nil
	default:
		return nil, &domain.MultipleReviewsError{
			Login:  user.Login,
			Groups: groupNames(assigned),
		}
	}
}

func groupNames(groups []domain.Group) []string {
	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, group.Name)
	}

	return names
}
