package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	"github.com/mimi1vx/osc-plugin-qam/internal/report"
	"golang.org/x/sync/errgroup"
)

// Requests addressed directly to a user can come from anywhere on the
// build service; only maintenance updates belong in the workflow.
const maintenanceProject = "SUSE:Maintenance"

// Report pairs a request with its parsed test report for display.
// Origin records why the request showed up in a listing: the acting
// user's login, the names of the open group reviews, or both.
type Report struct {
	Request  *domain.Request
	Template *report.Template
	Origin   []string
	Priority domain.Priority
}

// ListOpen returns the requests the acting user could work on: open
// reviews for any of the user's qam-groups plus requests directly
// addressed to the user.
func (a *App) ListOpen(ctx context.Context) ([]*Report, error) {
	user, err := a.repo.UserByLogin(ctx, a.user)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}

	qamGroups, err := a.userGroups(user.Login).QAMGroups(ctx)
	if err != nil {
		return nil, err
	}

	userRequests, err := a.repo.RequestsForUser(ctx, user.Login)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for %s: %w", user.Login, err)
	}
	userRequests = domain.FilterByProject(maintenanceProject, userRequests)

	groupRequests, err := a.repo.OpenRequestsForGroups(ctx, qamGroups)
	if err != nil {
		return nil, fmt.Errorf("failed to list open group requests: %w", err)
	}

	merged := mergeRequests(user.Login, userRequests, groupRequests)

	return a.loadReports(ctx, merged)
}

// ListAssigned returns the requests currently assigned to anybody in
// any qam-group.
func (a *App) ListAssigned(ctx context.Context) ([]*Report, error) {
	groups, err := a.repo.AllGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	requests, err := a.repo.AssignedRequestsForGroups(ctx, domain.QAMGroups(groups))
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned requests: %w", err)
	}

	return a.loadReports(ctx, tagOrigin(requests))
}

// ListOpenForGroups returns the open requests for explicitly named
// groups, regardless of the acting user's memberships.
func (a *App) ListOpenForGroups(ctx context.Context, groupNames []string) ([]*Report, error) {
	groups, err := a.resolveGroups(ctx, groupNames)
	if err != nil {
		return nil, err
	}

	requests, err := a.repo.OpenRequestsForGroups(ctx, groups)
	if err != nil {
		return nil, fmt.Errorf("failed to list open group requests: %w", err)
	}

	return a.loadReports(ctx, tagOrigin(requests))
}

// ListAssignedForGroups returns the requests currently assigned for
// explicitly named groups.
func (a *App) ListAssignedForGroups(ctx context.Context, groupNames []string) ([]*Report, error) {
	groups, err := a.resolveGroups(ctx, groupNames)
	if err != nil {
		return nil, err
	}

	requests, err := a.repo.AssignedRequestsForGroups(ctx, groups)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned requests: %w", err)
	}

	return a.loadReports(ctx, tagOrigin(requests))
}

// resolveGroups validates the named groups against the remote.
func (a *App) resolveGroups(ctx context.Context, names []string) ([]domain.Group, error) {
	groups := make([]domain.Group, 0, len(names))
	for _, name := range names {
		group, err := a.repo.GroupByName(ctx, name)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}

	return groups, nil
}

// ListAssignedUser returns the requests the acting user is assigned
// for and still has an open review on.
func (a *App) ListAssignedUser(ctx context.Context) ([]*Report, error) {
	user, err := a.repo.UserByLogin(ctx, a.user)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}

	requests, err := a.repo.RequestsForUser(ctx, user.Login)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for %s: %w", user.Login, err)
	}

	var mine []*taggedRequest
	for _, request := range domain.FilterByProject(maintenanceProject, requests) {
		if inReviewByUser(request, user.Login) {
			mine = append(mine, &taggedRequest{request: request, origin: []string{user.Login}})
		}
	}

	return a.loadReports(ctx, mine)
}

func inReviewByUser(request *domain.Request, login string) bool {
	for _, review := range request.Reviews {
		if review.ByUser == login && review.Open() {
			return true
		}
	}

	return false
}

type taggedRequest struct {
	request *domain.Request
	origin  []string
}

// mergeRequests deduplicates the user- and group-scoped listings and
// tags every request with where it came from.
func mergeRequests(login string, userRequests, groupRequests []*domain.Request) []*taggedRequest {
	byID := make(map[string]*taggedRequest)
	var order []string

	for _, request := range userRequests {
		byID[request.ReqID] = &taggedRequest{request: request, origin: []string{login}}
		order = append(order, request.ReqID)
	}
	for _, request := range groupRequests {
		tagged, ok := byID[request.ReqID]
		if !ok {
			tagged = &taggedRequest{request: request}
			byID[request.ReqID] = tagged
			order = append(order, request.ReqID)
		}
		tagged.origin = append(tagged.origin, request.ReviewGroups()...)
	}

	merged := make([]*taggedRequest, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}

	return merged
}

func tagOrigin(requests []*domain.Request) []*taggedRequest {
	tagged := make([]*taggedRequest, 0, len(requests))
	for _, request := range requests {
		tagged = append(tagged, &taggedRequest{request: request, origin: request.ReviewGroups()})
	}

	return tagged
}

// loadReports fetches templates and incident priorities in parallel.
// Requests whose report does not exist yet are skipped with a warning,
// mirroring the fact that the report generation job may simply not
// have run.
func (a *App) loadReports(ctx context.Context, requests []*taggedRequest) ([]*Report, error) {
	g, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	reports := make([]*Report, 0, len(requests))

	for _, tagged := range requests {
		tagged := tagged
		g.Go(func() error {
			template, err := a.templates.ForRequest(ctx, tagged.request)
			if err != nil {
				var notFound *domain.TemplateNotFoundError
				var noSource *domain.MissingSourceProjectError
				if errors.As(err, &notFound) || errors.As(err, &noSource) {
					slog.Warn("skipping request without report",
						"request", tagged.request.ReqID, "reason", err)

					return nil
				}

				return err
			}

			priority := a.repo.IncidentPriority(ctx, tagged.request.SrcProject)

			mu.Lock()
			reports = append(reports, &Report{
				Request:  tagged.request,
				Template: template,
				Origin:   tagged.origin,
				Priority: priority,
			})
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}

	sortReports(reports)

	return reports, nil
}

// sortReports orders reports by request id, then rating, then incident
// priority. Each stable pass refines the previous one, so the last
// criterion is the coarsest.
func sortReports(reports []*Report) {
	multiLevelSort(reports,
		func(a, b *Report) bool { return a.Request.ReqID < b.Request.ReqID },
		func(a, b *Report) bool { return a.Template.Entries.Rating.Less(b.Template.Entries.Rating) },
		func(a, b *Report) bool { return a.Priority.Less(b.Priority) },
	)
}

// multiLevelSort stable-sorts by every criterion in turn. Applying the
// finest criterion first and the coarsest last yields the composite
// ordering.
func multiLevelSort[T any](xs []T, criteria ...func(a, b T) bool) {
	for _, less := range criteria {
		sort.SliceStable(xs, func(i, j int) bool {
			return less(xs[i], xs[j])
		})
	}
}
