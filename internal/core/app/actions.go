package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	"github.com/mimi1vx/osc-plugin-qam/internal/report"
)

// commentPrefix tags review comments written by this tool so the
// assignment history stays greppable on the request.
const commentPrefix = "[oscqam]"

func assignComment(user *domain.User, group domain.Group) string {
	return fmt.Sprintf("%s::assign::%s::%s", commentPrefix, user.Login, group.Name)
}

func unassignComment(user *domain.User, group domain.Group) string {
	return fmt.Sprintf("%s::unassign::%s::%s", commentPrefix, user.Login, group.Name)
}

// Assign designates the acting user as the reviewer for a group on the
// request. Without an explicit group name the target group is
// inferred; a missing test report aborts the operation before any
// remote state changes.
func (a *App) Assign(ctx context.Context, reqID, groupName string) (domain.Group, error) {
	user, request, err := a.resolve(ctx, reqID)
	if err != nil {
		return domain.Group{}, err
	}

	if _, err := a.templates.ForRequest(ctx, request); err != nil {
		var notFound *domain.TemplateNotFoundError
		if errors.As(err, &notFound) {
			return domain.Group{}, &domain.ReportNotYetGeneratedError{ReqID: request.ReqID, Err: err}
		}

		return domain.Group{}, err
	}

	var group domain.Group
	if groupName != "" {
		group, err = a.explicitGroup(ctx, request, groupName)
	} else {
		group, err = a.inferAssignGroup(ctx, request, a.userGroups(user.Login))
	}
	if err != nil {
		return domain.Group{}, err
	}

	if err := a.repo.AssignReview(ctx, request.ReqID, user, group, assignComment(user, group)); err != nil {
		return domain.Group{}, err
	}

	return group, nil
}

// explicitGroup resolves a caller-supplied group name and validates it
// against the current review state of the request. Inference is
// bypassed entirely.
func (a *App) explicitGroup(
	ctx context.Context,
	request *domain.Request,
	name string,
) (domain.Group, error) {
	group, err := a.repo.GroupByName(ctx, name)
	if err != nil {
		return domain.Group{}, err
	}

	for _, review := range request.OpenGroupReviews() {
		if review.ByGroup == group.Name {
			return *group, nil
		}
	}

	var open []string
	for _, review := range request.OpenGroupReviews() {
		open = append(open, review.ByGroup)
	}

	return domain.Group{}, &domain.NonMatchingGroupsError{
		UserGroups:   []string{group.Name},
		ReviewGroups: open,
	}
}

// Unassign withdraws the acting user's assignments on the request and
// reopens the group reviews. Reopening the group and closing the user
// review form one undo-bounded unit: either both succeed or both are
// rolled back.
func (a *App) Unassign(ctx context.Context, reqID string, groupNames []string) ([]domain.Group, error) {
	user, request, err := a.resolve(ctx, reqID)
	if err != nil {
		return nil, err
	}

	// Only groups the user is actually assigned for may be reopened;
	// anything else would clobber another reviewer's state.
	assigned := assignedGroups(request, user.Login)
	if len(assigned) == 0 {
		return nil, &domain.NoReviewError{Login: user.Login}
	}

	var groups []domain.Group
	if len(groupNames) > 0 {
		groups, err = a.explicitUnassignGroups(ctx, user, assigned, groupNames)
		if err != nil {
			return nil, err
		}
	} else {
		groups, err = inferUnassignGroups(assigned, user)
		if err != nil {
			return nil, err
		}
	}

	for _, group := range groups {
		if err := a.unassign(ctx, request, user, group); err != nil {
			return nil, err
		}
	}

	return groups, nil
}

// explicitUnassignGroups resolves caller-supplied group names and
// keeps the ones the user holds an assignment for.
func (a *App) explicitUnassignGroups(
	ctx context.Context,
	user *domain.User,
	assigned []domain.Group,
	groupNames []string,
) ([]domain.Group, error) {
	assignedNames := make(map[string]struct{}, len(assigned))
	for _, group := range assigned {
		assignedNames[group.Name] = struct{}{}
	}

	var groups []domain.Group
	for _, name := range groupNames {
		group, err := a.repo.GroupByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if _, ok := assignedNames[group.Name]; !ok {
			slog.Warn("skipping group without assignment",
				"group", group.Name, "user", user.Login)

			continue
		}
		groups = append(groups, *group)
	}

	if len(groups) == 0 {
		return nil, &domain.NoReviewError{Login: user.Login}
	}

	return groups, nil
}

func (a *App) unassign(
	ctx context.Context,
	request *domain.Request,
	user *domain.User,
	group domain.Group,
) error {
	comment := unassignComment(user, group)
	undo := &undoStack{}

	if err := a.repo.ReopenGroupReview(ctx, request.ReqID, group, comment); err != nil {
		return err
	}
	undo.push(compensation{
		kind:    compensateAcceptGroup,
		reqID:   request.ReqID,
		group:   group,
		comment: assignComment(user, group),
	})

	if err := a.repo.AcceptUserReview(ctx, request.ReqID, user, comment); err != nil {
		return undo.unwind(ctx, a.repo, err)
	}

	return nil
}

// Approve accepts the acting user's review on the request. Approval
// must be backed by evidence as well: the test report has to record a
// passed run.
func (a *App) Approve(ctx context.Context, reqID string) error {
	user, request, err := a.resolve(ctx, reqID)
	if err != nil {
		return err
	}

	template, err := a.templates.ForRequest(ctx, request)
	if err != nil {
		return err
	}
	if err := template.Passed(); err != nil {
		return err
	}
	if _, err := template.TestPlanReviewer(); err != nil {
		slog.Warn("approving without a test plan reviewer", "request", request.ReqID)
	}

	comment := fmt.Sprintf("%s::approve::%s", commentPrefix, user.Login)

	return a.repo.AcceptUserReview(ctx, request.ReqID, user, comment)
}

// ApproveGroup accepts the review of a group the request actually
// waits for.
func (a *App) ApproveGroup(ctx context.Context, reqID, groupName string) error {
	_, request, err := a.resolve(ctx, reqID)
	if err != nil {
		return err
	}

	group, err := a.repo.GroupByName(ctx, groupName)
	if err != nil {
		return err
	}

	reviewGroups := request.ReviewGroups()
	found := false
	for _, name := range reviewGroups {
		if name == group.Name {
			found = true

			break
		}
	}
	if !found {
		return &domain.NonMatchingGroupsError{
			UserGroups:   []string{group.Name},
			ReviewGroups: reviewGroups,
		}
	}

	comment := fmt.Sprintf("%s::approve::%s", commentPrefix, group.Name)

	return a.repo.AcceptGroupReview(ctx, request.ReqID, *group, comment)
}

// Reject declines the acting user's review. Rejection must be backed
// by evidence: the test report has to record a failed run, and either
// the report or the caller has to supply a comment. The reasons are
// recorded on the incident project for release tooling.
func (a *App) Reject(ctx context.Context, reqID, message string, reasons []domain.RejectReason) error {
	user, request, err := a.resolve(ctx, reqID)
	if err != nil {
		return err
	}

	template, err := a.templates.ForRequest(ctx, request)
	if err != nil {
		return err
	}
	if err := template.Failed(); err != nil {
		return err
	}

	comment := strings.TrimSpace(message)
	if comment == "" {
		comment = strings.TrimSpace(template.Entries.Comment)
	}
	if comment == "" {
		return &domain.NoCommentError{}
	}

	if err := a.repo.DeclineUserReview(ctx, request.ReqID, user, comment); err != nil {
		return err
	}

	if len(reasons) > 0 && request.SrcProject != "" {
		if err := a.repo.StoreRejectReasons(ctx, request.SrcProject, reasons); err != nil {
			return fmt.Errorf("request %s declined, but recording the reasons failed: %w",
				request.ReqID, err)
		}
	}

	return nil
}

// Info returns the full review view of a single request: the parsed
// report, the review roles and the incident priority.
func (a *App) Info(ctx context.Context, reqID string) (*Report, error) {
	_, request, err := a.resolve(ctx, reqID)
	if err != nil {
		return nil, err
	}

	template, err := a.templates.ForRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	return &Report{
		Request:  request,
		Template: template,
		Origin:   request.ReviewGroups(),
		Priority: a.repo.IncidentPriority(ctx, request.SrcProject),
	}, nil
}

// TestReport loads the parsed test report for the request.
func (a *App) TestReport(ctx context.Context, reqID string) (*report.Template, error) {
	_, request, err := a.resolve(ctx, reqID)
	if err != nil {
		return nil, err
	}

	return a.templates.ForRequest(ctx, request)
}

// Comment attaches a free-text comment to the request.
func (a *App) Comment(ctx context.Context, reqID, text string) error {
	_, request, err := a.resolve(ctx, reqID)
	if err != nil {
		return err
	}

	return a.repo.AddComment(ctx, request.ReqID, text)
}

// Comments returns the comments attached to the request.
func (a *App) Comments(ctx context.Context, reqID string) ([]domain.Comment, error) {
	_, request, err := a.resolve(ctx, reqID)
	if err != nil {
		return nil, err
	}

	return a.repo.CommentsForRequest(ctx, request.ReqID)
}

// DeleteComment removes a comment by its identifier.
func (a *App) DeleteComment(ctx context.Context, commentID string) error {
	return a.repo.DeleteComment(ctx, commentID)
}
