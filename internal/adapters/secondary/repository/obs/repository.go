package obs

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/secondary/obs"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
)

// incidentPriorityAttribute is the attribute on the maintenance
// incident project that carries its priority.
const incidentPriorityAttribute = "OBS:IncidentPriority"

// rejectReasonAttribute records decline reasons on the incident
// project.
const (
	rejectReasonNamespace = "MAINT"
	rejectReasonName      = "RejectReason"
)

// Repository implements the app.Repository interface against the build
// service XML API.
type Repository struct {
	client *obs.Client
}

// NewRepository creates a build service repository over the gateway.
func NewRepository(client *obs.Client) *Repository {
	return &Repository{client: client}
}

// RequestByID fetches a single request.
func (r *Repository) RequestByID(ctx context.Context, reqID string) (*domain.Request, error) {
	payload, err := r.client.Get(ctx, "request/"+reqID, nil)
	if err != nil {
		return nil, err
	}

	var wire requestXML
	if err := xml.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode request %s: %w", reqID, err)
	}

	return toDomainRequest(wire), nil
}

// OpenRequestsForGroups returns requests in review with an open review
// for any of the given groups.
func (r *Repository) OpenRequestsForGroups(ctx context.Context, groups []domain.Group) ([]*domain.Request, error) {
	return r.searchRequests(ctx, groups, string(domain.ReviewStateNew))
}

// AssignedRequestsForGroups returns requests in review whose review
// for any of the given groups has already been accepted.
func (r *Repository) AssignedRequestsForGroups(ctx context.Context, groups []domain.Group) ([]*domain.Request, error) {
	return r.searchRequests(ctx, groups, string(domain.ReviewStateAccepted))
}

// searchRequests queries the request search endpoint with an xpath
// predicate over the review state of the given groups.
func (r *Repository) searchRequests(ctx context.Context, groups []domain.Group, reviewState string) ([]*domain.Request, error) {
	if len(groups) == 0 {
		return nil, nil
	}

	predicates := make([]string, 0, len(groups))
	for _, group := range groups {
		predicates = append(predicates,
			fmt.Sprintf("review[@by_group='%s' and @state='%s']", group.Name, reviewState))
	}

	match := fmt.Sprintf("state/@name='review' and (%s)", strings.Join(predicates, " or "))

	payload, err := r.client.Get(ctx, "search/request", url.Values{
		"match":       []string{match},
		"withhistory": []string{"0"},
	})
	if err != nil {
		return nil, err
	}

	var wire collectionXML
	if err := xml.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode request collection: %w", err)
	}

	return toDomainRequests(wire), nil
}

// RequestsForUser returns the open requests the user is involved in.
func (r *Repository) RequestsForUser(ctx context.Context, login string) ([]*domain.Request, error) {
	payload, err := r.client.Get(ctx, "request", url.Values{
		"view":   []string{"collection"},
		"user":   []string{login},
		"states": []string{"new,review"},
	})
	if err != nil {
		return nil, err
	}

	var wire collectionXML
	if err := xml.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode requests for %s: %w", login, err)
	}

	return toDomainRequests(wire), nil
}

// UserByLogin fetches an account by login.
func (r *Repository) UserByLogin(ctx context.Context, login string) (*domain.User, error) {
	payload, err := r.client.Get(ctx, "person/"+login, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, &domain.UserNotFoundError{Login: login}
		}

		return nil, err
	}

	var wire personXML
	if err := xml.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode person %s: %w", login, err)
	}

	return &domain.User{
		Login:    wire.Login,
		Realname: wire.Realname,
		Email:    wire.Email,
	}, nil
}

// GroupByName fetches a group by name.
func (r *Repository) GroupByName(ctx context.Context, name string) (*domain.Group, error) {
	payload, err := r.client.Get(ctx, "group/"+name, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, &domain.GroupNotFoundError{Name: name}
		}

		return nil, err
	}

	var wire groupXML
	if err := xml.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode group %s: %w", name, err)
	}

	return &domain.Group{Name: name, Title: wire.Title}, nil
}

// GroupsForUser returns the groups the user is a member of.
func (r *Repository) GroupsForUser(ctx context.Context, login string) ([]domain.Group, error) {
	return r.groupDirectory(ctx, url.Values{"login": []string{login}})
}

// AllGroups returns every group known to the build service.
func (r *Repository) AllGroups(ctx context.Context) ([]domain.Group, error) {
	return r.groupDirectory(ctx, nil)
}

func (r *Repository) groupDirectory(ctx context.Context, query url.Values) ([]domain.Group, error) {
	payload, err := r.client.Get(ctx, "group", query)
	if err != nil {
		return nil, err
	}

	var wire directoryXML
	if err := xml.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode group directory: %w", err)
	}

	groups := make([]domain.Group, 0, len(wire.Entries))
	for _, entry := range wire.Entries {
		groups = append(groups, domain.Group{Name: entry.Name})
	}

	return groups, nil
}

// IncidentPriority reads the priority attribute of the incident
// project behind a request. The priority is display-only, so remote
// failures degrade to the unknown priority instead of failing the
// listing.
func (r *Repository) IncidentPriority(ctx context.Context, srcProject string) domain.Priority {
	if srcProject == "" {
		return domain.UnknownPriority()
	}

	path := fmt.Sprintf("source/%s/_attribute/%s", srcProject, incidentPriorityAttribute)
	payload, err := r.client.Get(ctx, path, nil)
	if err != nil {
		slog.Debug("failed to fetch incident priority", "project", srcProject, "error", err)

		return domain.UnknownPriority()
	}

	var wire attributesXML
	if err := xml.Unmarshal(payload, &wire); err != nil {
		slog.Debug("failed to decode incident priority", "project", srcProject, "error", err)

		return domain.UnknownPriority()
	}

	for _, attribute := range wire.Attributes {
		for _, value := range attribute.Values {
			priority, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				continue
			}

			return domain.NewPriority(priority)
		}
	}

	return domain.UnknownPriority()
}

// StoreRejectReasons records the decline reasons as a
// MAINT:RejectReason attribute on the incident project.
func (r *Repository) StoreRejectReasons(
	ctx context.Context,
	srcProject string,
	reasons []domain.RejectReason,
) error {
	values := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		values = append(values, string(reason))
	}

	body, err := xml.Marshal(attributeWriteXML{
		Attribute: attributeValueXML{
			Namespace: rejectReasonNamespace,
			Name:      rejectReasonName,
			Values:    values,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode reject reasons: %w", err)
	}

	path := fmt.Sprintf("source/%s/_attribute", srcProject)
	if _, err := r.client.Post(ctx, path, nil, string(body)); err != nil {
		return fmt.Errorf("failed to store reject reasons on %s: %w", srcProject, err)
	}

	return nil
}

// AssignReview adds the user as a reviewer on behalf of the group.
func (r *Repository) AssignReview(
	ctx context.Context,
	reqID string,
	user *domain.User,
	group domain.Group,
	comment string,
) error {
	_, err := r.client.Post(ctx, "request/"+reqID, url.Values{
		"cmd":      []string{"assignreview"},
		"group":    []string{group.Name},
		"reviewer": []string{user.Login},
	}, comment)

	return err
}

// AcceptGroupReview accepts the review held by a group.
func (r *Repository) AcceptGroupReview(ctx context.Context, reqID string, group domain.Group, comment string) error {
	return r.changeReviewState(ctx, reqID, domain.ReviewStateAccepted, url.Values{
		"by_group": []string{group.Name},
	}, comment)
}

// ReopenGroupReview puts the review held by a group back to new.
func (r *Repository) ReopenGroupReview(ctx context.Context, reqID string, group domain.Group, comment string) error {
	return r.changeReviewState(ctx, reqID, domain.ReviewStateNew, url.Values{
		"by_group": []string{group.Name},
	}, comment)
}

// AcceptUserReview accepts the review held by a user.
func (r *Repository) AcceptUserReview(ctx context.Context, reqID string, user *domain.User, comment string) error {
	return r.changeReviewState(ctx, reqID, domain.ReviewStateAccepted, url.Values{
		"by_user": []string{user.Login},
	}, comment)
}

// ReopenUserReview puts the review held by a user back to new.
func (r *Repository) ReopenUserReview(ctx context.Context, reqID string, user *domain.User, comment string) error {
	return r.changeReviewState(ctx, reqID, domain.ReviewStateNew, url.Values{
		"by_user": []string{user.Login},
	}, comment)
}

// DeclineUserReview declines the review held by a user.
func (r *Repository) DeclineUserReview(ctx context.Context, reqID string, user *domain.User, comment string) error {
	return r.changeReviewState(ctx, reqID, domain.ReviewStateDeclined, url.Values{
		"by_user": []string{user.Login},
	}, comment)
}

func (r *Repository) changeReviewState(
	ctx context.Context,
	reqID string,
	newState domain.ReviewState,
	by url.Values,
	comment string,
) error {
	query := url.Values{
		"cmd":      []string{"changereviewstate"},
		"newstate": []string{string(newState)},
	}
	for key, values := range by {
		query[key] = values
	}

	_, err := r.client.Post(ctx, "request/"+reqID, query, comment)

	return err
}

// AddComment attaches a comment to a request.
func (r *Repository) AddComment(ctx context.Context, reqID, text string) error {
	_, err := r.client.Post(ctx, "comments/request/"+reqID, nil, text)

	return err
}

// CommentsForRequest returns the comments attached to a request.
func (r *Repository) CommentsForRequest(ctx context.Context, reqID string) ([]domain.Comment, error) {
	payload, err := r.client.Get(ctx, "comments/request/"+reqID, nil)
	if err != nil {
		return nil, err
	}

	var wire commentsXML
	if err := xml.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode comments for %s: %w", reqID, err)
	}

	return toDomainComments(wire), nil
}

// DeleteComment removes a comment by id.
func (r *Repository) DeleteComment(ctx context.Context, commentID string) error {
	_, err := r.client.Delete(ctx, "comment/"+commentID)

	return err
}

func isNotFound(err error) bool {
	var gateway *domain.GatewayError
	return errors.As(err, &gateway) && gateway.StatusCode == http.StatusNotFound
}
