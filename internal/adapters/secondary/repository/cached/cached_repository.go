package cached

import (
	"context"
	"fmt"

	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/secondary/cache"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/app"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
)

// CachedRepository wraps a Repository with identity caching. Users and
// groups rarely change and are fetched over and over while listing
// requests; request and review state is always read fresh.
type CachedRepository struct {
	repo  app.Repository
	cache cache.Cache
}

// NewCachedRepository creates a new cached repository instance.
func NewCachedRepository(repo app.Repository, cache cache.Cache) *CachedRepository {
	return &CachedRepository{
		repo:  repo,
		cache: cache,
	}
}

// UserByLogin fetches an account by login, from cache when possible.
func (r *CachedRepository) UserByLogin(ctx context.Context, login string) (*domain.User, error) {
	if user, ok := r.cache.GetUser(login); ok {
		return user, nil
	}

	user, err := r.repo.UserByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	r.cache.StoreUser(user)

	return user, nil
}

// GroupByName fetches a group by name, from cache when possible.
func (r *CachedRepository) GroupByName(ctx context.Context, name string) (*domain.Group, error) {
	if group, ok := r.cache.GetGroup(name); ok {
		return group, nil
	}

	group, err := r.repo.GroupByName(ctx, name)
	if err != nil {
		return nil, err
	}

	r.cache.StoreGroup(group)

	return group, nil
}

// GroupsForUser returns the groups the user is a member of, from cache
// when possible.
func (r *CachedRepository) GroupsForUser(ctx context.Context, login string) ([]domain.Group, error) {
	if groups, ok := r.cache.GetUserGroups(login); ok {
		return groups, nil
	}

	groups, err := r.repo.GroupsForUser(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups for %s: %w", login, err)
	}

	r.cache.StoreUserGroups(login, groups)

	return groups, nil
}

// AllGroups returns every group, from cache when possible.
func (r *CachedRepository) AllGroups(ctx context.Context) ([]domain.Group, error) {
	if groups, ok := r.cache.GetAllGroups(); ok {
		return groups, nil
	}

	groups, err := r.repo.AllGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups: %w", err)
	}

	r.cache.StoreAllGroups(groups)

	return groups, nil
}

// RequestByID fetches a single request. Never cached.
func (r *CachedRepository) RequestByID(ctx context.Context, reqID string) (*domain.Request, error) {
	return r.repo.RequestByID(ctx, reqID)
}

// OpenRequestsForGroups returns requests with an open review for any
// of the given groups.
func (r *CachedRepository) OpenRequestsForGroups(ctx context.Context, groups []domain.Group) ([]*domain.Request, error) {
	return r.repo.OpenRequestsForGroups(ctx, groups)
}

// AssignedRequestsForGroups returns requests whose review for any of
// the given groups has been accepted.
func (r *CachedRepository) AssignedRequestsForGroups(ctx context.Context, groups []domain.Group) ([]*domain.Request, error) {
	return r.repo.AssignedRequestsForGroups(ctx, groups)
}

// RequestsForUser returns the open requests the user is involved in.
func (r *CachedRepository) RequestsForUser(ctx context.Context, login string) ([]*domain.Request, error) {
	return r.repo.RequestsForUser(ctx, login)
}

// IncidentPriority reads the priority of the incident behind a
// request.
func (r *CachedRepository) IncidentPriority(ctx context.Context, srcProject string) domain.Priority {
	return r.repo.IncidentPriority(ctx, srcProject)
}

// StoreRejectReasons records decline reasons on the incident project.
func (r *CachedRepository) StoreRejectReasons(ctx context.Context, srcProject string, reasons []domain.RejectReason) error {
	return r.repo.StoreRejectReasons(ctx, srcProject, reasons)
}

// AssignReview adds the user as a reviewer on behalf of the group.
func (r *CachedRepository) AssignReview(
	ctx context.Context,
	reqID string,
	user *domain.User,
	group domain.Group,
	comment string,
) error {
	return r.repo.AssignReview(ctx, reqID, user, group, comment)
}

// AcceptGroupReview accepts the review held by a group.
func (r *CachedRepository) AcceptGroupReview(ctx context.Context, reqID string, group domain.Group, comment string) error {
	return r.repo.AcceptGroupReview(ctx, reqID, group, comment)
}

// ReopenGroupReview puts the review held by a group back to new.
func (r *CachedRepository) ReopenGroupReview(ctx context.Context, reqID string, group domain.Group, comment string) error {
	return r.repo.ReopenGroupReview(ctx, reqID, group, comment)
}

// AcceptUserReview accepts the review held by a user.
func (r *CachedRepository) AcceptUserReview(ctx context.Context, reqID string, user *domain.User, comment string) error {
	return r.repo.AcceptUserReview(ctx, reqID, user, comment)
}

// ReopenUserReview puts the review held by a user back to new.
func (r *CachedRepository) ReopenUserReview(ctx context.Context, reqID string, user *domain.User, comment string) error {
	return r.repo.ReopenUserReview(ctx, reqID, user, comment)
}

// DeclineUserReview declines the review held by a user.
func (r *CachedRepository) DeclineUserReview(ctx context.Context, reqID string, user *domain.User, comment string) error {
	return r.repo.DeclineUserReview(ctx, reqID, user, comment)
}

// AddComment attaches a comment to a request.
func (r *CachedRepository) AddComment(ctx context.Context, reqID, text string) error {
	return r.repo.AddComment(ctx, reqID, text)
}

// CommentsForRequest returns the comments attached to a request.
func (r *CachedRepository) CommentsForRequest(ctx context.Context, reqID string) ([]domain.Comment, error) {
	return r.repo.CommentsForRequest(ctx, reqID)
}

// DeleteComment removes a comment by id.
func (r *CachedRepository) DeleteComment(ctx context.Context, commentID string) error {
	return r.repo.DeleteComment(ctx, commentID)
}
