package mocks

import (
	"context"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	"github.com/mimi1vx/osc-plugin-qam/internal/report"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of app.Repository.
type MockRepository struct {
	mock.Mock
}

// RequestByID mocks the RequestByID method.
func (m *MockRepository) RequestByID(ctx context.Context, reqID string) (*domain.Request, error) {
	args := m.Called(ctx, reqID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Request), args.Error(1)
}

// OpenRequestsForGroups mocks the OpenRequestsForGroups method.
func (m *MockRepository) OpenRequestsForGroups(
	ctx context.Context,
	groups []domain.Group,
) ([]*domain.Request, error) {
	args := m.Called(ctx, groups)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.Request), args.Error(1)
}

// AssignedRequestsForGroups mocks the AssignedRequestsForGroups method.
func (m *MockRepository) AssignedRequestsForGroups(
	ctx context.Context,
	groups []domain.Group,
) ([]*domain.Request, error) {
	args := m.Called(ctx, groups)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.Request), args.Error(1)
}

// RequestsForUser mocks the RequestsForUser method.
func (m *MockRepository) RequestsForUser(ctx context.Context, login string) ([]*domain.Request, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.Request), args.Error(1)
}

// UserByLogin mocks the UserByLogin method.
func (m *MockRepository) UserByLogin(ctx context.Context, login string) (*domain.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

// GroupByName mocks the GroupByName method.
func (m *MockRepository) GroupByName(ctx context.Context, name string) (*domain.Group, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Group), args.Error(1)
}

// GroupsForUser mocks the GroupsForUser method.
func (m *MockRepository) GroupsForUser(ctx context.Context, login string) ([]domain.Group, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Group), args.Error(1)
}

// AllGroups mocks the AllGroups method.
func (m *MockRepository) AllGroups(ctx context.Context) ([]domain.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Group), args.Error(1)
}

// IncidentPriority mocks the IncidentPriority method.
func (m *MockRepository) IncidentPriority(ctx context.Context, srcProject string) domain.Priority {
	args := m.Called(ctx, srcProject)

	return args.Get(0).(domain.Priority)
}

// StoreRejectReasons mocks the StoreRejectReasons method.
func (m *MockRepository) StoreRejectReasons(ctx context.Context, srcProject string, reasons []domain.RejectReason) error {
	args := m.Called(ctx, srcProject, reasons)

	return args.Error(0)
}

// AssignReview mocks the AssignReview method.
func (m *MockRepository) AssignReview(
	ctx context.Context,
	reqID string,
	user *domain.User,
	group domain.Group,
	comment string,
) error {
	args := m.Called(ctx, reqID, user, group, comment)

	return args.Error(0)
}

// AcceptGroupReview mocks the AcceptGroupReview method.
func (m *MockRepository) AcceptGroupReview(
	ctx context.Context,
	reqID string,
	group domain.Group,
	comment string,
) error {
	args := m.Called(ctx, reqID, group, comment)

	return args.Error(0)
}

// ReopenGroupReview mocks the ReopenGroupReview method.
func (m *MockRepository) ReopenGroupReview(
	ctx context.Context,
	reqID string,
	group domain.Group,
	comment string,
) error {
	args := m.Called(ctx, reqID, group, comment)

	return args.Error(0)
}

// AcceptUserReview mocks the AcceptUserReview method.
func (m *MockRepository) AcceptUserReview(
	ctx context.Context,
	reqID string,
	user *domain.User,
	comment string,
) error {
	args := m.Called(ctx, reqID, user, comment)

	return args.Error(0)
}

// ReopenUserReview mocks the ReopenUserReview method.
func (m *MockRepository) ReopenUserReview(
	ctx context.Context,
	reqID string,
	user *domain.User,
	comment string,
) error {
	args := m.Called(ctx, reqID, user, comment)

	return args.Error(0)
}

// DeclineUserReview mocks the DeclineUserReview method.
func (m *MockRepository) DeclineUserReview(
	ctx context.Context,
	reqID string,
	user *domain.User,
	comment string,
) error {
	args := m.Called(ctx, reqID, user, comment)

	return args.Error(0)
}

// AddComment mocks the AddComment method.
func (m *MockRepository) AddComment(ctx context.Context, reqID, text string) error {
	args := m.Called(ctx, reqID, text)

	return args.Error(0)
}

// CommentsForRequest mocks the CommentsForRequest method.
func (m *MockRepository) CommentsForRequest(ctx context.Context, reqID string) ([]domain.Comment, error) {
	args := m.Called(ctx, reqID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Comment), args.Error(1)
}

// DeleteComment mocks the DeleteComment method.
func (m *MockRepository) DeleteComment(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)

	return args.Error(0)
}

// MockTemplateLoader is a mock implementation of app.TemplateLoader.
type MockTemplateLoader struct {
	mock.Mock
}

// ForRequest mocks the ForRequest method.
func (m *MockTemplateLoader) ForRequest(
	ctx context.Context,
	request *domain.Request,
) (*report.Template, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*report.Template), args.Error(1)
}
