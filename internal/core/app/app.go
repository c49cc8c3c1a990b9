package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/mimi1vx/osc-plugin-qam/internal/config"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	"github.com/mimi1vx/osc-plugin-qam/internal/report"
)

// Repository defines the interface to the build service (port). Reads
// return fresh domain records on every call; mutations map one-to-one
// onto remote review state changes.
type Repository interface {
	RequestByID(ctx context.Context, reqID string) (*domain.Request, error)
	OpenRequestsForGroups(ctx context.Context, groups []domain.Group) ([]*domain.Request, error)
	AssignedRequestsForGroups(ctx context.Context, groups []domain.Group) ([]*domain.Request, error)
	RequestsForUser(ctx context.Context, login string) ([]*domain.Request, error)
	UserByLogin(ctx context.Context, login string) (*domain.User, error)
	GroupByName(ctx context.Context, name string) (*domain.Group, error)
	GroupsForUser(ctx context.Context, login string) ([]domain.Group, error)
	AllGroups(ctx context.Context) ([]domain.Group, error)
	IncidentPriority(ctx context.Context, srcProject string) domain.Priority
	StoreRejectReasons(ctx context.Context, srcProject string, reasons []domain.RejectReason) error
	AssignReview(ctx context.Context, reqID string, user *domain.User, group domain.Group, comment string) error
	AcceptGroupReview(ctx context.Context, reqID string, group domain.Group, comment string) error
	ReopenGroupReview(ctx context.Context, reqID string, group domain.Group, comment string) error
	AcceptUserReview(ctx context.Context, reqID string, user *domain.User, comment string) error
	ReopenUserReview(ctx context.Context, reqID string, user *domain.User, comment string) error
	DeclineUserReview(ctx context.Context, reqID string, user *domain.User, comment string) error
	AddComment(ctx context.Context, reqID, text string) error
	CommentsForRequest(ctx context.Context, reqID string) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

// TemplateLoader locates and parses the test report for a request
// (port). Implementations report a missing artifact with
// domain.TemplateNotFoundError and a request without source project
// with domain.MissingSourceProjectError.
type TemplateLoader interface {
	ForRequest(ctx context.Context, request *domain.Request) (*report.Template, error)
}

// TemplateLoaderFunc adapts a plain function to the TemplateLoader
// interface.
type TemplateLoaderFunc func(ctx context.Context, request *domain.Request) (*report.Template, error)

func (f TemplateLoaderFunc) ForRequest(ctx context.Context, request *domain.Request) (*report.Template, error) {
	return f(ctx, request)
}

// App is the review workflow engine. Every exported method is one
// self-contained action invocation: it resolves the request and the
// acting user, validates preconditions, performs the remote state
// changes and unwinds them on failure.
type App struct {
	repo      Repository
	templates TemplateLoader
	user      string
}

// NewApp creates a new workflow engine acting as the configured user.
func NewApp(cfg *config.Config, repo Repository, templates TemplateLoader) (*App, error) {
	if cfg.User == "" {
		return nil, errors.New("acting user is not configured")
	}

	return &App{
		repo:      repo,
		templates: templates,
		user:      cfg.User,
	}, nil
}

// resolve fetches the acting user and the request every action starts
// from.
func (a *App) resolve(ctx context.Context, reqID string) (*domain.User, *domain.Request, error) {
	user, err := a.repo.UserByLogin(ctx, a.user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}

	request, err := a.repo.RequestByID(ctx, domain.ParseRequestID(reqID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch request %s: %w", reqID, err)
	}

	return user, request, nil
}

// groupsMemo resolves a user's groups at most once per action
// invocation. The cell must not outlive the invocation and is not safe
// for concurrent use.
type groupsMemo struct {
	repo   Repository
	login  string
	groups []domain.Group
	loaded bool
}

func (a *App) userGroups(login string) *groupsMemo {
	return &groupsMemo{repo: a.repo, login: login}
}

func (m *groupsMemo) Groups(ctx context.Context) ([]domain.Group, error) {
	if !m.loaded {
		groups, err := m.repo.GroupsForUser(ctx, m.login)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve groups for %s: %w", m.login, err)
		}
		m.groups = groups
		m.loaded = true
	}

	return m.groups, nil
}

func (m *groupsMemo) QAMGroups(ctx context.Context) ([]domain.Group, error) {
	groups, err := m.Groups(ctx)
	if err != nil {
		return nil, err
	}

	return domain.QAMGroups(groups), nil
}
