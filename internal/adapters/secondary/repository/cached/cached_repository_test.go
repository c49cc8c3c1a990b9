package cached

import (
	"context"
	"testing"

	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/secondary/cache"
	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/secondary/repository/mocks"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserByLoginIsCached(t *testing.T) {
	repo := &mocks.MockRepository{}
	repo.On("UserByLogin", mock.Anything, "anonymous").
		Return(&domain.User{Login: "anonymous"}, nil).Once()

	cached := NewCachedRepository(repo, cache.NewInMemoryCache())

	first, err := cached.UserByLogin(context.Background(), "anonymous")
	require.NoError(t, err)
	second, err := cached.UserByLogin(context.Background(), "anonymous")
	require.NoError(t, err)

	assert.Same(t, first, second)
	repo.AssertNumberOfCalls(t, "UserByLogin", 1)
}

func TestUserByLoginErrorIsNotCached(t *testing.T) {
	repo := &mocks.MockRepository{}
	repo.On("UserByLogin", mock.Anything, "nobody").
		Return(nil, &domain.UserNotFoundError{Login: "nobody"})

	cached := NewCachedRepository(repo, cache.NewInMemoryCache())

	_, err := cached.UserByLogin(context.Background(), "nobody")
	require.Error(t, err)
	_, err = cached.UserByLogin(context.Background(), "nobody")
	require.Error(t, err)

	repo.AssertNumberOfCalls(t, "UserByLogin", 2)
}

func TestGroupsForUserIsCached(t *testing.T) {
	repo := &mocks.MockRepository{}
	repo.On("GroupsForUser", mock.Anything, "anonymous").
		Return([]domain.Group{{Name: "qam-sle"}}, nil).Once()

	cached := NewCachedRepository(repo, cache.NewInMemoryCache())

	first, err := cached.GroupsForUser(context.Background(), "anonymous")
	require.NoError(t, err)
	second, err := cached.GroupsForUser(context.Background(), "anonymous")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "GroupsForUser", 1)
}

func TestAllGroupsIsCached(t *testing.T) {
	repo := &mocks.MockRepository{}
	repo.On("AllGroups", mock.Anything).
		Return([]domain.Group{{Name: "qam-sle"}, {Name: "qam-cloud"}}, nil).Once()

	cached := NewCachedRepository(repo, cache.NewInMemoryCache())

	_, err := cached.AllGroups(context.Background())
	require.NoError(t, err)
	groups, err := cached.AllGroups(context.Background())
	require.NoError(t, err)

	assert.Len(t, groups, 2)
	repo.AssertNumberOfCalls(t, "AllGroups", 1)
}

func TestRequestByIDIsNeverCached(t *testing.T) {
	repo := &mocks.MockRepository{}
	repo.On("RequestByID", mock.Anything, "52542").
		Return(&domain.Request{ReqID: "52542"}, nil)

	cached := NewCachedRepository(repo, cache.NewInMemoryCache())

	_, err := cached.RequestByID(context.Background(), "52542")
	require.NoError(t, err)
	_, err = cached.RequestByID(context.Background(), "52542")
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "RequestByID", 2)
}
