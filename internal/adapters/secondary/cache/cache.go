package cache

import "github.com/mimi1vx/osc-plugin-qam/internal/core/domain"

// Cache defines the interface for caching build service identities.
// Users and groups are effectively immutable within one invocation;
// request state is never cached.
type Cache interface {
	// GetUser retrieves a user by login from the cache.
	// Returns the user and true if found, nil and false otherwise.
	GetUser(login string) (*domain.User, bool)

	// StoreUser stores a user in the cache, indexed by login.
	StoreUser(user *domain.User)

	// GetGroup retrieves a group by name from the cache.
	GetGroup(name string) (*domain.Group, bool)

	// StoreGroup stores a group in the cache, indexed by name.
	StoreGroup(group *domain.Group)

	// GetUserGroups retrieves the cached group membership of a user.
	GetUserGroups(login string) ([]domain.Group, bool)

	// StoreUserGroups stores the group membership of a user.
	StoreUserGroups(login string, groups []domain.Group)

	// GetAllGroups retrieves the cached group directory.
	GetAllGroups() ([]domain.Group, bool)

	// StoreAllGroups stores the group directory.
	StoreAllGroups(groups []domain.Group)
}
