package cache

import (
	"sync"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
)

// InMemoryCache is an in-memory thread-safe cache implementation for
// build service identities.
type InMemoryCache struct {
	users      sync.Map // map[string]*domain.User
	groups     sync.Map // map[string]*domain.Group
	userGroups sync.Map // map[string][]domain.Group

	mu        sync.Mutex
	allGroups []domain.Group
	allLoaded bool
}

// NewInMemoryCache creates a new in-memory cache instance.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{}
}

// GetUser retrieves a user by login from the cache.
func (c *InMemoryCache) GetUser(login string) (*domain.User, bool) {
	if cached, ok := c.users.Load(login); ok {
		if user, ok := cached.(*domain.User); ok {
			return user, true
		}
	}

	return nil, false
}

// StoreUser stores a user in the cache, indexed by login.
func (c *InMemoryCache) StoreUser(user *domain.User) {
	c.users.Store(user.Login, user)
}

// GetGroup retrieves a group by name from the cache.
func (c *InMemoryCache) GetGroup(name string) (*domain.Group, bool) {
	if cached, ok := c.groups.Load(name); ok {
		if group, ok := cached.(*domain.Group); ok {
			return group, true
		}
	}

	return nil, false
}

// StoreGroup stores a group in the cache, indexed by name.
func (c *InMemoryCache) StoreGroup(group *domain.Group) {
	c.groups.Store(group.Name, group)
}

// GetUserGroups retrieves the cached group membership of a user.
func (c *InMemoryCache) GetUserGroups(login string) ([]domain.Group, bool) {
	if cached, ok := c.userGroups.Load(login); ok {
		if groups, ok := cached.([]domain.Group); ok {
			return groups, true
		}
	}

	return nil, false
}

// StoreUserGroups stores the group membership of a user.
func (c *InMemoryCache) StoreUserGroups(login string, groups []domain.Group) {
	c.userGroups.Store(login, groups)
}

// GetAllGroups retrieves the cached group directory.
func (c *InMemoryCache) GetAllGroups() ([]domain.Group, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.allLoaded {
		return nil, false
	}

	return c.allGroups, true
}

// StoreAllGroups stores the group directory.
func (c *InMemoryCache) StoreAllGroups(groups []domain.Group) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.allGroups = groups
	c.allLoaded = true
}
