package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/astro-booking/internal/domain"
)

const roleKeyPrefix = "staff_role_perms:"

// RoleCache keeps staff roles in Redis. A nil client or zero TTL turns it
// into a no-op so lookups fall through to the database.
type RoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoleCache wraps an existing client.
func NewRoleCache(client *redis.Client, ttl time.Duration) *RoleCache {
	return &RoleCache{client: client, ttl: ttl}
}

type cachedRole struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func (c *RoleCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Get returns the cached role, or nil on a miss.
func (c *RoleCache) Get(ctx context.Context, roleID string) (*domain.StaffRole, error) {
	if !c.enabled() {
		return nil, nil
	}
	data, err := c.client.Get(ctx, roleKeyPrefix+roleID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cr cachedRole
	if err := json.Unmarshal(data, &cr); err != nil {
		return nil, err
	}
	return &domain.StaffRole{ID: cr.ID, Name: cr.Name, Permissions: cr.Permissions}, nil
}

// Set stores role for the configured TTL.
func (c *RoleCache) Set(ctx context.Context, role *domain.StaffRole) error {
	if !c.enabled() || role == nil {
		return nil
	}
	data, err := json.Marshal(cachedRole{ID: role.ID, Name: role.Name, Permissions: role.Permissions})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, roleKeyPrefix+role.ID, data, c.ttl).Err()
}
