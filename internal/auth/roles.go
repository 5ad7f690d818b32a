package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/astro-booking/internal/domain"
	"github.com/spec-kit/astro-booking/internal/repository"
)

// AdminPermissions is the fixed allow-list granting staff management.
var AdminPermissions = []string{"all", "admin", "manage_staff", "manage_users"}

// RoleCache stores roles between lookups. Get returns nil on a miss.
type RoleCache interface {
	Get(ctx context.Context, roleID string) (*domain.StaffRole, error)
	Set(ctx context.Context, role *domain.StaffRole) error
}

// PermissionChecker resolves whether a user may administer staff.
type PermissionChecker struct {
	staff  repository.StaffRepository
	roles  repository.RoleRepository
	cache  RoleCache
	logger *zap.Logger
}

// NewPermissionChecker constructs a checker. cache may be nil.
func NewPermissionChecker(staff repository.StaffRepository, roles repository.RoleRepository, cache RoleCache, logger *zap.Logger) *PermissionChecker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermissionChecker{staff: staff, roles: roles, cache: cache, logger: logger}
}

// HasAdminAccess fetches the staff record for userID and its role, and
// reports whether the role grants any permission in AdminPermissions.
// Unknown or inactive staff yield false without error.
func (p *PermissionChecker) HasAdminAccess(ctx context.Context, userID string) (bool, error) {
	staff, role, err := p.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !staff.Active {
		return false, nil
	}
	return role.HasAny(AdminPermissions...), nil
}

// Load returns the staff member and role behind userID.
func (p *PermissionChecker) Load(ctx context.Context, userID string) (*domain.StaffMember, *domain.StaffRole, error) {
	if userID == "" {
		return nil, nil, repository.ErrNotFound
	}
	staff, err := p.staff.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	role, err := p.role(ctx, staff.RoleID)
	if err != nil {
		return nil, nil, err
	}
	return staff, role, nil
}

func (p *PermissionChecker) role(ctx context.Context, roleID string) (*domain.StaffRole, error) {
	if roleID == "" {
		return nil, repository.ErrNotFound
	}
	if p.cache != nil {
		cached, err := p.cache.Get(ctx, roleID)
		if err != nil {
			p.logger.Warn("role cache read failed", zap.String("role_id", roleID), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	role, err := p.roles.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if p.cache != nil {
		if err := p.cache.Set(ctx, role); err != nil {
			p.logger.Warn("role cache write failed", zap.String("role_id", roleID), zap.Error(err))
		}
	}
	return role, nil
}
