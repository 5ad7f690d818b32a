package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/astro-booking/internal/domain"
)

// RoleRepository reads the backend's staff_roles table.
type RoleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.StaffRole, error)
	GetByName(ctx context.Context, name string) (*domain.StaffRole, error)
	List(ctx context.Context) ([]domain.StaffRole, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) GetByID(ctx context.Context, id string) (*domain.StaffRole, error) {
	if r.pool == nil {
		return nil, ErrUnavailable
	}
	const query = `SELECT id, name, permissions, created_at FROM staff_roles WHERE id=$1`
	return scanRole(r.pool.QueryRow(ctx, query, id))
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.StaffRole, error) {
	if r.pool == nil {
		return nil, ErrUnavailable
	}
	const query = `SELECT id, name, permissions, created_at FROM staff_roles WHERE lower(name)=lower($1)`
	return scanRole(r.pool.QueryRow(ctx, query, name))
}

func (r *roleRepository) List(ctx context.Context) ([]domain.StaffRole, error) {
	if r.pool == nil {
		return nil, ErrUnavailable
	}
	rows, err := r.pool.Query(ctx, `SELECT id, name, permissions, created_at FROM staff_roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffRole
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *role)
	}
	return result, rows.Err()
}

func scanRole(row pgx.Row) (*domain.StaffRole, error) {
	var role domain.StaffRole
	if err := row.Scan(&role.ID, &role.Name, &role.Permissions, &role.CreatedAt); err != nil {
		return nil, translate(err)
	}
	if role.Permissions == nil {
		role.Permissions = []string{}
	}
	return &role, nil
}
