package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/astro-booking/internal/domain"
)

// StaffRepository reads and writes rows in the backend's staff_members table.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error)
	Count(ctx context.Context) (int64, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, first_name, last_name, email, phone, role_id, avatar_url, is_active, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	if r.pool == nil {
		return ErrUnavailable
	}
	const query = `
        INSERT INTO staff_members (id, first_name, last_name, email, phone, role_id, avatar_url, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		staff.ID,
		staff.FirstName,
		staff.LastName,
		staff.Email,
		staff.Phone,
		staff.RoleID,
		staff.AvatarURL,
		staff.Active,
	).Scan(&staff.CreatedAt, &staff.UpdatedAt)
	return translate(err)
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	if r.pool == nil {
		return nil, ErrUnavailable
	}
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE id=$1`
	return scanStaff(r.pool.QueryRow(ctx, query, id))
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	if r.pool == nil {
		return nil, ErrUnavailable
	}
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE lower(email)=lower($1)`
	return scanStaff(r.pool.QueryRow(ctx, query, email))
}

func (r *staffRepository) Count(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, ErrUnavailable
	}
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM staff_members`).Scan(&n); err != nil {
		return 0, translate(err)
	}
	return n, nil
}

func scanStaff(row pgx.Row) (*domain.StaffMember, error) {
	var staff domain.StaffMember
	if err := row.Scan(
		&staff.ID,
		&staff.FirstName,
		&staff.LastName,
		&staff.Email,
		&staff.Phone,
		&staff.RoleID,
		&staff.AvatarURL,
		&staff.Active,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &staff, nil
}
