package service

import (
	"context"
	"sync"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/astro-booking/internal/auth"
	"github.com/spec-kit/astro-booking/internal/backend"
	"github.com/spec-kit/astro-booking/internal/domain"
	"github.com/spec-kit/astro-booking/internal/events"
)

type mockIdentities struct {
	mock.Mock
}

func (m *mockIdentities) CreateUser(ctx context.Context, params backend.CreateIdentityParams) (*domain.AuthIdentity, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthIdentity), args.Error(1)
}

func (m *mockIdentities) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockStaffRepo struct {
	mock.Mock
}

func (m *mockStaffRepo) Create(ctx context.Context, staff *domain.StaffMember) error {
	return m.Called(ctx, staff).Error(0)
}

func (m *mockStaffRepo) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffMember), args.Error(1)
}

func (m *mockStaffRepo) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffMember), args.Error(1)
}

func (m *mockStaffRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockRoleRepo struct {
	mock.Mock
}

func (m *mockRoleRepo) GetByID(ctx context.Context, id string) (*domain.StaffRole, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffRole), args.Error(1)
}

func (m *mockRoleRepo) GetByName(ctx context.Context, name string) (*domain.StaffRole, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffRole), args.Error(1)
}

func (m *mockRoleRepo) List(ctx context.Context) ([]domain.StaffRole, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffRole), args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

// eventRecorder captures published events of every type.
type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) Publish(_ context.Context, event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) Subscribe(events.EventType, events.EventHandler) {}

func (r *eventRecorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func signSession(t *testing.T, secret, subject string) string {
	t.Helper()
	claims := auth.SessionClaims{
		Email: "staff@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
