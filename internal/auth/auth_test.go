package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/astro-booking/internal/domain"
	"github.com/spec-kit/astro-booking/internal/repository"
	apperrors "github.com/spec-kit/astro-booking/pkg/util"
)

const secret = "test-secret"

func sign(t *testing.T, key string, claims SessionClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func userClaims(sub string, exp time.Time) SessionClaims {
	return SessionClaims{
		Email: "a@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func TestSessionVerifier(t *testing.T) {
	v := NewSessionVerifier(secret)

	session, err := v.Verify(sign(t, secret, userClaims("user-1", time.Now().Add(time.Hour))))
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.Subject)
	assert.Equal(t, "a@example.com", session.Email)

	_, err = v.Verify(sign(t, "other-secret", userClaims("user-1", time.Now().Add(time.Hour))))
	assert.Error(t, err)

	_, err = v.Verify(sign(t, secret, userClaims("user-1", time.Now().Add(-time.Hour))))
	assert.Error(t, err)

	service := userClaims("user-1", time.Now().Add(time.Hour))
	service.Role = "service_role"
	_, err = v.Verify(sign(t, secret, service))
	assert.Error(t, err)

	_, err = v.Verify(sign(t, secret, userClaims("", time.Now().Add(time.Hour))))
	assert.Error(t, err)
}

func TestSessionVerifierDisabled(t *testing.T) {
	_, err := NewSessionVerifier("").Verify("anything")
	assert.ErrorIs(t, err, ErrVerifierDisabled)
}

func TestStaticToken(t *testing.T) {
	plain := NewStaticToken(" s3cret ")
	assert.True(t, plain.Configured())
	assert.True(t, plain.Matches("s3cret"))
	assert.False(t, plain.Matches("s3cre"))
	assert.False(t, plain.Matches(""))

	hash, err := HashToken("s3cret", 4)
	require.NoError(t, err)
	hashed := NewStaticToken(hash)
	assert.True(t, hashed.Matches("s3cret"))
	assert.False(t, hashed.Matches(hash))

	assert.False(t, NewStaticToken("").Matches("s3cret"))
}

func TestBearerToken(t *testing.T) {
	tok, err := BearerToken("bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "Basic abc", "Bearer ", "abc"} {
		_, err := BearerToken(h)
		assert.True(t, apperrors.HasCode(err, "UNAUTHORIZED"), h)
	}
}

// fakeStaff and fakeRoles are map-backed repositories.
type fakeStaff map[string]*domain.StaffMember

func (f fakeStaff) Create(context.Context, *domain.StaffMember) error { return errors.New("unused") }
func (f fakeStaff) GetByEmail(context.Context, string) (*domain.StaffMember, error) {
	return nil, repository.ErrNotFound
}
func (f fakeStaff) Count(context.Context) (int64, error) { return int64(len(f)), nil }
func (f fakeStaff) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, repository.ErrNotFound
}

type fakeRoles struct {
	roles map[string]*domain.StaffRole
	reads int
}

func (f *fakeRoles) GetByID(_ context.Context, id string) (*domain.StaffRole, error) {
	f.reads++
	if r, ok := f.roles[id]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}
func (f *fakeRoles) GetByName(context.Context, string) (*domain.StaffRole, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeRoles) List(context.Context) ([]domain.StaffRole, error) { return nil, nil }

type memoryCache map[string]*domain.StaffRole

func (m memoryCache) Get(_ context.Context, id string) (*domain.StaffRole, error) { return m[id], nil }
func (m memoryCache) Set(_ context.Context, r *domain.StaffRole) error {
	m[r.ID] = r
	return nil
}

func newFixture() (fakeStaff, *fakeRoles) {
	staff := fakeStaff{
		"admin":    {ID: "admin", RoleID: "r-admin", Active: true},
		"editor":   {ID: "editor", RoleID: "r-editor", Active: true},
		"inactive": {ID: "inactive", RoleID: "r-admin", Active: false},
		"orphan":   {ID: "orphan", RoleID: "r-missing", Active: true},
	}
	roles := &fakeRoles{roles: map[string]*domain.StaffRole{
		"r-admin":  {ID: "r-admin", Name: "admin", Permissions: []string{"manage_staff", "view_bookings"}},
		"r-editor": {ID: "r-editor", Name: "editor", Permissions: []string{"edit_content"}},
	}}
	return staff, roles
}

func TestHasAdminAccess(t *testing.T) {
	staff, roles := newFixture()
	checker := NewPermissionChecker(staff, roles, nil, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		userID string
		want   bool
		err    bool
	}{
		{"admin", true, false},
		{"editor", false, false},
		{"inactive", false, false},
		{"nobody", false, false},
		{"", false, false},
		{"orphan", false, false},
	}
	for _, tt := range tests {
		got, err := checker.HasAdminAccess(ctx, tt.userID)
		if tt.err {
			assert.Error(t, err, tt.userID)
			continue
		}
		require.NoError(t, err, tt.userID)
		assert.Equal(t, tt.want, got, tt.userID)
	}
}

func TestHasAdminAccessUsesCache(t *testing.T) {
	staff, roles := newFixture()
	checker := NewPermissionChecker(staff, roles, memoryCache{}, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := checker.HasAdminAccess(ctx, "admin")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, 1, roles.reads)
}

func TestSessionMiddleware(t *testing.T) {
	staff, roles := newFixture()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	mw := NewSessionMiddleware(NewSessionVerifier(secret), NewPermissionChecker(staff, roles, nil, zap.NewNop()))
	app.Get("/me", mw.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(p.Staff.ID)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"admin", "Bearer " + sign(t, secret, userClaims("admin", time.Now().Add(time.Hour))), http.StatusOK},
		{"no header", "", http.StatusUnauthorized},
		{"bad token", "Bearer junk", http.StatusUnauthorized},
		{"not staff", "Bearer " + sign(t, secret, userClaims("stranger", time.Now().Add(time.Hour))), http.StatusForbidden},
		{"inactive", "Bearer " + sign(t, secret, userClaims("inactive", time.Now().Add(time.Hour))), http.StatusForbidden},
		{"editor", "Bearer " + sign(t, secret, userClaims("editor", time.Now().Add(time.Hour))), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
