package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-booking/internal/domain"
	"github.com/spec-kit/astro-booking/internal/repository"
	apperrors "github.com/spec-kit/astro-booking/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the signed-in admin.
type Principal struct {
	Session *domain.Session
	Staff   *domain.StaffMember
	Role    *domain.StaffRole
}

// IsAdmin reports whether the principal may manage staff accounts.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Staff != nil && p.Staff.Active && p.Role.HasAny(AdminPermissions...)
}

// SessionMiddleware validates backend bearer tokens and loads the staff principal.
type SessionMiddleware struct {
	verifier    *SessionVerifier
	permissions *PermissionChecker
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(verifier *SessionVerifier, permissions *PermissionChecker) *SessionMiddleware {
	return &SessionMiddleware{verifier: verifier, permissions: permissions}
}

// Handle enforces authentication for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	token, err := BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	session, err := m.verifier.Verify(token)
	if err != nil {
		if errors.Is(err, ErrVerifierDisabled) {
			return apperrors.NewMisconfigured("BACKEND_JWT_SECRET")
		}
		return apperrors.NewUnauthorized("invalid token")
	}

	staff, role, err := m.permissions.Load(c.UserContext(), session.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewForbidden("not a staff member")
		}
		if errors.Is(err, repository.ErrUnavailable) {
			return apperrors.NewMisconfigured("POSTGRES_DSN")
		}
		return apperrors.MapError(err)
	}
	if !staff.Active {
		return apperrors.NewForbidden("staff account inactive")
	}

	c.Locals(principalKey, &Principal{Session: session, Staff: staff, Role: role})
	return c.Next()
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// PrincipalFromContext retrieves the authenticated staff member.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireAdmin ensures the principal's role is on the admin allow-list.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.IsAdmin() {
			return apperrors.NewForbidden("insufficient permissions")
		}
		return c.Next()
	}
}
