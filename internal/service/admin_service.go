package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/astro-booking/internal/auth"
	"github.com/spec-kit/astro-booking/internal/backend"
	"github.com/spec-kit/astro-booking/internal/config"
	"github.com/spec-kit/astro-booking/internal/domain"
	"github.com/spec-kit/astro-booking/internal/events"
	"github.com/spec-kit/astro-booking/internal/repository"
	apperrors "github.com/spec-kit/astro-booking/pkg/util"
)

const rollbackTimeout = 10 * time.Second

// AdminService creates staff accounts: an auth identity on the backend plus
// the matching staff_members row.
type AdminService struct {
	identities  backend.IdentityAdmin
	staff       repository.StaffRepository
	roles       repository.RoleRepository
	permissions *auth.PermissionChecker
	sessions    *auth.SessionVerifier
	token       auth.StaticToken
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	defaultRole string
	minPassword int
}

// AdminDependencies encapsulates collaborators for the admin service.
// Identities is nil when the backend client could not be configured.
type AdminDependencies struct {
	Identities  backend.IdentityAdmin
	StaffRepo   repository.StaffRepository
	RoleRepo    repository.RoleRepository
	Permissions *auth.PermissionChecker
	Sessions    *auth.SessionVerifier
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAdminService builds the service.
func NewAdminService(cfg config.AdminConfig, deps AdminDependencies) *AdminService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	defaultRole := strings.TrimSpace(cfg.DefaultRole)
	if defaultRole == "" {
		defaultRole = "admin"
	}
	return &AdminService{
		identities:  deps.Identities,
		staff:       deps.StaffRepo,
		roles:       deps.RoleRepo,
		permissions: deps.Permissions,
		sessions:    deps.Sessions,
		token:       auth.NewStaticToken(cfg.CreationToken),
		dispatcher:  deps.Dispatcher,
		logger:      logger.With(zap.String("component", "admin_service")),
		defaultRole: defaultRole,
		minPassword: cfg.PasswordMinLength,
	}
}

// SignupInput is a self-service admin signup.
type SignupInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	RoleName      string
	CreationToken string
}

// CreateUserInput is an admin-to-admin account creation.
type CreateUserInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       *string
	RoleID      string
	AvatarURL   *string
	IsActive    *bool
	AdminToken  string
	BearerToken string
}

// CreatedStaff is the result of a successful account creation.
type CreatedStaff struct {
	Staff *domain.StaffMember
	Role  *domain.StaffRole
}

// Signup handles POST /api/admin/signup semantics.
func (s *AdminService) Signup(ctx context.Context, in SignupInput) (*CreatedStaff, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	if err := s.checkPassword(in.Password); err != nil {
		return nil, err
	}

	if err := s.authorizeSignup(ctx, in.CreationToken); err != nil {
		return nil, err
	}

	roleName := strings.TrimSpace(in.RoleName)
	if roleName == "" {
		roleName = s.defaultRole
	}
	role, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role_name": roleName})
		}
		return nil, s.storeError(err)
	}

	email := normalizeEmail(in.Email)
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	staff := &domain.StaffMember{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		RoleID:    role.ID,
		Active:    true,
	}
	actor := events.Actor{Method: "creation_token"}
	if !s.token.Configured() {
		actor.Method = "bootstrap"
	}
	if err := s.provision(ctx, staff, in.Password, actor, "signup"); err != nil {
		if errors.Is(err, errDuplicateIdentity) {
			return nil, apperrors.NewConflict("an account with this email already exists", map[string]any{"email": email})
		}
		return nil, err
	}
	return &CreatedStaff{Staff: staff, Role: role}, nil
}

// CreateUser handles POST /api/admin/create-user semantics.
func (s *AdminService) CreateUser(ctx context.Context, in CreateUserInput) (*CreatedStaff, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	roleID := strings.TrimSpace(in.RoleID)
	if _, err := uuid.Parse(roleID); err != nil {
		return nil, apperrors.NewValidationError("role_id must be a UUID", map[string]any{"role_id": in.RoleID})
	}
	if err := s.checkPassword(in.Password); err != nil {
		return nil, err
	}

	actor, err := s.authorizeCreate(ctx, in.AdminToken, in.BearerToken)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role_id": roleID})
		}
		return nil, s.storeError(err)
	}

	email := normalizeEmail(in.Email)
	if err := s.ensureEmailFree(ctx, email); err != nil {
		if apperrors.HasCode(err, "CONFLICT") {
			return nil, duplicateAccount(email)
		}
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	staff := &domain.StaffMember{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		Phone:     trimmedOrNil(in.Phone),
		RoleID:    role.ID,
		AvatarURL: trimmedOrNil(in.AvatarURL),
		Active:    active,
	}
	if err := s.provision(ctx, staff, in.Password, actor, "create-user"); err != nil {
		if errors.Is(err, errDuplicateIdentity) {
			return nil, duplicateAccount(email)
		}
		return nil, err
	}
	return &CreatedStaff{Staff: staff, Role: role}, nil
}

// Roles lists the assignable staff roles.
func (s *AdminService) Roles(ctx context.Context) ([]domain.StaffRole, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, s.storeError(err)
	}
	return roles, nil
}

var errDuplicateIdentity = errors.New("identity already exists")

// provision creates the auth identity, then the staff row. If the row
// cannot be written the identity is deleted again so that neither exists
// without the other. The two steps are not atomic.
func (s *AdminService) provision(ctx context.Context, staff *domain.StaffMember, password string, actor events.Actor, route string) error {
	identity, err := s.identities.CreateUser(ctx, backend.CreateIdentityParams{
		Email:    staff.Email,
		Password: password,
		Metadata: map[string]any{
			"first_name": staff.FirstName,
			"last_name":  staff.LastName,
			"role_id":    staff.RoleID,
		},
	})
	if err != nil {
		if backend.IsDuplicate(err) {
			return errDuplicateIdentity
		}
		s.logger.Error("create auth identity failed", zap.String("email", staff.Email), zap.Error(err))
		return apperrors.NewUpstreamError("failed to create auth identity", err, nil)
	}

	staff.ID = identity.ID
	if insertErr := s.staff.Create(ctx, staff); insertErr != nil {
		return s.rollback(ctx, staff, insertErr, actor)
	}

	s.logger.Info("staff account created",
		zap.String("staff_id", staff.ID),
		zap.String("role_id", staff.RoleID),
		zap.String("route", route),
		zap.String("auth", actor.Method))
	s.publish(ctx, events.New(events.EventStaffCreated, staff.ID, actor, events.StaffCreatedPayload{
		Email:  staff.Email,
		RoleID: staff.RoleID,
		Route:  route,
	}))
	return nil
}

func (s *AdminService) rollback(ctx context.Context, staff *domain.StaffMember, insertErr error, actor events.Actor) error {
	// The request context may already be done; the cleanup still has to run.
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	deleteErr := s.identities.DeleteUser(cleanupCtx, staff.ID)
	payload := events.StaffRollbackPayload{
		Email:       staff.Email,
		InsertError: insertErr.Error(),
		RolledBack:  deleteErr == nil,
	}
	rollbackStatus := "completed"
	if deleteErr != nil {
		payload.DeleteError = deleteErr.Error()
		rollbackStatus = "failed"
		s.logger.Error("rollback of auth identity failed; identity left without staff record",
			zap.String("identity_id", staff.ID),
			zap.String("email", staff.Email),
			zap.NamedError("insert_error", insertErr),
			zap.NamedError("delete_error", deleteErr))
	} else {
		s.logger.Warn("staff insert failed; auth identity rolled back",
			zap.String("identity_id", staff.ID),
			zap.Error(insertErr))
	}
	s.publish(ctx, events.New(events.EventStaffRollback, staff.ID, actor, payload))

	failedID := staff.ID
	staff.ID = ""
	if errors.Is(insertErr, repository.ErrDuplicate) {
		return errDuplicateIdentity
	}
	if errors.Is(insertErr, repository.ErrUnavailable) {
		return apperrors.NewMisconfigured("POSTGRES_DSN")
	}
	return apperrors.NewUpstreamError("failed to create staff record", insertErr, map[string]any{
		"rollback":    rollbackStatus,
		"identity_id": failedID,
	})
}

func (s *AdminService) authorizeSignup(ctx context.Context, presented string) error {
	if s.token.Configured() {
		if !s.token.Matches(strings.TrimSpace(presented)) {
			return apperrors.NewUnauthorized("invalid admin creation token")
		}
		return nil
	}
	// Without a configured token only the very first account may sign up.
	n, err := s.staff.Count(ctx)
	if err != nil {
		return s.storeError(err)
	}
	if n > 0 {
		return apperrors.NewUnauthorized("admin creation token required")
	}
	return nil
}

func (s *AdminService) authorizeCreate(ctx context.Context, adminToken, bearer string) (events.Actor, error) {
	if adminToken != "" && s.token.Matches(strings.TrimSpace(adminToken)) {
		return events.Actor{Method: "admin_token"}, nil
	}
	if bearer == "" || s.sessions == nil || s.permissions == nil {
		return events.Actor{}, apperrors.NewUnauthorized("invalid admin token")
	}

	session, err := s.sessions.Verify(bearer)
	if err != nil {
		return events.Actor{}, apperrors.NewUnauthorized("invalid session")
	}
	ok, err := s.permissions.HasAdminAccess(ctx, session.Subject)
	if err != nil {
		return events.Actor{}, s.storeError(err)
	}
	if !ok {
		return events.Actor{}, apperrors.NewUnauthorized("insufficient permissions")
	}
	staffID := session.Subject
	return events.Actor{Method: "session", StaffID: &staffID}, nil
}

func (s *AdminService) ensureConfigured() error {
	if s.identities == nil {
		return apperrors.NewMisconfigured("BACKEND_URL/BACKEND_SERVICE_ROLE_KEY")
	}
	return nil
}

func (s *AdminService) checkPassword(password string) error {
	if password == "" {
		return apperrors.NewValidationError("password is required", map[string]any{"password": "required"})
	}
	if s.minPassword > 0 && len([]rune(password)) < s.minPassword {
		return apperrors.NewValidationError("password too short", map[string]any{"min_length": s.minPassword})
	}
	return nil
}

func (s *AdminService) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := s.staff.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return apperrors.NewConflict("an account with this email already exists", map[string]any{"email": email})
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return s.storeError(err)
	}
	return nil
}

func (s *AdminService) storeError(err error) error {
	if errors.Is(err, repository.ErrUnavailable) {
		return apperrors.NewMisconfigured("POSTGRES_DSN")
	}
	return apperrors.NewUpstreamError("backend query failed", err, nil)
}

func (s *AdminService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, event)
	}
}

func duplicateAccount(email string) error {
	return apperrors.NewDomainError("DUPLICATE_ACCOUNT", "an account with this email already exists", http.StatusBadRequest, map[string]any{"email": email})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
