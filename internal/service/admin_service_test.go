package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/astro-booking/internal/auth"
	"github.com/spec-kit/astro-booking/internal/backend"
	"github.com/spec-kit/astro-booking/internal/config"
	"github.com/spec-kit/astro-booking/internal/domain"
	"github.com/spec-kit/astro-booking/internal/events"
	"github.com/spec-kit/astro-booking/internal/repository"
	apperrors "github.com/spec-kit/astro-booking/pkg/util"
)

const (
	testToken     = "creation-token"
	testJWTSecret = "jwt-secret"
	adminRoleID   = "6a1f1d8e-2c3b-4a5d-9e8f-0123456789ab"
	readerRoleID  = "7b2e2e9f-3d4c-4b6e-8f90-123456789abc"
	identityID    = "c0ffee00-0000-4000-8000-000000000001"
)

type adminFixture struct {
	identities *mockIdentities
	staff      *mockStaffRepo
	roles      *mockRoleRepo
	recorder   *eventRecorder
	svc        *AdminService
}

func newAdminFixture(t *testing.T, token string) *adminFixture {
	t.Helper()
	f := &adminFixture{
		identities: &mockIdentities{},
		staff:      &mockStaffRepo{},
		roles:      &mockRoleRepo{},
		recorder:   &eventRecorder{},
	}
	f.svc = NewAdminService(config.AdminConfig{
		CreationToken:     token,
		DefaultRole:       "admin",
		PasswordMinLength: 8,
	}, AdminDependencies{
		Identities:  f.identities,
		StaffRepo:   f.staff,
		RoleRepo:    f.roles,
		Permissions: auth.NewPermissionChecker(f.staff, f.roles, nil, zap.NewNop()),
		Sessions:    auth.NewSessionVerifier(testJWTSecret),
		Dispatcher:  f.recorder,
		Logger:      zap.NewNop(),
	})
	return f
}

func adminRole() *domain.StaffRole {
	return &domain.StaffRole{ID: adminRoleID, Name: "admin", Permissions: []string{"all"}}
}

func validSignup() SignupInput {
	return SignupInput{
		FirstName:     "Asha",
		LastName:      "Rao",
		Email:         "Asha@Example.com ",
		Password:      "correct-horse",
		CreationToken: testToken,
	}
}

func statusOf(t *testing.T, err error) (int, string) {
	t.Helper()
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	return de.HTTPStatus, de.Code
}

func TestSignupCreatesIdentityAndStaff(t *testing.T) {
	f := newAdminFixture(t, testToken)
	f.roles.On("GetByName", mock.Anything, "admin").Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, "asha@example.com").Return(nil, repository.ErrNotFound)
	f.identities.On("CreateUser", mock.Anything, mock.MatchedBy(func(p backend.CreateIdentityParams) bool {
		return p.Email == "asha@example.com" && p.Password == "correct-horse"
	})).Return(&domain.AuthIdentity{ID: identityID, Email: "asha@example.com"}, nil)
	f.staff.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.StaffMember) bool {
		return s.ID == identityID && s.RoleID == adminRoleID && s.Active
	})).Return(nil)

	created, err := f.svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	assert.Equal(t, identityID, created.Staff.ID)
	assert.Equal(t, "asha@example.com", created.Staff.Email)
	assert.Equal(t, "admin", created.Role.Name)
	assert.Equal(t, []events.EventType{events.EventStaffCreated}, f.recorder.types())
	f.identities.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestSignupDuplicateStaffEmailIsConflict(t *testing.T) {
	f := newAdminFixture(t, testToken)
	f.roles.On("GetByName", mock.Anything, "admin").Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, "asha@example.com").Return(&domain.StaffMember{ID: "existing"}, nil)

	_, err := f.svc.Signup(context.Background(), validSignup())

	status, code := statusOf(t, err)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", code)
	f.identities.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestSignupDuplicateIdentityIsConflict(t *testing.T) {
	f := newAdminFixture(t, testToken)
	f.roles.On("GetByName", mock.Anything, "admin").Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	f.identities.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, &backend.APIError{Status: http.StatusUnprocessableEntity, Code: "email_exists", Message: "already registered"})

	_, err := f.svc.Signup(context.Background(), validSignup())

	status, _ := statusOf(t, err)
	assert.Equal(t, http.StatusConflict, status)
}

func TestSignupRejectsWrongToken(t *testing.T) {
	f := newAdminFixture(t, testToken)
	in := validSignup()
	in.CreationToken = "guess"

	_, err := f.svc.Signup(context.Background(), in)

	status, code := statusOf(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", code)
	f.identities.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestSignupAcceptsBcryptHashedToken(t *testing.T) {
	hash, err := auth.HashToken(testToken, 4)
	require.NoError(t, err)

	f := newAdminFixture(t, hash)
	f.roles.On("GetByName", mock.Anything, "admin").Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	f.identities.On("CreateUser", mock.Anything, mock.Anything).Return(&domain.AuthIdentity{ID: identityID}, nil)
	f.staff.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err = f.svc.Signup(context.Background(), validSignup())
	assert.NoError(t, err)
}

func TestSignupWithoutConfiguredTokenOnlyBootstraps(t *testing.T) {
	f := newAdminFixture(t, "")
	f.staff.On("Count", mock.Anything).Return(int64(2), nil).Once()

	in := validSignup()
	in.CreationToken = ""
	_, err := f.svc.Signup(context.Background(), in)
	status, _ := statusOf(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)

	f.staff.On("Count", mock.Anything).Return(int64(0), nil).Once()
	f.roles.On("GetByName", mock.Anything, "admin").Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	f.identities.On("CreateUser", mock.Anything, mock.Anything).Return(&domain.AuthIdentity{ID: identityID}, nil)
	f.staff.On("Create", mock.Anything, mock.Anything).Return(nil)

	created, err := f.svc.Signup(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, identityID, created.Staff.ID)
}

func TestSignupUnknownRole(t *testing.T) {
	f := newAdminFixture(t, testToken)
	f.roles.On("GetByName", mock.Anything, "oracle").Return(nil, repository.ErrNotFound)

	in := validSignup()
	in.RoleName = "oracle"
	_, err := f.svc.Signup(context.Background(), in)

	status, code := statusOf(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", code)
}

func TestSignupShortOrMissingPassword(t *testing.T) {
	f := newAdminFixture(t, testToken)
	for _, pw := range []string{"", "short"} {
		in := validSignup()
		in.Password = pw
		_, err := f.svc.Signup(context.Background(), in)
		status, _ := statusOf(t, err)
		assert.Equal(t, http.StatusBadRequest, status, "password %q", pw)
	}
}

func TestSignupInsertFailureRollsBackIdentity(t *testing.T) {
	f := newAdminFixture(t, testToken)
	f.roles.On("GetByName", mock.Anything, "admin").Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	f.identities.On("CreateUser", mock.Anything, mock.Anything).Return(&domain.AuthIdentity{ID: identityID}, nil)
	f.staff.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	f.identities.On("DeleteUser", mock.Anything, identityID).Return(nil)

	_, err := f.svc.Signup(context.Background(), validSignup())

	de := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Equal(t, "UPSTREAM_FAILED", de.Code)
	assert.Equal(t, "completed", de.Details["rollback"])
	f.identities.AssertCalled(t, "DeleteUser", mock.Anything, identityID)
	assert.Equal(t, []events.EventType{events.EventStaffRollback}, f.recorder.types())
}

func TestSignupRollbackFailureIsReported(t *testing.T) {
	f := newAdminFixture(t, testToken)
	f.roles.On("GetByName", mock.Anything, "admin").Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	f.identities.On("CreateUser", mock.Anything, mock.Anything).Return(&domain.AuthIdentity{ID: identityID}, nil)
	f.staff.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	f.identities.On("DeleteUser", mock.Anything, identityID).Return(errors.New("backend down"))

	_, err := f.svc.Signup(context.Background(), validSignup())

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "failed", de.Details["rollback"])
	assert.Equal(t, identityID, de.Details["identity_id"])
}

func TestSignupRollbackRunsAfterContextCancel(t *testing.T) {
	f := newAdminFixture(t, testToken)
	ctx, cancel := context.WithCancel(context.Background())
	f.roles.On("GetByName", mock.Anything, "admin").Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	f.identities.On("CreateUser", mock.Anything, mock.Anything).Return(&domain.AuthIdentity{ID: identityID}, nil)
	f.staff.On("Create", mock.Anything, mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(context.Canceled)
	f.identities.On("DeleteUser", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), identityID).Return(nil)

	_, err := f.svc.Signup(ctx, validSignup())
	require.Error(t, err)
	f.identities.AssertCalled(t, "DeleteUser", mock.Anything, identityID)
}

func TestSignupMisconfiguredBackend(t *testing.T) {
	svc := NewAdminService(config.AdminConfig{CreationToken: testToken}, AdminDependencies{})

	_, err := svc.Signup(context.Background(), validSignup())

	status, code := statusOf(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "SERVER_MISCONFIGURED", code)
}

func validCreateUser() CreateUserInput {
	active := false
	phone := " +91 90000 00000 "
	return CreateUserInput{
		Email:      "ravi@example.com",
		Password:   "another-secret",
		FirstName:  "Ravi",
		LastName:   "Kumar",
		Phone:      &phone,
		RoleID:     adminRoleID,
		IsActive:   &active,
		AdminToken: testToken,
	}
}

func TestCreateUserWithAdminToken(t *testing.T) {
	f := newAdminFixture(t, testToken)
	f.roles.On("GetByID", mock.Anything, adminRoleID).Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, "ravi@example.com").Return(nil, repository.ErrNotFound)
	f.identities.On("CreateUser", mock.Anything, mock.Anything).Return(&domain.AuthIdentity{ID: identityID}, nil)
	f.staff.On("Create", mock.Anything, mock.Anything).Return(nil)

	created, err := f.svc.CreateUser(context.Background(), validCreateUser())
	require.NoError(t, err)

	assert.False(t, created.Staff.Active)
	require.NotNil(t, created.Staff.Phone)
	assert.Equal(t, "+91 90000 00000", *created.Staff.Phone)
	assert.Nil(t, created.Staff.AvatarURL)
	require.Len(t, f.recorder.events, 1)
	assert.Equal(t, "admin_token", f.recorder.events[0].Actor.Method)
}

func TestCreateUserRejectsNonUUIDRole(t *testing.T) {
	f := newAdminFixture(t, testToken)
	in := validCreateUser()
	in.RoleID = "admin"

	_, err := f.svc.CreateUser(context.Background(), in)

	status, _ := statusOf(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	f.roles.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCreateUserRejectsBadToken(t *testing.T) {
	f := newAdminFixture(t, testToken)
	in := validCreateUser()
	in.AdminToken = "nope"

	_, err := f.svc.CreateUser(context.Background(), in)

	status, _ := statusOf(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCreateUserWithAdminSession(t *testing.T) {
	f := newAdminFixture(t, testToken)
	callerID := "aaaaaaaa-0000-4000-8000-000000000002"
	f.staff.On("GetByID", mock.Anything, callerID).Return(&domain.StaffMember{ID: callerID, RoleID: adminRoleID, Active: true}, nil)
	f.roles.On("GetByID", mock.Anything, adminRoleID).Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	f.identities.On("CreateUser", mock.Anything, mock.Anything).Return(&domain.AuthIdentity{ID: identityID}, nil)
	f.staff.On("Create", mock.Anything, mock.Anything).Return(nil)

	in := validCreateUser()
	in.AdminToken = ""
	in.BearerToken = signSession(t, testJWTSecret, callerID)

	_, err := f.svc.CreateUser(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, f.recorder.events, 1)
	actor := f.recorder.events[0].Actor
	assert.Equal(t, "session", actor.Method)
	require.NotNil(t, actor.StaffID)
	assert.Equal(t, callerID, *actor.StaffID)
}

func TestCreateUserSessionWithoutPermission(t *testing.T) {
	f := newAdminFixture(t, testToken)
	callerID := "bbbbbbbb-0000-4000-8000-000000000003"
	f.staff.On("GetByID", mock.Anything, callerID).Return(&domain.StaffMember{ID: callerID, RoleID: readerRoleID, Active: true}, nil)
	f.roles.On("GetByID", mock.Anything, readerRoleID).Return(&domain.StaffRole{ID: readerRoleID, Permissions: []string{"view_bookings"}}, nil)

	in := validCreateUser()
	in.AdminToken = ""
	in.BearerToken = signSession(t, testJWTSecret, callerID)

	_, err := f.svc.CreateUser(context.Background(), in)

	status, _ := statusOf(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	f.identities.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestCreateUserDuplicateIsBadRequest(t *testing.T) {
	f := newAdminFixture(t, testToken)
	f.roles.On("GetByID", mock.Anything, adminRoleID).Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, "ravi@example.com").Return(&domain.StaffMember{ID: "x"}, nil)

	_, err := f.svc.CreateUser(context.Background(), validCreateUser())

	status, code := statusOf(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "DUPLICATE_ACCOUNT", code)
}

func TestCreateUserUniqueRaceRollsBack(t *testing.T) {
	f := newAdminFixture(t, testToken)
	f.roles.On("GetByID", mock.Anything, adminRoleID).Return(adminRole(), nil)
	f.staff.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	f.identities.On("CreateUser", mock.Anything, mock.Anything).Return(&domain.AuthIdentity{ID: identityID}, nil)
	f.staff.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
	f.identities.On("DeleteUser", mock.Anything, identityID).Return(nil)

	_, err := f.svc.CreateUser(context.Background(), validCreateUser())

	_, code := statusOf(t, err)
	assert.Equal(t, "DUPLICATE_ACCOUNT", code)
	f.identities.AssertCalled(t, "DeleteUser", mock.Anything, identityID)
}

func TestRolesListsFromRepository(t *testing.T) {
	roles := &mockRoleRepo{}
	roles.On("List", mock.Anything).Return([]domain.StaffRole{{ID: adminRoleID, Name: "admin"}}, nil).Once()

	svc := NewAdminService(config.AdminConfig{}, AdminDependencies{RoleRepo: roles})
	got, err := svc.Roles(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "admin", got[0].Name)

	roles.On("List", mock.Anything).Return(nil, repository.ErrUnavailable).Once()
	_, err = svc.Roles(context.Background())
	assert.True(t, apperrors.HasCode(err, "SERVER_MISCONFIGURED"))
}
