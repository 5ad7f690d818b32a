package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-booking/internal/api/dto"
	"github.com/spec-kit/astro-booking/internal/auth"
	"github.com/spec-kit/astro-booking/internal/domain"
	"github.com/spec-kit/astro-booking/internal/service"
	apperrors "github.com/spec-kit/astro-booking/pkg/util"
)

// AdminCreationTokenHeader carries the signup token.
const AdminCreationTokenHeader = "X-Admin-Creation-Token"

// AdminOperations is implemented by service.AdminService.
type AdminOperations interface {
	Signup(ctx context.Context, in service.SignupInput) (*service.CreatedStaff, error)
	CreateUser(ctx context.Context, in service.CreateUserInput) (*service.CreatedStaff, error)
	Roles(ctx context.Context) ([]domain.StaffRole, error)
}

// AdminHandler exposes the admin account endpoints.
type AdminHandler struct {
	admin AdminOperations
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin AdminOperations) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Signup handles POST /api/admin/signup.
func (h *AdminHandler) Signup(c *fiber.Ctx) error {
	var req dto.AdminSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	created, err := h.admin.Signup(c.UserContext(), service.SignupInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      req.Password,
		RoleName:      req.RoleName,
		CreationToken: c.Get(AdminCreationTokenHeader),
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.AdminCreatedResponse{
		Success: true,
		Message: "Admin account created",
		User:    staffResponse(created),
	})
}

// CreateUser handles POST /api/admin/create-user.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.AdminCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	// A malformed Authorization header is ignored; admin_token may still pass.
	bearer, _ := auth.BearerToken(c.Get(fiber.HeaderAuthorization))

	created, err := h.admin.CreateUser(c.UserContext(), service.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		RoleID:      req.RoleID,
		AvatarURL:   req.AvatarURL,
		IsActive:    req.IsActive,
		AdminToken:  req.AdminToken,
		BearerToken: bearer,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.AdminCreatedResponse{
		Success: true,
		Message: "User created successfully",
		User:    staffResponse(created),
	})
}

// Session handles GET /api/admin/session.
func (h *AdminHandler) Session(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	resp := dto.SessionResponse{
		User:        staffResponse(&service.CreatedStaff{Staff: principal.Staff, Role: principal.Role}),
		Permissions: []string{},
		IsAdmin:     principal.IsAdmin(),
		ExpiresAt:   principal.Session.ExpiresAt,
	}
	if principal.Role != nil {
		resp.Role = principal.Role.Name
		if principal.Role.Permissions != nil {
			resp.Permissions = principal.Role.Permissions
		}
	}
	return c.JSON(resp)
}

// Roles handles GET /api/admin/roles.
func (h *AdminHandler) Roles(c *fiber.Ctx) error {
	roles, err := h.admin.Roles(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, role := range roles {
		perms := role.Permissions
		if perms == nil {
			perms = []string{}
		}
		out = append(out, dto.RoleResponse{ID: role.ID, Name: role.Name, Permissions: perms})
	}
	return c.JSON(fiber.Map{"data": out})
}

func staffResponse(created *service.CreatedStaff) dto.StaffResponse {
	staff := created.Staff
	resp := dto.StaffResponse{
		ID:        staff.ID,
		Email:     staff.Email,
		FirstName: staff.FirstName,
		LastName:  staff.LastName,
		Phone:     staff.Phone,
		RoleID:    staff.RoleID,
		AvatarURL: staff.AvatarURL,
		IsActive:  staff.Active,
		CreatedAt: staff.CreatedAt,
	}
	if created.Role != nil {
		resp.RoleName = created.Role.Name
	}
	return resp
}
