package dto

import "time"

// AdminSignupRequest is the body of POST /api/admin/signup.
type AdminSignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	RoleName  string `json:"role_name"`
}

// AdminCreateUserRequest is the body of POST /api/admin/create-user.
type AdminCreateUserRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required"`
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Phone      *string `json:"phone"`
	RoleID     string  `json:"role_id" validate:"required,uuid"`
	AvatarURL  *string `json:"avatar_url" validate:"omitempty,url"`
	IsActive   *bool   `json:"is_active"`
	AdminToken string  `json:"admin_token"`
}

// StaffResponse never carries credentials.
type StaffResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone"`
	RoleID    string    `json:"role_id"`
	RoleName  string    `json:"role_name"`
	AvatarURL *string   `json:"avatar_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminCreatedResponse is returned by both account creation routes.
type AdminCreatedResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    StaffResponse `json:"user"`
}

// SessionResponse describes the signed-in admin.
type SessionResponse struct {
	User        StaffResponse `json:"user"`
	Role        string        `json:"role"`
	Permissions []string      `json:"permissions"`
	IsAdmin     bool          `json:"is_admin"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

// RoleResponse lists an assignable role.
type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
