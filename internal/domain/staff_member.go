package domain

import "time"

// StaffMember is an administrative user row. Its ID equals the ID of the
// auth identity it was created alongside.
type StaffMember struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	RoleID    string
	AvatarURL *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins first and last name.
func (s StaffMember) FullName() string {
	switch {
	case s.FirstName == "":
		return s.LastName
	case s.LastName == "":
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
