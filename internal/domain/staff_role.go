package domain

import "time"

// StaffRole is a named permission bundle. Read-only from this service.
type StaffRole struct {
	ID          string
	Name        string
	Permissions []string
	CreatedAt   time.Time
}

// HasAny reports whether the role grants at least one of perms.
func (r *StaffRole) HasAny(perms ...string) bool {
	if r == nil {
		return false
	}
	for _, have := range r.Permissions {
		for _, want := range perms {
			if have == want {
				return true
			}
		}
	}
	return false
}
