package models

import "fmt"

// Role governs which actions the client exposes. The server assigns it;
// the client only reads and branches on it.
type Role string

// Role constants, matching the wire values used by the API.
const (
	RoleGuest Role = "ROLE_GUEST"
	RoleHost  Role = "ROLE_HOST"
	RoleAdmin Role = "ROLE_ADMIN"
)

// ParseRole converts a wire string into a Role.
//
// If the value is not one of the known roles, the error will be returned
// together with an empty Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleGuest, RoleHost, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated user record cached client-side.
type Identity struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      Role   `json:"role"`
}

// Merge returns a copy of the identity with the non-zero fields of "partial"
// applied. Used after role changes (become host) where the server response
// must be reflected immediately without a network round-trip.
func (i Identity) Merge(partial Identity) Identity {
	merged := i
	if partial.ID != 0 {
		merged.ID = partial.ID
	}
	if partial.Email != "" {
		merged.Email = partial.Email
	}
	if partial.FirstName != "" {
		merged.FirstName = partial.FirstName
	}
	if partial.LastName != "" {
		merged.LastName = partial.LastName
	}
	if partial.Role != "" {
		merged.Role = partial.Role
	}
	return merged
}
