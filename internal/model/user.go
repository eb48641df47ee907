package model

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account roles. Using a named type keeps
// role checks in the authorization middleware exhaustive instead of
// comparing free-form strings.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// ParseRole normalizes and validates a role string. Unknown values are
// rejected so a bad role can never reach the database or a token claim.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleProvider:
		return RoleProvider, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleProvider:
		return true
	}
	return false
}

// Address holds the optional structured address of a user. All fields
// map to nullable columns.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// User mirrors the 'users' table.
//
// PasswordHash is only populated when a caller explicitly asks the
// repository for it; it is never serialized to JSON. PasswordChangedAt
// stays nil until the first password change so tokens issued right
// after registration are never considered stale.
type User struct {
	ID                uint64     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Phone             string     `json:"phone,omitempty"`
	Role              Role       `json:"role"`
	IsBlocked         bool       `json:"isBlocked"`
	IsVerified        bool       `json:"isVerified"`
	PasswordChangedAt *time.Time `json:"-"`
	ProfileImage      string     `json:"profileImage,omitempty"`
	Address           Address    `json:"address"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// NewUser carries the fields accepted at registration time. Password is
// plaintext here and must be hashed by the store before persistence.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     Role
	Address  Address
}
