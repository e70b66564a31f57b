// Package domain holds DTOs for the admin surface
package domain

import authdom "promptstash/internal/services/api/auth/domain"

// UserUpdate patches an identity's status and access level
// both fields are optional, present values must be members of the closed enums
type UserUpdate struct {
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending active blocked" example:"active"`
	AccessLevel *string `json:"access_level,omitempty" validate:"omitempty,oneof=admin tech user" example:"tech"`
}

// UserRow is the admin projection of an identity
type UserRow struct {
	ID          int64  `json:"id" example:"123456789"`
	Username    string `json:"username" example:"ada"`
	FirstName   string `json:"first_name" example:"Ada"`
	LastName    string `json:"last_name" example:"Lovelace"`
	Role        string `json:"role" example:"user"`
	Status      string `json:"status" example:"pending"`
	AccessLevel string `json:"access_level" example:"user"`
	CreatedAt   string `json:"created_at" example:"2026-08-01T12:00:00Z"`
	LastLoginAt string `json:"last_login_at,omitempty" example:"2026-08-30T09:30:00Z"`
}

// RowFromIdentity projects an identity onto the admin row shape
func RowFromIdentity(id authdom.Identity) UserRow {
	row := UserRow{
		ID:          id.ID,
		Username:    id.Username,
		FirstName:   id.FirstName,
		LastName:    id.LastName,
		Role:        id.Role,
		Status:      string(id.Status),
		AccessLevel: string(id.AccessLevel),
		CreatedAt:   id.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if id.LastLoginAt != nil {
		row.LastLoginAt = id.LastLoginAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return row
}
