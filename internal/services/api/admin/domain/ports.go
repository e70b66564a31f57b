package domain

import "context"

// ServicePort is consumed by handlers
type ServicePort interface {
	ListUsers(ctx context.Context) ([]UserRow, error)
	UpdateUser(ctx context.Context, id int64, in UserUpdate) (UserRow, error)
}
