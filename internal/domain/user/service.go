package user

import "context"

// Service defines profile operations for the signed-in user
type Service interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	UpdateProfile(ctx context.Context, id int64, displayName string) (*User, error)
}
