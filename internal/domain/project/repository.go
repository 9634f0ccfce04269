package project

import "context"

// Repository defines the interface for project data access. Every lookup
// is scoped by owner; rows owned by someone else read as not found.
type Repository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, userID, id int64) (*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Project, int64, error)
}
