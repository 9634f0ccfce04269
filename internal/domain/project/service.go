package project

import "context"

// Service defines the interface for project business logic
type Service interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, userID, id int64) (*Project, error)
	Update(ctx context.Context, userID, id int64, patch Patch) (*Project, error)
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Project, int64, error)
}
