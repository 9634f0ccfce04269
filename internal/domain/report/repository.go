package report

import "context"

// Repository defines the interface for report data access
type Repository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, userID, id int64) (*Report, error)
	Update(ctx context.Context, report *Report) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Report, int64, error)
}
