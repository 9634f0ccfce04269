package referee

import "context"

// Service defines the interface for referee business logic
type Service interface {
	Create(ctx context.Context, referee *Referee) error
	GetByID(ctx context.Context, userID, id int64) (*Referee, error)
	Update(ctx context.Context, userID, id int64, patch Patch) (*Referee, error)
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, filter Filter) ([]*Referee, error)
}
