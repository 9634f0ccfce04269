package referee

import "context"

// Repository defines the interface for referee data access
type Repository interface {
	Create(ctx context.Context, referee *Referee) error
	GetByID(ctx context.Context, userID, id int64) (*Referee, error)
	Update(ctx context.Context, referee *Referee) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, filter Filter) ([]*Referee, error)
}
