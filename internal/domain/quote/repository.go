package quote

import "context"

// Repository define as operações de persistência de orçamentos
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	Update(ctx context.Context, q *Quote) error
	Delete(ctx context.Context, ownerID, id string) error
	FindByID(ctx context.Context, ownerID, id string) (*Quote, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*Quote, error)
}
