package entry

import "context"

// Repository define as operações de persistência de lançamentos financeiros
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, ownerID, id string) error
	FindByID(ctx context.Context, ownerID, id string) (*Entry, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*Entry, error)
}
