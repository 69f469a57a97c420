package customer

import "context"

// Repository define as operações de persistência de clientes.
// Toda consulta é filtrada pelo dono dos dados.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, ownerID, id string) error
	FindByID(ctx context.Context, ownerID, id string) (*Customer, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*Customer, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}
