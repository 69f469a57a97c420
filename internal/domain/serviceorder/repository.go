package serviceorder

import "context"

// Repository define as operações de persistência de ordens de serviço
type Repository interface {
	Create(ctx context.Context, o *ServiceOrder) error
	Update(ctx context.Context, o *ServiceOrder) error
	Delete(ctx context.Context, ownerID, id string) error
	FindByID(ctx context.Context, ownerID, id string) (*ServiceOrder, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*ServiceOrder, error)
	CountByOwnerAndStatus(ctx context.Context, ownerID string, status Status) (int64, error)
}
