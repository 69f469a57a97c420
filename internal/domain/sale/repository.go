package sale

import "context"

// Repository define as operações de persistência de vendas. O save de uma
// venda grava o cabeçalho e substitui as linhas na mesma transação.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	Update(ctx context.Context, s *Sale) error
	UpdateStatus(ctx context.Context, ownerID, id string, status Status) (*Sale, error)
	Delete(ctx context.Context, ownerID, id string) error
	FindByID(ctx context.Context, ownerID, id string) (*Sale, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*Sale, error)
	FindByOwnerAndStatus(ctx context.Context, ownerID string, status Status) ([]*Sale, error)
	Search(ctx context.Context, ownerID, term string) ([]*Sale, error)
}
