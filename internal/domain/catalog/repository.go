package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository define as operações de persistência do catálogo
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, ownerID, id string) error
	FindByID(ctx context.Context, ownerID, id string) (*Item, error)
	FindByQrCode(ctx context.Context, ownerID, qrCode string) (*Item, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*Item, error)

	// AdjustStock aplica o delta ao estoque em uma única instrução
	// condicional: a atualização só acontece se o resultado não ficar
	// negativo. Retorna o item atualizado, ErrInsufficientStock quando a
	// condição falha, ou o erro de não-encontrado do adaptador.
	AdjustStock(ctx context.Context, ownerID, id string, delta decimal.Decimal) (*Item, error)
}

// MovementRepository define as operações do livro de movimentações.
// Movimentações são apenas acrescentadas, nunca alteradas.
type MovementRepository interface {
	Create(ctx context.Context, m *Movement) error
	FindByOwner(ctx context.Context, ownerID string) ([]*Movement, error)
}
