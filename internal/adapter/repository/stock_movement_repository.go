package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaofacil/backend/internal/domain/catalog"
)

// StockMovementRepository implementa a interface catalog.MovementRepository
type StockMovementRepository struct {
	db *pgxpool.Pool
}

// NewStockMovementRepository cria uma nova instância de StockMovementRepository
func NewStockMovementRepository(db *pgxpool.Pool) catalog.MovementRepository {
	return &StockMovementRepository{db: db}
}

// Create implementa catalog.MovementRepository.Create
func (r *StockMovementRepository) Create(ctx context.Context, m *catalog.Movement) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO finance_stock_movements (
			id, owner_id, catalog_item_id, item_name, type, quantity, reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.OwnerID, m.CatalogItemID, m.ItemName, m.Type, m.Quantity,
		nullable(m.Reason), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao registrar movimentação de estoque: %w", err)
	}
	return nil
}

// FindByOwner implementa catalog.MovementRepository.FindByOwner
func (r *StockMovementRepository) FindByOwner(ctx context.Context, ownerID string) ([]*catalog.Movement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, catalog_item_id, item_name, type, quantity, reason, created_at
		FROM finance_stock_movements
		WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar movimentações: %w", err)
	}
	defer rows.Close()

	movements := make([]*catalog.Movement, 0)
	for rows.Next() {
		var m catalog.Movement
		var reason *string
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.CatalogItemID, &m.ItemName,
			&m.Type, &m.Quantity, &reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler movimentação: %w", err)
		}
		m.Reason = deref(reason)
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
