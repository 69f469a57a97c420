package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/domain/catalog"
)

// ErrCatalogItemNotFound indica item do catálogo inexistente para o dono
var ErrCatalogItemNotFound = errors.New("item não encontrado")

// CatalogRepository implementa a interface catalog.Repository
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository cria uma nova instância de CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) catalog.Repository {
	return &CatalogRepository{db: db}
}

const catalogColumns = `id, owner_id, name, sku, qr_code, type, unit, unit_price,
	cost_price, description, product_image_base64, ncm, cest, cfop, icms_rate,
	ipi_rate, stock_quantity, min_stock, created_at`

// Create implementa catalog.Repository.Create
func (r *CatalogRepository) Create(ctx context.Context, item *catalog.Item) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO finance_catalog_items (`+catalogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		item.ID, item.OwnerID, item.Name, nullable(item.SKU), nullable(item.QrCode),
		item.Type, nullable(item.Unit), item.UnitPrice, item.CostPrice,
		nullable(item.Description), nullable(item.ProductImageBase64),
		nullable(item.NCM), nullable(item.CEST), nullable(item.CFOP),
		item.IcmsRate, item.IpiRate, item.StockQuantity, item.MinStock, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar item do catálogo: %w", err)
	}
	return nil
}

// Update implementa catalog.Repository.Update.
// O estoque não é alterado aqui; use AdjustStock para movimentações.
func (r *CatalogRepository) Update(ctx context.Context, item *catalog.Item) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE finance_catalog_items SET
			name = $3, sku = $4, qr_code = $5, type = $6, unit = $7,
			unit_price = $8, cost_price = $9, description = $10,
			product_image_base64 = $11, ncm = $12, cest = $13, cfop = $14,
			icms_rate = $15, ipi_rate = $16, min_stock = $17
		WHERE id = $1 AND owner_id = $2`,
		item.ID, item.OwnerID, item.Name, nullable(item.SKU), nullable(item.QrCode),
		item.Type, nullable(item.Unit), item.UnitPrice, item.CostPrice,
		nullable(item.Description), nullable(item.ProductImageBase64),
		nullable(item.NCM), nullable(item.CEST), nullable(item.CFOP),
		item.IcmsRate, item.IpiRate, item.MinStock)
	if err != nil {
		return fmt.Errorf("erro ao atualizar item do catálogo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCatalogItemNotFound
	}
	return nil
}

// Delete implementa catalog.Repository.Delete
func (r *CatalogRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM finance_catalog_items WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("erro ao remover item do catálogo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCatalogItemNotFound
	}
	return nil
}

// FindByID implementa catalog.Repository.FindByID
func (r *CatalogRepository) FindByID(ctx context.Context, ownerID, id string) (*catalog.Item, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+catalogColumns+` FROM finance_catalog_items
		WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return r.scanOne(row)
}

// FindByQrCode implementa catalog.Repository.FindByQrCode
func (r *CatalogRepository) FindByQrCode(ctx context.Context, ownerID, qrCode string) (*catalog.Item, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+catalogColumns+` FROM finance_catalog_items
		WHERE owner_id = $1 AND qr_code = $2 LIMIT 1`, ownerID, qrCode)
	return r.scanOne(row)
}

// FindByOwner implementa catalog.Repository.FindByOwner
func (r *CatalogRepository) FindByOwner(ctx context.Context, ownerID string) ([]*catalog.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+catalogColumns+` FROM finance_catalog_items
		WHERE owner_id = $1 ORDER BY name`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar catálogo: %w", err)
	}
	defer rows.Close()

	items := make([]*catalog.Item, 0)
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler item do catálogo: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AdjustStock implementa catalog.Repository.AdjustStock.
// O delta é aplicado em uma única instrução condicional para que duas
// saídas concorrentes nunca deixem o estoque negativo.
func (r *CatalogRepository) AdjustStock(ctx context.Context, ownerID, id string, delta decimal.Decimal) (*catalog.Item, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE finance_catalog_items
		SET stock_quantity = stock_quantity + $3
		WHERE id = $1 AND owner_id = $2 AND stock_quantity + $3 >= 0
		RETURNING `+catalogColumns, id, ownerID, delta)

	item, err := scanCatalogItem(row)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("erro ao ajustar estoque: %w", err)
	}

	// Nenhuma linha atualizada: distingue item inexistente de estoque insuficiente
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM finance_catalog_items WHERE id = $1 AND owner_id = $2)`,
		id, ownerID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("erro ao ajustar estoque: %w", err)
	}
	if !exists {
		return nil, ErrCatalogItemNotFound
	}
	return nil, catalog.ErrInsufficientStock
}

func (r *CatalogRepository) scanOne(row pgx.Row) (*catalog.Item, error) {
	item, err := scanCatalogItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, fmt.Errorf("erro ao buscar item do catálogo: %w", err)
	}
	return item, nil
}

func scanCatalogItem(row pgx.Row) (*catalog.Item, error) {
	var item catalog.Item
	var sku, qrCode, unit, description, image, ncm, cest, cfop *string

	err := row.Scan(&item.ID, &item.OwnerID, &item.Name, &sku, &qrCode,
		&item.Type, &unit, &item.UnitPrice, &item.CostPrice, &description,
		&image, &ncm, &cest, &cfop, &item.IcmsRate, &item.IpiRate,
		&item.StockQuantity, &item.MinStock, &item.CreatedAt)
	if err != nil {
		return nil, err
	}

	item.SKU = deref(sku)
	item.QrCode = deref(qrCode)
	item.Unit = deref(unit)
	item.Description = deref(description)
	item.ProductImageBase64 = deref(image)
	item.NCM = deref(ncm)
	item.CEST = deref(cest)
	item.CFOP = deref(cfop)
	return &item, nil
}
