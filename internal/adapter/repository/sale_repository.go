package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaofacil/backend/internal/domain/sale"
)

// ErrSaleNotFound indica venda inexistente para o dono informado
var ErrSaleNotFound = errors.New("venda não encontrada")

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db *pgxpool.Pool
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db *pgxpool.Pool) sale.Repository {
	return &SaleRepository{db: db}
}

const saleColumns = `id, owner_id, customer_id, customer_name, sale_date, status,
	subtotal, discount, discount_percent, shipping, tax, total, payment_method,
	notes, created_at, updated_at`

// Create implementa sale.Repository.Create. Cabeçalho e linhas são
// gravados na mesma transação.
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		s.ID, s.OwnerID, nullableUUID(s.CustomerID), nullable(s.CustomerName),
		s.SaleDate, s.Status, s.Subtotal, s.Discount, s.DiscountPercent,
		s.Shipping, s.Tax, s.Total, nullable(string(s.PaymentMethod)),
		nullable(s.Notes), s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar venda: %w", err)
	}

	if err := insertSaleItems(ctx, tx, s); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update implementa sale.Repository.Update. As linhas antigas são
// removidas e as novas inseridas na mesma transação.
func (r *SaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE sales SET
			customer_id = $3, customer_name = $4, sale_date = $5, status = $6,
			subtotal = $7, discount = $8, discount_percent = $9, shipping = $10,
			tax = $11, total = $12, payment_method = $13, notes = $14, updated_at = $15
		WHERE id = $1 AND owner_id = $2`,
		s.ID, s.OwnerID, nullableUUID(s.CustomerID), nullable(s.CustomerName),
		s.SaleDate, s.Status, s.Subtotal, s.Discount, s.DiscountPercent,
		s.Shipping, s.Tax, s.Total, nullable(string(s.PaymentMethod)),
		nullable(s.Notes), s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar venda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSaleNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, s.ID); err != nil {
		return fmt.Errorf("erro ao substituir itens da venda: %w", err)
	}
	if err := insertSaleItems(ctx, tx, s); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateStatus implementa sale.Repository.UpdateStatus
func (r *SaleRepository) UpdateStatus(ctx context.Context, ownerID, id string, status sale.Status) (*sale.Sale, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE sales SET status = $3, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2`, id, ownerID, status)
	if err != nil {
		return nil, fmt.Errorf("erro ao atualizar status da venda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrSaleNotFound
	}
	return r.FindByID(ctx, ownerID, id)
}

// Delete implementa sale.Repository.Delete. As linhas caem junto pelo
// ON DELETE CASCADE do esquema.
func (r *SaleRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM sales WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("erro ao remover venda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSaleNotFound
	}
	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, ownerID, id string) (*sale.Sale, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1 AND owner_id = $2`, id, ownerID)
	s, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}
	if err := r.loadItems(ctx, []*sale.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// FindByOwner implementa sale.Repository.FindByOwner
func (r *SaleRepository) FindByOwner(ctx context.Context, ownerID string) ([]*sale.Sale, error) {
	return r.findMany(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID)
}

// FindByOwnerAndStatus implementa sale.Repository.FindByOwnerAndStatus
func (r *SaleRepository) FindByOwnerAndStatus(ctx context.Context, ownerID string, status sale.Status) ([]*sale.Sale, error) {
	return r.findMany(ctx,
		`SELECT `+saleColumns+` FROM sales
		WHERE owner_id = $1 AND status = $2 ORDER BY created_at DESC`,
		ownerID, status)
}

// Search implementa sale.Repository.Search. A busca cobre o nome do
// cliente e as descrições das linhas, sem distinção de maiúsculas.
func (r *SaleRepository) Search(ctx context.Context, ownerID, term string) ([]*sale.Sale, error) {
	pattern := "%" + term + "%"
	return r.findMany(ctx,
		`SELECT DISTINCT s.id, s.owner_id, s.customer_id, s.customer_name,
			s.sale_date, s.status, s.subtotal, s.discount, s.discount_percent,
			s.shipping, s.tax, s.total, s.payment_method, s.notes,
			s.created_at, s.updated_at
		FROM sales s
		LEFT JOIN sale_items i ON i.sale_id = s.id
		WHERE s.owner_id = $1
			AND (s.customer_name ILIKE $2 OR i.description ILIKE $2)
		ORDER BY s.created_at DESC`,
		ownerID, pattern)
}

func (r *SaleRepository) findMany(ctx context.Context, query string, args ...any) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	sales := make([]*sale.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *SaleRepository) loadItems(ctx context.Context, sales []*sale.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	byID := make(map[string]*sale.Sale, len(sales))
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		s.Items = make([]sale.Item, 0)
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT sale_id, id, description, quantity, unit, unit_price, total, product_id
		FROM sale_items WHERE sale_id = ANY($1) ORDER BY sale_id, position`, ids)
	if err != nil {
		return fmt.Errorf("erro ao listar itens da venda: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var saleID string
		var item sale.Item
		var description, unit, productID *string
		if err := rows.Scan(&saleID, &item.ID, &description, &item.Quantity,
			&unit, &item.UnitPrice, &item.Total, &productID); err != nil {
			return fmt.Errorf("erro ao ler item da venda: %w", err)
		}
		item.Description = deref(description)
		item.Unit = deref(unit)
		item.ProductID = deref(productID)
		if s, ok := byID[saleID]; ok {
			s.Items = append(s.Items, item)
		}
	}
	return rows.Err()
}

func insertSaleItems(ctx context.Context, tx pgx.Tx, s *sale.Sale) error {
	for i, item := range s.Items {
		_, err := tx.Exec(ctx,
			`INSERT INTO sale_items (
				id, sale_id, description, quantity, unit, unit_price, total, product_id, position
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			item.ID, s.ID, nullable(item.Description), item.Quantity,
			nullable(item.Unit), item.UnitPrice, item.Total,
			nullableUUID(item.ProductID), i)
		if err != nil {
			return fmt.Errorf("erro ao gravar item da venda: %w", err)
		}
	}
	return nil
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	var customerID, customerName, paymentMethod, notes *string

	err := row.Scan(&s.ID, &s.OwnerID, &customerID, &customerName, &s.SaleDate,
		&s.Status, &s.Subtotal, &s.Discount, &s.DiscountPercent, &s.Shipping,
		&s.Tax, &s.Total, &paymentMethod, &notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.CustomerID = deref(customerID)
	s.CustomerName = deref(customerName)
	s.PaymentMethod = sale.PaymentMethod(deref(paymentMethod))
	s.Notes = deref(notes)
	return &s, nil
}

// nullableUUID converte string vazia em NULL para colunas UUID
func nullableUUID(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
