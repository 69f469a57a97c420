package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaofacil/backend/internal/domain/quote"
)

// ErrQuoteNotFound indica orçamento inexistente para o dono informado
var ErrQuoteNotFound = errors.New("orçamento não encontrado")

// QuoteRepository implementa a interface quote.Repository
type QuoteRepository struct {
	db *pgxpool.Pool
}

// NewQuoteRepository cria uma nova instância de QuoteRepository
func NewQuoteRepository(db *pgxpool.Pool) quote.Repository {
	return &QuoteRepository{db: db}
}

const quoteColumns = `id, owner_id, customer_id, customer_name, status,
	issue_date, valid_until, notes, subtotal, total, created_at`

// Create implementa quote.Repository.Create
func (r *QuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO finance_quotes (`+quoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		q.ID, q.OwnerID, nullableUUID(q.CustomerID), q.CustomerName, q.Status,
		q.IssueDate, nullableTime(q.ValidUntil), nullable(q.Notes),
		q.Subtotal, q.Total, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar orçamento: %w", err)
	}

	if err := insertQuoteItems(ctx, tx, q); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update implementa quote.Repository.Update. As linhas antigas são
// removidas e as novas inseridas na mesma transação.
func (r *QuoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE finance_quotes SET
			customer_id = $3, customer_name = $4, status = $5, issue_date = $6,
			valid_until = $7, notes = $8, subtotal = $9, total = $10
		WHERE id = $1 AND owner_id = $2`,
		q.ID, q.OwnerID, nullableUUID(q.CustomerID), q.CustomerName, q.Status,
		q.IssueDate, nullableTime(q.ValidUntil), nullable(q.Notes),
		q.Subtotal, q.Total)
	if err != nil {
		return fmt.Errorf("erro ao atualizar orçamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrQuoteNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM finance_quote_items WHERE quote_id = $1`, q.ID); err != nil {
		return fmt.Errorf("erro ao substituir itens do orçamento: %w", err)
	}
	if err := insertQuoteItems(ctx, tx, q); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete implementa quote.Repository.Delete. As linhas caem junto pelo
// ON DELETE CASCADE do esquema.
func (r *QuoteRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM finance_quotes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("erro ao remover orçamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrQuoteNotFound
	}
	return nil
}

// FindByID implementa quote.Repository.FindByID
func (r *QuoteRepository) FindByID(ctx context.Context, ownerID, id string) (*quote.Quote, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+quoteColumns+` FROM finance_quotes
		WHERE id = $1 AND owner_id = $2`, id, ownerID)
	q, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("erro ao buscar orçamento: %w", err)
	}
	if err := r.loadItems(ctx, []*quote.Quote{q}); err != nil {
		return nil, err
	}
	return q, nil
}

// FindByOwner implementa quote.Repository.FindByOwner
func (r *QuoteRepository) FindByOwner(ctx context.Context, ownerID string) ([]*quote.Quote, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+quoteColumns+` FROM finance_quotes
		WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar orçamentos: %w", err)
	}
	defer rows.Close()

	quotes := make([]*quote.Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler orçamento: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *QuoteRepository) loadItems(ctx context.Context, quotes []*quote.Quote) error {
	if len(quotes) == 0 {
		return nil
	}
	byID := make(map[string]*quote.Quote, len(quotes))
	ids := make([]string, 0, len(quotes))
	for _, q := range quotes {
		q.Items = make([]quote.Item, 0)
		byID[q.ID] = q
		ids = append(ids, q.ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT quote_id, id, catalog_item_id, description, unit, quantity, unit_price, total
		FROM finance_quote_items WHERE quote_id = ANY($1) ORDER BY quote_id, position`, ids)
	if err != nil {
		return fmt.Errorf("erro ao listar itens do orçamento: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var quoteID string
		var item quote.Item
		var catalogItemID, unit *string
		if err := rows.Scan(&quoteID, &item.ID, &catalogItemID, &item.Description,
			&unit, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return fmt.Errorf("erro ao ler item do orçamento: %w", err)
		}
		item.CatalogItemID = deref(catalogItemID)
		item.Unit = deref(unit)
		if q, ok := byID[quoteID]; ok {
			q.Items = append(q.Items, item)
		}
	}
	return rows.Err()
}

func insertQuoteItems(ctx context.Context, tx pgx.Tx, q *quote.Quote) error {
	for i, item := range q.Items {
		_, err := tx.Exec(ctx,
			`INSERT INTO finance_quote_items (
				id, quote_id, catalog_item_id, description, unit, quantity, unit_price, total, position
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			item.ID, q.ID, nullableUUID(item.CatalogItemID), item.Description,
			nullable(item.Unit), item.Quantity, item.UnitPrice, item.Total, i)
		if err != nil {
			return fmt.Errorf("erro ao gravar item do orçamento: %w", err)
		}
	}
	return nil
}

func scanQuote(row pgx.Row) (*quote.Quote, error) {
	var q quote.Quote
	var customerID, notes *string
	var validUntil *time.Time

	err := row.Scan(&q.ID, &q.OwnerID, &customerID, &q.CustomerName, &q.Status,
		&q.IssueDate, &validUntil, &notes, &q.Subtotal, &q.Total, &q.CreatedAt)
	if err != nil {
		return nil, err
	}

	q.CustomerID = deref(customerID)
	q.Notes = deref(notes)
	if validUntil != nil {
		q.ValidUntil = *validUntil
	}
	return &q, nil
}

// nullableTime converte o zero de time.Time em NULL
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
