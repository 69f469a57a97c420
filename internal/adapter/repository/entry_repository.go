package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaofacil/backend/internal/domain/entry"
)

// ErrEntryNotFound indica lançamento inexistente para o dono informado
var ErrEntryNotFound = errors.New("lançamento não encontrado")

// EntryRepository implementa a interface entry.Repository
type EntryRepository struct {
	db *pgxpool.Pool
}

// NewEntryRepository cria uma nova instância de EntryRepository
func NewEntryRepository(db *pgxpool.Pool) entry.Repository {
	return &EntryRepository{db: db}
}

const entryColumns = `id, owner_id, type, status, amount, category, description,
	due_date, paid_date, created_at`

// Create implementa entry.Repository.Create
func (r *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO finance_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.OwnerID, e.Type, e.Status, e.Amount, e.Category, e.Description,
		e.DueDate, e.PaidDate, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar lançamento: %w", err)
	}
	return nil
}

// Update implementa entry.Repository.Update
func (r *EntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE finance_entries SET
			type = $3, status = $4, amount = $5, category = $6,
			description = $7, due_date = $8, paid_date = $9
		WHERE id = $1 AND owner_id = $2`,
		e.ID, e.OwnerID, e.Type, e.Status, e.Amount, e.Category, e.Description,
		e.DueDate, e.PaidDate)
	if err != nil {
		return fmt.Errorf("erro ao atualizar lançamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Delete implementa entry.Repository.Delete
func (r *EntryRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM finance_entries WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("erro ao remover lançamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// FindByID implementa entry.Repository.FindByID
func (r *EntryRepository) FindByID(ctx context.Context, ownerID, id string) (*entry.Entry, error) {
	var e entry.Entry
	err := r.db.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM finance_entries
		WHERE id = $1 AND owner_id = $2`, id, ownerID).Scan(
		&e.ID, &e.OwnerID, &e.Type, &e.Status, &e.Amount, &e.Category,
		&e.Description, &e.DueDate, &e.PaidDate, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("erro ao buscar lançamento: %w", err)
	}
	return &e, nil
}

// FindByOwner implementa entry.Repository.FindByOwner
func (r *EntryRepository) FindByOwner(ctx context.Context, ownerID string) ([]*entry.Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+entryColumns+` FROM finance_entries
		WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lançamentos: %w", err)
	}
	defer rows.Close()

	entries := make([]*entry.Entry, 0)
	for rows.Next() {
		var e entry.Entry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Type, &e.Status, &e.Amount,
			&e.Category, &e.Description, &e.DueDate, &e.PaidDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler lançamento: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
