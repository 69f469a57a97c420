package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaofacil/backend/internal/domain/user"
)

// ErrResetTokenNotFound indica token de redefinição inexistente
var ErrResetTokenNotFound = errors.New("token de redefinição não encontrado")

// PasswordResetRepository implementa a interface user.ResetTokenRepository
type PasswordResetRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetRepository cria uma nova instância de PasswordResetRepository
func NewPasswordResetRepository(db *pgxpool.Pool) user.ResetTokenRepository {
	return &PasswordResetRepository{db: db}
}

// Create implementa user.ResetTokenRepository.Create
func (r *PasswordResetRepository) Create(ctx context.Context, t *user.PasswordResetToken) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO password_reset_tokens (id, user_id, token, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.UserID, t.Token, t.ExpiresAt, t.Used, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar token de redefinição: %w", err)
	}
	return nil
}

// FindByToken implementa user.ResetTokenRepository.FindByToken
func (r *PasswordResetRepository) FindByToken(ctx context.Context, token string) (*user.PasswordResetToken, error) {
	var t user.PasswordResetToken
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, token, expires_at, used, created_at
		FROM password_reset_tokens WHERE token = $1`, token).Scan(
		&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResetTokenNotFound
		}
		return nil, fmt.Errorf("erro ao buscar token de redefinição: %w", err)
	}
	return &t, nil
}

// MarkUsed implementa user.ResetTokenRepository.MarkUsed
func (r *PasswordResetRepository) MarkUsed(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao marcar token como usado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrResetTokenNotFound
	}
	return nil
}

// InvalidateByUser implementa user.ResetTokenRepository.InvalidateByUser
func (r *PasswordResetRepository) InvalidateByUser(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE user_id = $1 AND used = FALSE`,
		userID)
	if err != nil {
		return fmt.Errorf("erro ao invalidar tokens anteriores: %w", err)
	}
	return nil
}
