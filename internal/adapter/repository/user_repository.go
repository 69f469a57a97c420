package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaofacil/backend/internal/domain/user"
)

// Erros específicos do repositório de usuários
var (
	ErrUserNotFound     = errors.New("usuário não encontrado")
	ErrUserDuplicateKey = errors.New("usuário com mesmo email já existe")
)

// UserRepository implementa a interface user.Repository
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *pgxpool.Pool) user.Repository {
	return &UserRepository{db: db}
}

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	exists, err := r.ExistsByEmail(ctx, u.Email)
	if err != nil {
		return fmt.Errorf("erro ao verificar existência do usuário: %w", err)
	}
	if exists {
		return ErrUserDuplicateKey
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO users (
			id, name, email, password, phone, city, bio, avatar_base64,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Name, u.Email, u.Password, nullable(u.Phone), nullable(u.City),
		nullable(u.Bio), nullable(u.AvatarBase64), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}
	return nil
}

// Update implementa user.Repository.Update
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET
			name = $2, password = $3, phone = $4, city = $5, bio = $6,
			avatar_base64 = $7, updated_at = $8
		WHERE id = $1`,
		u.ID, u.Name, u.Password, nullable(u.Phone), nullable(u.City),
		nullable(u.Bio), nullable(u.AvatarBase64), u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

// ExistsByEmail implementa user.Repository.ExistsByEmail
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao consultar usuário: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*user.User, error) {
	var u user.User
	var phone, city, bio, avatar *string

	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, password, phone, city, bio, avatar_base64,
			created_at, updated_at
		FROM users `+where, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &phone, &city, &bio, &avatar,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	u.Phone = deref(phone)
	u.City = deref(city)
	u.Bio = deref(bio)
	u.AvatarBase64 = deref(avatar)
	return &u, nil
}

// nullable converte string vazia em NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
