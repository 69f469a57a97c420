package user

import "context"

// Repository define as operações de persistência de usuários
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ResetTokenRepository define as operações de persistência dos tokens de
// redefinição de senha
type ResetTokenRepository interface {
	Create(ctx context.Context, t *PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string) error
	InvalidateByUser(ctx context.Context, userID string) error
}
