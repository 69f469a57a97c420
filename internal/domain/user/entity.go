package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName     = errors.New("nome não pode ser vazio")
	ErrEmptyEmail    = errors.New("email não pode ser vazio")
	ErrEmptyPassword = errors.New("senha não pode ser vazia")
)

// MaxAvatarBase64Length é o tamanho máximo do avatar em data-URI
const MaxAvatarBase64Length = 3_000_000

// User representa um usuário do sistema. Cada usuário é o dono (tenant)
// de todos os seus dados de finanças.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	Bio          string    `json:"bio"`
	AvatarBase64 string    `json:"avatar_base64"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser cria um novo usuário com a senha já protegida por hash
func NewUser(name, email, password string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmptyEmail
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// PasswordResetToken é um token de uso único para redefinição de senha
type PasswordResetToken struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// ResetTokenDuration é a validade do token de redefinição de senha
const ResetTokenDuration = 30 * time.Minute

// NewPasswordResetToken cria um novo token para o usuário
func NewPasswordResetToken(userID string) *PasswordResetToken {
	now := time.Now()
	return &PasswordResetToken{
		ID:        uuid.New().String(),
		Token:     strings.ReplaceAll(uuid.New().String(), "-", ""),
		UserID:    userID,
		ExpiresAt: now.Add(ResetTokenDuration),
		Used:      false,
		CreatedAt: now,
	}
}

// IsValid verifica se o token ainda pode ser usado
func (t *PasswordResetToken) IsValid() bool {
	return !t.Used && t.ExpiresAt.After(time.Now())
}
