package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/adapter/repository"
	"github.com/gestaofacil/backend/internal/domain/user"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrUserDuplicateKey
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(context.Background(), email)
	return err == nil, nil
}

type fakeResetRepo struct {
	tokens map[string]*user.PasswordResetToken
}

func newFakeResetRepo(tokens ...*user.PasswordResetToken) *fakeResetRepo {
	f := &fakeResetRepo{tokens: make(map[string]*user.PasswordResetToken)}
	for _, t := range tokens {
		f.tokens[t.ID] = t
	}
	return f
}

func (f *fakeResetRepo) Create(_ context.Context, t *user.PasswordResetToken) error {
	f.tokens[t.ID] = t
	return nil
}

func (f *fakeResetRepo) FindByToken(_ context.Context, token string) (*user.PasswordResetToken, error) {
	for _, t := range f.tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, repository.ErrResetTokenNotFound
}

func (f *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	t, ok := f.tokens[id]
	if !ok {
		return repository.ErrResetTokenNotFound
	}
	t.Used = true
	return nil
}

func (f *fakeResetRepo) InvalidateByUser(_ context.Context, userID string) error {
	for _, t := range f.tokens {
		if t.UserID == userID && !t.Used {
			t.Used = true
		}
	}
	return nil
}

func setupAuthTest(t *testing.T, userRepo *fakeUserRepo, resetRepo *fakeResetRepo) *gin.Engine {
	t.Helper()
	ctrl := NewAuthController(userRepo, resetRepo, service.NewMailerFromEnv(logger.NewLogger()), logger.NewLogger())

	r := testRouter()
	r.POST("/auth/register", ctrl.Register)
	r.POST("/auth/login", ctrl.Login)
	r.POST("/auth/forgot-password", ctrl.ForgotPassword)
	r.POST("/auth/reset-password", ctrl.ResetPassword)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	userRepo := newFakeUserRepo()
	r := setupAuthTest(t, userRepo, newFakeResetRepo())

	w := postJSON(r, "/auth/register", `{"name":"Maria","email":"maria@teste.com","password":"segredo1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, userRepo.users, 1)
	for _, u := range userRepo.users {
		assert.Equal(t, "maria@teste.com", u.Email)
		assert.True(t, u.CheckPassword("segredo1"))
	}

	// Email repetido é rejeitado
	w = postJSON(r, "/auth/register", `{"name":"Outra","email":"maria@teste.com","password":"segredo2"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email já cadastrado")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r := setupAuthTest(t, newFakeUserRepo(), newFakeResetRepo())

	w := postJSON(r, "/auth/register", `{"name":"Maria","email":"maria@teste.com","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	u, err := user.NewUser("Maria", "maria@teste.com", "segredo1")
	require.NoError(t, err)
	r := setupAuthTest(t, newFakeUserRepo(u), newFakeResetRepo())

	w := postJSON(r, "/auth/login", `{"email":"maria@teste.com","password":"segredo1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.EqualValues(t, 7200, resp.ExpiresIn)
	assert.Equal(t, u.ID, resp.User.ID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	u, err := user.NewUser("Maria", "maria@teste.com", "segredo1")
	require.NoError(t, err)
	r := setupAuthTest(t, newFakeUserRepo(u), newFakeResetRepo())

	// Senha errada e email desconhecido produzem a mesma resposta
	w := postJSON(r, "/auth/login", `{"email":"maria@teste.com","password":"errada1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/login", `{"email":"ninguem@teste.com","password":"segredo1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	resetRepo := newFakeResetRepo()
	r := setupAuthTest(t, newFakeUserRepo(), resetRepo)

	// Email desconhecido recebe a mesma resposta genérica
	w := postJSON(r, "/auth/forgot-password", `{"email":"ninguem@teste.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Se o email estiver cadastrado")
	assert.Empty(t, resetRepo.tokens)
}

func TestResetPassword(t *testing.T) {
	u, err := user.NewUser("Maria", "maria@teste.com", "antiga1")
	require.NoError(t, err)
	token := user.NewPasswordResetToken(u.ID)

	userRepo := newFakeUserRepo(u)
	resetRepo := newFakeResetRepo(token)
	r := setupAuthTest(t, userRepo, resetRepo)

	w := postJSON(r, "/auth/reset-password", `{"token":"`+token.Token+`","newPassword":"nova-senha1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, userRepo.users[u.ID].CheckPassword("nova-senha1"))
	assert.False(t, userRepo.users[u.ID].CheckPassword("antiga1"))
	assert.True(t, resetRepo.tokens[token.ID].Used)

	// Token é de uso único
	w = postJSON(r, "/auth/reset-password", `{"token":"`+token.Token+`","newPassword":"outra-senha1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "token inválido ou expirado")
}

func TestResetPasswordUnknownToken(t *testing.T) {
	r := setupAuthTest(t, newFakeUserRepo(), newFakeResetRepo())

	w := postJSON(r, "/auth/reset-password", `{"token":"inexistente","newPassword":"nova-senha1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
