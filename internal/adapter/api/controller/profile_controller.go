package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/domain/catalog"
	"github.com/gestaofacil/backend/internal/domain/user"
	"github.com/gestaofacil/backend/pkg/logger"
)

// ProfileController gerencia o perfil do usuário autenticado
type ProfileController struct {
	userRepo user.Repository
	logger   logger.Logger
}

// NewProfileController cria uma nova instância de ProfileController
func NewProfileController(userRepo user.Repository, logger logger.Logger) *ProfileController {
	return &ProfileController{userRepo: userRepo, logger: logger}
}

// Get retorna o perfil do usuário autenticado
// @Summary Consultar perfil
// @Description Retorna os dados de perfil do usuário autenticado
// @Tags profile
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /profile [get]
func (c *ProfileController) Get(ctx *gin.Context) {
	u, err := c.userRepo.FindByID(ctx, ctx.GetString("owner_id"))
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "usuário não autenticado", ""))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewProfileResponse(u))
}

// Update atualiza o perfil do usuário autenticado
// @Summary Atualizar perfil
// @Description Atualiza os dados de perfil do usuário autenticado
// @Tags profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param profile body dto.UpdateProfileRequest true "Dados do perfil"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /profile [put]
func (c *ProfileController) Update(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if err := validateAvatar(req.AvatarBase64); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "avatar inválido", err.Error()))
		return
	}

	u, err := c.userRepo.FindByID(ctx, ctx.GetString("owner_id"))
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "usuário não autenticado", ""))
		return
	}

	// O nome só muda quando enviado não-vazio; o email nunca muda por aqui
	if strings.TrimSpace(req.Name) != "" {
		u.Name = strings.TrimSpace(req.Name)
	}
	u.Phone = req.Phone
	u.City = req.City
	u.Bio = req.Bio
	u.AvatarBase64 = req.AvatarBase64
	u.UpdatedAt = time.Now()

	if err := c.userRepo.Update(ctx, u); err != nil {
		c.logger.Error("falha ao atualizar perfil", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar perfil", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewProfileResponse(u))
}

// validateAvatar aplica as mesmas regras da imagem de produto com o teto
// maior do avatar
func validateAvatar(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if !strings.HasPrefix(trimmed, "data:image/") {
		return catalog.ErrInvalidImage
	}
	if len(trimmed) > user.MaxAvatarBase64Length {
		return catalog.ErrImageTooLarge
	}
	return nil
}
