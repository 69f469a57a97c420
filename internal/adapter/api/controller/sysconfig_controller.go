package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/adapter/repository"
	"github.com/gestaofacil/backend/internal/domain/sysconfig"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

// SystemConfigController gerencia as configurações do sistema de cada dono
type SystemConfigController struct {
	configRepo sysconfig.Repository
	audit      *service.AuditService
	logger     logger.Logger
}

// NewSystemConfigController cria uma nova instância de SystemConfigController
func NewSystemConfigController(configRepo sysconfig.Repository, audit *service.AuditService, logger logger.Logger) *SystemConfigController {
	return &SystemConfigController{configRepo: configRepo, audit: audit, logger: logger}
}

// Get retorna a configuração do dono autenticado
// @Summary Consultar configurações
// @Description Retorna a configuração do sistema; os padrões são materializados na primeira leitura
// @Tags settings
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} sysconfig.Config
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /settings [get]
func (c *SystemConfigController) Get(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")

	cfg, err := c.configRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, repository.ErrConfigNotFound) {
			c.logger.Error("falha ao buscar configuração", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar configurações", err.Error()))
			return
		}
		cfg = sysconfig.NewDefault(ownerID)
		if err := c.configRepo.Save(ctx, cfg); err != nil {
			c.logger.Error("falha ao materializar configuração padrão", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar configurações", err.Error()))
			return
		}
	}

	ctx.JSON(http.StatusOK, cfg)
}

// Save grava a configuração do dono autenticado
// @Summary Salvar configurações
// @Description Grava integralmente a configuração do sistema (upsert)
// @Tags settings
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param config body dto.SystemConfigRequest true "Configurações"
// @Success 200 {object} sysconfig.Config
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /settings [post]
func (c *SystemConfigController) Save(ctx *gin.Context) {
	var req dto.SystemConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	action := "UPDATE"

	cfg, err := c.configRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, repository.ErrConfigNotFound) {
			c.logger.Error("falha ao buscar configuração", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar configurações", err.Error()))
			return
		}
		cfg = sysconfig.NewDefault(ownerID)
		action = "CREATE"
	}

	req.Apply(cfg)
	cfg.UpdatedAt = time.Now()

	if err := c.configRepo.Save(ctx, cfg); err != nil {
		c.logger.Error("falha ao salvar configuração", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar configurações", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "SYSTEM_CONFIG", cfg.ID, action, "Configurações do sistema", ctx.Request)
	ctx.JSON(http.StatusOK, cfg)
}
