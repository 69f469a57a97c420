package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/adapter/repository"
	entrydomain "github.com/gestaofacil/backend/internal/domain/entry"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

// EntryController gerencia os lançamentos financeiros avulsos
type EntryController struct {
	entryRepo entrydomain.Repository
	audit     *service.AuditService
	logger    logger.Logger
}

// NewEntryController cria uma nova instância de EntryController
func NewEntryController(entryRepo entrydomain.Repository, audit *service.AuditService, logger logger.Logger) *EntryController {
	return &EntryController{entryRepo: entryRepo, audit: audit, logger: logger}
}

// List lista os lançamentos do dono autenticado
// @Summary Listar lançamentos
// @Description Lista os lançamentos financeiros, do mais recente para o mais antigo
// @Tags entries
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} entry.Entry
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/entries [get]
func (c *EntryController) List(ctx *gin.Context) {
	entries, err := c.entryRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.logger.Error("falha ao listar lançamentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar lançamentos", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// Create cria um novo lançamento
// @Summary Criar lançamento
// @Description Cria um lançamento de receita ou despesa
// @Tags entries
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param entry body dto.EntryRequest true "Dados do lançamento"
// @Success 201 {object} entry.Entry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/entries [post]
func (c *EntryController) Create(ctx *gin.Context) {
	var req dto.EntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	e := entrydomain.New(ownerID)
	if err := req.Apply(e); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if err := c.entryRepo.Create(ctx, e); err != nil {
		c.logger.Error("falha ao criar lançamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar lançamento", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "ENTRY", e.ID, "CREATE",
		fmt.Sprintf("%s %s - %s", e.Type, service.FormatBRL(e.Amount), e.Description), ctx.Request)
	ctx.JSON(http.StatusCreated, e)
}

// Update atualiza um lançamento
// @Summary Atualizar lançamento
// @Description Atualiza os dados de um lançamento existente
// @Tags entries
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do lançamento"
// @Param entry body dto.EntryRequest true "Dados do lançamento"
// @Success 200 {object} entry.Entry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/entries/{id} [put]
func (c *EntryController) Update(ctx *gin.Context) {
	var req dto.EntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	e, err := c.entryRepo.FindByID(ctx, ownerID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "lançamento não encontrado", ""))
			return
		}
		c.logger.Error("falha ao buscar lançamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar lançamento", err.Error()))
		return
	}

	if err := req.Apply(e); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if err := c.entryRepo.Update(ctx, e); err != nil {
		c.logger.Error("falha ao atualizar lançamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar lançamento", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "ENTRY", e.ID, "UPDATE",
		fmt.Sprintf("%s %s - %s", e.Type, service.FormatBRL(e.Amount), e.Description), ctx.Request)
	ctx.JSON(http.StatusOK, e)
}

// Delete remove um lançamento
// @Summary Remover lançamento
// @Description Remove um lançamento do dono autenticado
// @Tags entries
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do lançamento"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/entries/{id} [delete]
func (c *EntryController) Delete(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	id := ctx.Param("id")

	if err := c.entryRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "lançamento não encontrado", ""))
			return
		}
		c.logger.Error("falha ao remover lançamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover lançamento", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "ENTRY", id, "DELETE", "Lançamento removido", ctx.Request)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Lançamento removido", nil))
}
