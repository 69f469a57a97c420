package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/adapter/repository"
	quotedomain "github.com/gestaofacil/backend/internal/domain/quote"
	"github.com/gestaofacil/backend/internal/domain/sysconfig"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

// QuoteController gerencia as requisições relacionadas a orçamentos
type QuoteController struct {
	quoteRepo  quotedomain.Repository
	configRepo sysconfig.Repository
	audit      *service.AuditService
	pdf        *service.PDFService
	logger     logger.Logger
}

// NewQuoteController cria uma nova instância de QuoteController
func NewQuoteController(quoteRepo quotedomain.Repository, configRepo sysconfig.Repository, audit *service.AuditService, pdf *service.PDFService, logger logger.Logger) *QuoteController {
	return &QuoteController{
		quoteRepo:  quoteRepo,
		configRepo: configRepo,
		audit:      audit,
		pdf:        pdf,
		logger:     logger,
	}
}

// List lista os orçamentos do dono autenticado
// @Summary Listar orçamentos
// @Description Lista os orçamentos, do mais recente para o mais antigo
// @Tags quotes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} quote.Quote
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/quotes [get]
func (c *QuoteController) List(ctx *gin.Context) {
	quotes, err := c.quoteRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.logger.Error("falha ao listar orçamentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar orçamentos", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, quotes)
}

// Create cria um novo orçamento
// @Summary Criar orçamento
// @Description Cria um orçamento com suas linhas
// @Tags quotes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param quote body dto.QuoteRequest true "Dados do orçamento"
// @Success 201 {object} quote.Quote
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/quotes [post]
func (c *QuoteController) Create(ctx *gin.Context) {
	var req dto.QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	q := quotedomain.New(ownerID)
	if err := req.Apply(q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}
	if q.IssueDate.IsZero() {
		q.IssueDate = time.Now()
	}

	if err := c.quoteRepo.Create(ctx, q); err != nil {
		c.logger.Error("falha ao criar orçamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar orçamento", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "QUOTE", q.ID, "CREATE",
		fmt.Sprintf("Orçamento para %s - %s", q.CustomerName, service.FormatBRL(q.Total)), ctx.Request)
	ctx.JSON(http.StatusCreated, q)
}

// Update atualiza um orçamento
// @Summary Atualizar orçamento
// @Description Substitui as linhas e recalcula os totais
// @Tags quotes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do orçamento"
// @Param quote body dto.QuoteRequest true "Dados do orçamento"
// @Success 200 {object} quote.Quote
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/quotes/{id} [put]
func (c *QuoteController) Update(ctx *gin.Context) {
	var req dto.QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	q, err := c.quoteRepo.FindByID(ctx, ownerID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "orçamento não encontrado", ""))
			return
		}
		c.logger.Error("falha ao buscar orçamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar orçamento", err.Error()))
		return
	}

	oldStatus := q.Status
	if err := req.Apply(q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if err := c.quoteRepo.Update(ctx, q); err != nil {
		c.logger.Error("falha ao atualizar orçamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar orçamento", err.Error()))
		return
	}

	if oldStatus != q.Status {
		c.audit.LogChange(ctx, ownerID, "QUOTE", q.ID, "STATUS_CHANGE",
			"Status: "+string(q.Status), string(oldStatus), string(q.Status), ctx.Request)
	} else {
		c.audit.LogAction(ctx, ownerID, "QUOTE", q.ID, "UPDATE",
			fmt.Sprintf("Orçamento para %s - %s", q.CustomerName, service.FormatBRL(q.Total)), ctx.Request)
	}
	ctx.JSON(http.StatusOK, q)
}

// Delete remove um orçamento
// @Summary Remover orçamento
// @Description Remove um orçamento e suas linhas
// @Tags quotes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do orçamento"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/quotes/{id} [delete]
func (c *QuoteController) Delete(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	id := ctx.Param("id")

	if err := c.quoteRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "orçamento não encontrado", ""))
			return
		}
		c.logger.Error("falha ao remover orçamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover orçamento", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "QUOTE", id, "DELETE", "Orçamento removido", ctx.Request)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Orçamento removido", nil))
}

// PDF gera o PDF de um orçamento
// @Summary PDF do orçamento
// @Description Gera o documento do orçamento em PDF
// @Tags quotes
// @Produce application/pdf
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do orçamento"
// @Success 200 {file} binary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/quotes/{id}/pdf [get]
func (c *QuoteController) PDF(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	q, err := c.quoteRepo.FindByID(ctx, ownerID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "orçamento não encontrado", ""))
			return
		}
		c.logger.Error("falha ao buscar orçamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar orçamento", err.Error()))
		return
	}

	var cfg *sysconfig.Config
	if found, err := c.configRepo.FindByOwner(ctx, ownerID); err == nil {
		cfg = found
	}
	data, err := c.pdf.QuotePDF(q, cfg)
	if err != nil {
		c.logger.Error("falha ao gerar PDF do orçamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar PDF", err.Error()))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orcamento-%s.pdf", q.ID))
	ctx.Data(http.StatusOK, "application/pdf", data)
}

// History retorna o histórico de auditoria de um orçamento
// @Summary Histórico do orçamento
// @Description Lista as ações registradas sobre o orçamento
// @Tags quotes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do orçamento"
// @Success 200 {array} audit.Log
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/quotes/{id}/history [get]
func (c *QuoteController) History(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	id := ctx.Param("id")
	if _, err := c.quoteRepo.FindByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "orçamento não encontrado", ""))
			return
		}
		c.logger.Error("falha ao buscar orçamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar orçamento", err.Error()))
		return
	}

	logs, err := c.audit.EntityHistory(ctx, "QUOTE", id)
	if err != nil {
		c.logger.Error("falha ao buscar histórico do orçamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar histórico", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, logs)
}
