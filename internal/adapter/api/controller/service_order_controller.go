package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/adapter/repository"
	sodomain "github.com/gestaofacil/backend/internal/domain/serviceorder"
	"github.com/gestaofacil/backend/internal/domain/sysconfig"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
	"github.com/gestaofacil/backend/pkg/owner"
)

// ServiceOrderController gerencia as requisições de ordens de serviço
type ServiceOrderController struct {
	orderRepo  sodomain.Repository
	configRepo sysconfig.Repository
	audit      *service.AuditService
	pdf        *service.PDFService
	mailer     *service.Mailer
	logger     logger.Logger
}

// NewServiceOrderController cria uma nova instância de ServiceOrderController
func NewServiceOrderController(orderRepo sodomain.Repository, configRepo sysconfig.Repository, audit *service.AuditService, pdf *service.PDFService, mailer *service.Mailer, logger logger.Logger) *ServiceOrderController {
	return &ServiceOrderController{
		orderRepo:  orderRepo,
		configRepo: configRepo,
		audit:      audit,
		pdf:        pdf,
		mailer:     mailer,
		logger:     logger,
	}
}

// Create cria uma nova ordem de serviço
// @Summary Criar ordem de serviço
// @Description Cria uma ordem de serviço com os dados do cliente congelados
// @Tags service-orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param order body dto.ServiceOrderRequest true "Dados da ordem"
// @Success 201 {object} serviceorder.ServiceOrder
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/service-orders [post]
func (c *ServiceOrderController) Create(ctx *gin.Context) {
	var req dto.ServiceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	o := sodomain.New(ownerID)
	if err := req.Apply(o); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if err := c.orderRepo.Create(ctx, o); err != nil {
		c.logger.Error("falha ao criar ordem de serviço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar ordem de serviço", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "SERVICE_ORDER", o.ID, "CREATE",
		fmt.Sprintf("OS para %s - %s", o.CustomerName, service.FormatBRL(o.Total)), ctx.Request)
	ctx.JSON(http.StatusCreated, o)
}

// List lista as ordens de serviço
// @Summary Listar ordens de serviço
// @Description Lista as ordens com filtros opcionais de status e busca textual
// @Tags service-orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param status query string false "Filtro por status"
// @Param search query string false "Busca por cliente ou descrição"
// @Success 200 {array} serviceorder.ServiceOrder
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/service-orders [get]
func (c *ServiceOrderController) List(ctx *gin.Context) {
	orders, err := c.orderRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.logger.Error("falha ao listar ordens de serviço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar ordens de serviço", err.Error()))
		return
	}

	if status, ok := sodomain.ValidStatus(ctx.Query("status")); ok {
		filtered := make([]*sodomain.ServiceOrder, 0)
		for _, o := range orders {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	if search := strings.ToLower(strings.TrimSpace(ctx.Query("search"))); search != "" {
		filtered := make([]*sodomain.ServiceOrder, 0)
		for _, o := range orders {
			if strings.Contains(strings.ToLower(o.CustomerName), search) ||
				strings.Contains(strings.ToLower(o.Description), search) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	ctx.JSON(http.StatusOK, orders)
}

// Get retorna uma ordem de serviço pelo ID
// @Summary Consultar ordem de serviço
// @Description Retorna uma ordem com suas linhas
// @Tags service-orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da ordem"
// @Success 200 {object} serviceorder.ServiceOrder
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/service-orders/{id} [get]
func (c *ServiceOrderController) Get(ctx *gin.Context) {
	o, err := c.orderRepo.FindByID(ctx, ctx.GetString("owner_id"), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrServiceOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "ordem de serviço não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar ordem de serviço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar ordem de serviço", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, o)
}

// Update atualiza uma ordem de serviço
// @Summary Atualizar ordem de serviço
// @Description Substitui as linhas e recalcula os custos
// @Tags service-orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da ordem"
// @Param order body dto.ServiceOrderRequest true "Dados da ordem"
// @Success 200 {object} serviceorder.ServiceOrder
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/service-orders/{id} [put]
func (c *ServiceOrderController) Update(ctx *gin.Context) {
	var req dto.ServiceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	o, err := c.orderRepo.FindByID(ctx, ownerID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrServiceOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "ordem de serviço não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar ordem de serviço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar ordem de serviço", err.Error()))
		return
	}

	if err := req.Apply(o); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}
	o.UpdatedAt = time.Now()

	if err := c.orderRepo.Update(ctx, o); err != nil {
		c.logger.Error("falha ao atualizar ordem de serviço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar ordem de serviço", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "SERVICE_ORDER", o.ID, "UPDATE",
		fmt.Sprintf("OS para %s - %s", o.CustomerName, service.FormatBRL(o.Total)), ctx.Request)
	ctx.JSON(http.StatusOK, o)
}

// UpdateStatus troca o status de uma ordem de serviço
// @Summary Atualizar status da ordem
// @Description Altera o status; a data de conclusão é definida na primeira conclusão
// @Tags service-orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da ordem"
// @Param status body dto.ServiceOrderStatusRequest true "Novo status"
// @Success 200 {object} serviceorder.ServiceOrder
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/service-orders/{id}/status [put]
func (c *ServiceOrderController) UpdateStatus(ctx *gin.Context) {
	var req dto.ServiceOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}
	status, ok := sodomain.ValidStatus(req.Status)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status inválido", ""))
		return
	}

	principal := owner.FromGin(ctx)
	o, err := c.orderRepo.FindByID(ctx, principal.ID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrServiceOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "ordem de serviço não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar ordem de serviço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar ordem de serviço", err.Error()))
		return
	}

	oldStatus := o.ChangeStatus(status)
	if err := c.orderRepo.Update(ctx, o); err != nil {
		c.logger.Error("falha ao atualizar status da ordem", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar status", err.Error()))
		return
	}

	c.audit.LogChange(ctx, principal.ID, "SERVICE_ORDER", o.ID, "STATUS_CHANGE",
		fmt.Sprintf("%s → %s", oldStatus.Label(), o.Status.Label()),
		string(oldStatus), string(o.Status), ctx.Request)

	// Notificação por email é melhor-esforço
	c.mailer.NotifyServiceOrderStatus(principal.Email, o, oldStatus)

	ctx.JSON(http.StatusOK, o)
}

// Delete remove uma ordem de serviço
// @Summary Remover ordem de serviço
// @Description Remove uma ordem e suas linhas
// @Tags service-orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da ordem"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/service-orders/{id} [delete]
func (c *ServiceOrderController) Delete(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	id := ctx.Param("id")

	if err := c.orderRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrServiceOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "ordem de serviço não encontrada", ""))
			return
		}
		c.logger.Error("falha ao remover ordem de serviço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover ordem de serviço", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "SERVICE_ORDER", id, "DELETE", "Ordem de serviço removida", ctx.Request)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Ordem de serviço removida", nil))
}

// PDF gera o PDF de uma ordem de serviço
// @Summary PDF da ordem
// @Description Gera o documento da ordem de serviço em PDF
// @Tags service-orders
// @Produce application/pdf
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da ordem"
// @Success 200 {file} binary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/service-orders/{id}/pdf [get]
func (c *ServiceOrderController) PDF(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	o, err := c.orderRepo.FindByID(ctx, ownerID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrServiceOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "ordem de serviço não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar ordem de serviço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar ordem de serviço", err.Error()))
		return
	}

	var cfg *sysconfig.Config
	if found, err := c.configRepo.FindByOwner(ctx, ownerID); err == nil {
		cfg = found
	}
	data, err := c.pdf.ServiceOrderPDF(o, cfg)
	if err != nil {
		c.logger.Error("falha ao gerar PDF da ordem", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar PDF", err.Error()))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=os-%s.pdf", o.ID))
	ctx.Data(http.StatusOK, "application/pdf", data)
}

// History retorna o histórico de auditoria de uma ordem
// @Summary Histórico da ordem
// @Description Lista as ações registradas sobre a ordem de serviço
// @Tags service-orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da ordem"
// @Success 200 {array} audit.Log
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/service-orders/{id}/history [get]
func (c *ServiceOrderController) History(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	id := ctx.Param("id")
	if _, err := c.orderRepo.FindByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrServiceOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "ordem de serviço não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar ordem de serviço", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar ordem de serviço", err.Error()))
		return
	}

	logs, err := c.audit.EntityHistory(ctx, "SERVICE_ORDER", id)
	if err != nil {
		c.logger.Error("falha ao buscar histórico da ordem", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar histórico", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, logs)
}

// Stats retorna os números agregados de ordens de serviço
// @Summary Estatísticas das ordens
// @Description Retorna contagens por status
// @Tags service-orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.ServiceOrderStatsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /finance/service-orders/stats [get]
func (c *ServiceOrderController) Stats(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")

	var stats dto.ServiceOrderStatsResponse
	var err error
	if stats.Pending, err = c.orderRepo.CountByOwnerAndStatus(ctx, ownerID, sodomain.StatusPending); err != nil {
		c.statsError(ctx, err)
		return
	}
	if stats.InProgress, err = c.orderRepo.CountByOwnerAndStatus(ctx, ownerID, sodomain.StatusInProgress); err != nil {
		c.statsError(ctx, err)
		return
	}
	if stats.Completed, err = c.orderRepo.CountByOwnerAndStatus(ctx, ownerID, sodomain.StatusCompleted); err != nil {
		c.statsError(ctx, err)
		return
	}

	orders, err := c.orderRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		c.statsError(ctx, err)
		return
	}
	stats.Total = int64(len(orders))
	ctx.JSON(http.StatusOK, stats)
}

func (c *ServiceOrderController) statsError(ctx *gin.Context, err error) {
	c.logger.Error("falha ao calcular estatísticas de ordens", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao calcular estatísticas", err.Error()))
}
