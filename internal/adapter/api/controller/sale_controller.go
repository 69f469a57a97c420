package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/adapter/repository"
	"github.com/gestaofacil/backend/internal/domain/catalog"
	saledomain "github.com/gestaofacil/backend/internal/domain/sale"
	"github.com/gestaofacil/backend/internal/domain/sysconfig"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

// SaleController gerencia as requisições relacionadas a vendas
type SaleController struct {
	saleRepo     saledomain.Repository
	catalogRepo  catalog.Repository
	movementRepo catalog.MovementRepository
	configRepo   sysconfig.Repository
	audit        *service.AuditService
	pdf          *service.PDFService
	logger       logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(saleRepo saledomain.Repository, catalogRepo catalog.Repository, movementRepo catalog.MovementRepository, configRepo sysconfig.Repository, audit *service.AuditService, pdf *service.PDFService, logger logger.Logger) *SaleController {
	return &SaleController{
		saleRepo:     saleRepo,
		catalogRepo:  catalogRepo,
		movementRepo: movementRepo,
		configRepo:   configRepo,
		audit:        audit,
		pdf:          pdf,
		logger:       logger,
	}
}

// List lista as vendas do dono autenticado
// @Summary Listar vendas
// @Description Lista as vendas com filtros opcionais de status e busca textual
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param status query string false "Filtro por status (PENDING, PAID, CANCELLED)"
// @Param search query string false "Busca por cliente ou descrição de item"
// @Success 200 {array} sale.Sale
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")

	var sales []*saledomain.Sale
	var err error
	switch {
	case ctx.Query("search") != "":
		sales, err = c.saleRepo.Search(ctx, ownerID, ctx.Query("search"))
	case ctx.Query("status") != "":
		status, ok := saledomain.ValidStatus(ctx.Query("status"))
		if !ok {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status inválido", ""))
			return
		}
		sales, err = c.saleRepo.FindByOwnerAndStatus(ctx, ownerID, status)
	default:
		sales, err = c.saleRepo.FindByOwner(ctx, ownerID)
	}
	if err != nil {
		c.logger.Error("falha ao listar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar vendas", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, sales)
}

// Get retorna uma venda pelo ID
// @Summary Consultar venda
// @Description Retorna uma venda com suas linhas
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} sale.Sale
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	s, err := c.saleRepo.FindByID(ctx, ctx.GetString("owner_id"), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, s)
}

// Create registra uma nova venda
// @Summary Criar venda
// @Description Cria uma venda, valida o estoque das linhas de produto e baixa o estoque
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param sale body dto.SaleRequest true "Dados da venda"
// @Success 201 {object} sale.Sale
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	s := saledomain.New(ownerID)
	if err := req.Apply(s); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	// Valida o estoque de todas as linhas de produto antes de gravar:
	// qualquer falta rejeita a venda inteira
	products, err := c.resolveProducts(ctx, ownerID, s)
	if err != nil {
		if errors.Is(err, catalog.ErrInsufficientStock) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "estoque insuficiente", err.Error()))
			return
		}
		c.logger.Error("falha ao validar estoque da venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao validar estoque", err.Error()))
		return
	}

	if err := c.saleRepo.Create(ctx, s); err != nil {
		c.logger.Error("falha ao criar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar venda", err.Error()))
		return
	}

	c.decrementStock(ctx, ownerID, s, products)
	c.audit.LogAction(ctx, ownerID, "SALE", s.ID, "CREATE",
		fmt.Sprintf("Venda para %s - %s", s.CustomerName, service.FormatBRL(s.Total)), ctx.Request)
	ctx.JSON(http.StatusCreated, s)
}

// Update atualiza uma venda existente
// @Summary Atualizar venda
// @Description Substitui as linhas e recalcula os totais; o estoque não é reprocessado
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Param sale body dto.SaleRequest true "Dados da venda"
// @Success 200 {object} sale.Sale
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/sales/{id} [put]
func (c *SaleController) Update(ctx *gin.Context) {
	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	s, err := c.saleRepo.FindByID(ctx, ownerID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	if err := req.Apply(s); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}
	s.UpdatedAt = time.Now()

	if err := c.saleRepo.Update(ctx, s); err != nil {
		c.logger.Error("falha ao atualizar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar venda", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "SALE", s.ID, "UPDATE",
		fmt.Sprintf("Venda para %s - %s", s.CustomerName, service.FormatBRL(s.Total)), ctx.Request)
	ctx.JSON(http.StatusOK, s)
}

// UpdateStatus troca o status de uma venda
// @Summary Atualizar status da venda
// @Description Altera o status de uma venda (PENDING, PAID, CANCELLED)
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Param status query string true "Novo status"
// @Success 200 {object} sale.Sale
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/sales/{id}/status [patch]
func (c *SaleController) UpdateStatus(ctx *gin.Context) {
	status, ok := saledomain.ValidStatus(ctx.Query("status"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status inválido", ""))
		return
	}

	ownerID := ctx.GetString("owner_id")
	s, err := c.saleRepo.UpdateStatus(ctx, ownerID, ctx.Param("id"), status)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", ""))
			return
		}
		c.logger.Error("falha ao atualizar status da venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar status", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "SALE", s.ID, "STATUS_CHANGE", "Status: "+string(status), ctx.Request)
	ctx.JSON(http.StatusOK, s)
}

// Delete remove uma venda
// @Summary Remover venda
// @Description Remove uma venda e suas linhas
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/sales/{id} [delete]
func (c *SaleController) Delete(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	id := ctx.Param("id")

	if err := c.saleRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", ""))
			return
		}
		c.logger.Error("falha ao remover venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover venda", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "SALE", id, "DELETE", "Venda removida", ctx.Request)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Venda removida", nil))
}

// PDF gera o PDF de uma venda
// @Summary PDF da venda
// @Description Gera o documento da venda em PDF
// @Tags sales
// @Produce application/pdf
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {file} binary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/sales/{id}/pdf [get]
func (c *SaleController) PDF(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	s, err := c.saleRepo.FindByID(ctx, ownerID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	data, err := c.pdf.SalePDF(s, c.loadConfig(ctx, ownerID))
	if err != nil {
		c.logger.Error("falha ao gerar PDF da venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar PDF", err.Error()))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=venda-%s.pdf", s.ID))
	ctx.Data(http.StatusOK, "application/pdf", data)
}

// History retorna o histórico de auditoria de uma venda
// @Summary Histórico da venda
// @Description Lista as ações registradas sobre a venda
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {array} audit.Log
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/sales/{id}/history [get]
func (c *SaleController) History(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	id := ctx.Param("id")
	if _, err := c.saleRepo.FindByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", ""))
			return
		}
		c.logger.Error("falha ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	logs, err := c.audit.EntityHistory(ctx, "SALE", id)
	if err != nil {
		c.logger.Error("falha ao buscar histórico da venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar histórico", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, logs)
}

// Stats retorna os números agregados de vendas
// @Summary Estatísticas de vendas
// @Description Retorna contagens e faturamento por status
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.SaleStatsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /finance/sales/stats [get]
func (c *SaleController) Stats(ctx *gin.Context) {
	sales, err := c.saleRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.logger.Error("falha ao listar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao calcular estatísticas", err.Error()))
		return
	}

	stats := dto.SaleStatsResponse{
		TotalRevenue:   decimal.Zero,
		PendingRevenue: decimal.Zero,
	}
	for _, s := range sales {
		stats.TotalSales++
		switch s.Status {
		case saledomain.StatusPending:
			stats.PendingSales++
			stats.PendingRevenue = stats.PendingRevenue.Add(s.Total)
		case saledomain.StatusPaid:
			stats.PaidSales++
			stats.TotalRevenue = stats.TotalRevenue.Add(s.Total)
		}
	}
	ctx.JSON(http.StatusOK, stats)
}

// resolveProducts carrega os itens de catálogo das linhas de produto e
// valida o estoque disponível
func (c *SaleController) resolveProducts(ctx *gin.Context, ownerID string, s *saledomain.Sale) (map[string]*catalog.Item, error) {
	products := make(map[string]*catalog.Item)
	for _, line := range s.Items {
		if line.ProductID == "" {
			continue
		}
		item, ok := products[line.ProductID]
		if !ok {
			found, err := c.catalogRepo.FindByID(ctx, ownerID, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrCatalogItemNotFound) {
					// Linha com referência morta segue como texto livre
					continue
				}
				return nil, err
			}
			item = found
			products[line.ProductID] = item
		}
		if item.Type != catalog.TypeProduct {
			continue
		}
		if item.StockQuantity.LessThan(line.Quantity) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrInsufficientStock, item.Name)
		}
	}
	return products, nil
}

// decrementStock baixa o estoque das linhas de produto e registra as
// movimentações. Falhas individuais são registradas no log sem desfazer a
// venda já gravada.
func (c *SaleController) decrementStock(ctx *gin.Context, ownerID string, s *saledomain.Sale, products map[string]*catalog.Item) {
	reason := fmt.Sprintf("Venda #%s - %s", shortID(s.ID), s.CustomerName)
	for _, line := range s.Items {
		item, ok := products[line.ProductID]
		if !ok || item.Type != catalog.TypeProduct {
			continue
		}
		updated, err := c.catalogRepo.AdjustStock(ctx, ownerID, item.ID, line.Quantity.Neg())
		if err != nil {
			c.logger.Error("falha ao baixar estoque da venda", "error", err,
				"saleId", s.ID, "itemId", item.ID)
			continue
		}
		movement := catalog.NewMovement(updated, catalog.MovementOut, line.Quantity, reason)
		if err := c.movementRepo.Create(ctx, movement); err != nil {
			c.logger.Error("falha ao registrar movimentação da venda", "error", err,
				"saleId", s.ID, "itemId", item.ID)
		}
	}
}

// loadConfig busca a configuração do dono para o cabeçalho do PDF; ausência
// não impede a geração
func (c *SaleController) loadConfig(ctx *gin.Context, ownerID string) *sysconfig.Config {
	cfg, err := c.configRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil
	}
	return cfg
}

// shortID devolve o prefixo legível de um UUID para mensagens e motivos
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
