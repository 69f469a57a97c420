package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/adapter/repository"
	"github.com/gestaofacil/backend/internal/domain/catalog"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

// CatalogController gerencia o catálogo de produtos e serviços e o estoque
type CatalogController struct {
	catalogRepo  catalog.Repository
	movementRepo catalog.MovementRepository
	audit        *service.AuditService
	logger       logger.Logger
}

// NewCatalogController cria uma nova instância de CatalogController
func NewCatalogController(catalogRepo catalog.Repository, movementRepo catalog.MovementRepository, audit *service.AuditService, logger logger.Logger) *CatalogController {
	return &CatalogController{
		catalogRepo:  catalogRepo,
		movementRepo: movementRepo,
		audit:        audit,
		logger:       logger,
	}
}

// List lista os itens do catálogo
// @Summary Listar catálogo
// @Description Lista os itens do catálogo em ordem alfabética
// @Tags catalog
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} catalog.Item
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/catalog [get]
func (c *CatalogController) List(ctx *gin.Context) {
	items, err := c.catalogRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.logger.Error("falha ao listar catálogo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar catálogo", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// GetByQrCode busca um item pelo código de barras
// @Summary Buscar por código de barras
// @Description Busca um item do catálogo pelo código de barras (EAN)
// @Tags catalog
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param code path string true "Código de barras"
// @Success 200 {object} catalog.Item
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /finance/catalog/qrcode/{code} [get]
func (c *CatalogController) GetByQrCode(ctx *gin.Context) {
	item, err := c.catalogRepo.FindByQrCode(ctx, ctx.GetString("owner_id"), ctx.Param("code"))
	if err != nil {
		if errors.Is(err, repository.ErrCatalogItemNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "item não encontrado", ""))
			return
		}
		c.logger.Error("falha ao buscar item por código", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar item", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// Create cria um novo item no catálogo
// @Summary Criar item
// @Description Cria um novo produto ou serviço no catálogo
// @Tags catalog
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param item body dto.CatalogItemRequest true "Dados do item"
// @Success 201 {object} catalog.Item
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/catalog [post]
func (c *CatalogController) Create(ctx *gin.Context) {
	var req dto.CatalogItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}
	if err := catalog.ValidateImage(req.ProductImageBase64); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "imagem inválida", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	item, err := catalog.NewItem(ownerID, req.Name, catalog.ItemType(req.Type))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar item", err.Error()))
		return
	}
	req.Apply(item)
	if req.StockQuantity.Valid {
		item.StockQuantity = req.StockQuantity.Decimal
	}

	if err := c.catalogRepo.Create(ctx, item); err != nil {
		c.logger.Error("falha ao criar item do catálogo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar item", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "CATALOG_ITEM", item.ID, "CREATE", "Item "+item.Name, ctx.Request)
	ctx.JSON(http.StatusCreated, item)
}

// Update atualiza um item do catálogo
// @Summary Atualizar item
// @Description Atualiza os dados de um item (o estoque só muda por movimentação)
// @Tags catalog
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do item"
// @Param item body dto.CatalogItemRequest true "Dados do item"
// @Success 200 {object} catalog.Item
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/catalog/{id} [put]
func (c *CatalogController) Update(ctx *gin.Context) {
	var req dto.CatalogItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}
	if err := catalog.ValidateImage(req.ProductImageBase64); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "imagem inválida", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	item, err := c.catalogRepo.FindByID(ctx, ownerID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCatalogItemNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "item não encontrado", ""))
			return
		}
		c.logger.Error("falha ao buscar item do catálogo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar item", err.Error()))
		return
	}

	req.Apply(item)
	if err := c.catalogRepo.Update(ctx, item); err != nil {
		c.logger.Error("falha ao atualizar item do catálogo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar item", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "CATALOG_ITEM", item.ID, "UPDATE", "Item "+item.Name, ctx.Request)
	ctx.JSON(http.StatusOK, item)
}

// Delete remove um item do catálogo
// @Summary Remover item
// @Description Remove um item do catálogo do dono autenticado
// @Tags catalog
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do item"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/catalog/{id} [delete]
func (c *CatalogController) Delete(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	id := ctx.Param("id")

	if err := c.catalogRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrCatalogItemNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "item não encontrado", ""))
			return
		}
		c.logger.Error("falha ao remover item do catálogo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover item", err.Error()))
		return
	}

	c.audit.LogAction(ctx, ownerID, "CATALOG_ITEM", id, "DELETE", "Item removido", ctx.Request)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Item removido", nil))
}

// AdjustStock registra uma movimentação manual de estoque
// @Summary Ajustar estoque
// @Description Aplica uma entrada ou saída de estoque de forma atômica
// @Tags catalog
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do item"
// @Param adjustment body dto.StockAdjustmentRequest true "Movimentação"
// @Success 200 {object} catalog.Item
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/catalog/{id}/stock-adjust [post]
func (c *CatalogController) AdjustStock(ctx *gin.Context) {
	var req dto.StockAdjustmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}
	if !req.Quantity.IsPositive() {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "quantidade deve ser positiva", ""))
		return
	}

	ownerID := ctx.GetString("owner_id")
	movType := catalog.MovementType(req.Type)
	delta := catalog.SignedDelta(movType, req.Quantity)

	item, err := c.catalogRepo.AdjustStock(ctx, ownerID, ctx.Param("id"), delta)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInsufficientStock):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "estoque insuficiente", ""))
		case errors.Is(err, repository.ErrCatalogItemNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "item não encontrado", ""))
		default:
			c.logger.Error("falha ao ajustar estoque", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao ajustar estoque", err.Error()))
		}
		return
	}

	movement := catalog.NewMovement(item, movType, req.Quantity, req.Reason)
	if err := c.movementRepo.Create(ctx, movement); err != nil {
		c.logger.Error("falha ao registrar movimentação", "error", err, "itemId", item.ID)
	}

	c.audit.LogAction(ctx, ownerID, "CATALOG_ITEM", item.ID, "STOCK_ADJUST",
		string(movType)+" "+req.Quantity.String()+" - "+item.Name, ctx.Request)
	ctx.JSON(http.StatusOK, item)
}

// LowStock lista os itens com estoque abaixo do mínimo
// @Summary Estoque baixo
// @Description Lista os itens com estoque menor ou igual ao mínimo
// @Tags catalog
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} catalog.Item
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/catalog/stock/low [get]
func (c *CatalogController) LowStock(ctx *gin.Context) {
	items, err := c.catalogRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.logger.Error("falha ao listar catálogo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar catálogo", err.Error()))
		return
	}

	low := make([]*catalog.Item, 0)
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	ctx.JSON(http.StatusOK, low)
}

// Movements lista as movimentações de estoque
// @Summary Movimentações de estoque
// @Description Lista as movimentações de estoque, da mais recente para a mais antiga
// @Tags catalog
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} catalog.Movement
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/catalog/stock/movements [get]
func (c *CatalogController) Movements(ctx *gin.Context) {
	movements, err := c.movementRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.logger.Error("falha ao listar movimentações", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar movimentações", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, movements)
}
