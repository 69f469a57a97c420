package controller

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/domain/catalog"
	"github.com/gestaofacil/backend/internal/nfe"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
	"github.com/gestaofacil/backend/pkg/money"
)

// markupFactor é o fator aplicado ao custo para sugerir o preço de venda
// de itens criados pela importação
var markupFactor = decimal.NewFromFloat(1.3)

// NfeController importa NFe de entrada para o estoque
type NfeController struct {
	catalogRepo  catalog.Repository
	movementRepo catalog.MovementRepository
	audit        *service.AuditService
	logger       logger.Logger
}

// NewNfeController cria uma nova instância de NfeController
func NewNfeController(catalogRepo catalog.Repository, movementRepo catalog.MovementRepository, audit *service.AuditService, logger logger.Logger) *NfeController {
	return &NfeController{
		catalogRepo:  catalogRepo,
		movementRepo: movementRepo,
		audit:        audit,
		logger:       logger,
	}
}

// Upload importa o XML de uma NFe para o catálogo e o estoque
// @Summary Importar NFe
// @Description Lê o XML da nota, atualiza itens existentes e cria os desconhecidos
// @Tags nfe
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param file formData file true "XML da NFe"
// @Success 200 {object} dto.NfeImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/nfe-import/upload [post]
func (c *NfeController) Upload(ctx *gin.Context) {
	file, _, err := ctx.Request.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "arquivo não enviado", err.Error()))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao ler arquivo", err.Error()))
		return
	}

	doc, err := nfe.Parse(data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "XML de NFe inválido", err.Error()))
		return
	}

	ownerID := ctx.GetString("owner_id")
	items, err := c.catalogRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		c.logger.Error("falha ao listar catálogo para importação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao importar NFe", err.Error()))
		return
	}

	resp := dto.NfeImportResponse{
		Success:    true,
		NfeNumber:  doc.Number,
		NfeKey:     doc.AccessKey,
		Issuer:     doc.IssuerName,
		TotalItems: len(doc.Products),
		Items:      make([]dto.NfeImportItemResult, 0, len(doc.Products)),
	}

	// Passada única sobre as linhas da nota; linhas já processadas não são
	// desfeitas quando uma posterior falha
	for _, product := range doc.Products {
		result, err := c.importProduct(ctx, ownerID, doc, product, items)
		if err != nil {
			c.logger.Error("falha ao importar item da NFe", "error", err,
				"nfe", doc.Number, "produto", product.Name)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao importar NFe", err.Error()))
			return
		}
		if result.Status == "created" {
			resp.ItemsImported++
		} else {
			resp.ItemsUpdated++
		}
		resp.Items = append(resp.Items, result)
	}

	c.audit.LogAction(ctx, ownerID, "NFE_IMPORT", doc.AccessKey, "IMPORT",
		fmt.Sprintf("NFe %s - %s (%d itens)", doc.Number, doc.IssuerName, len(doc.Products)), ctx.Request)
	ctx.JSON(http.StatusOK, resp)
}

// importProduct aplica uma linha da nota ao catálogo: entrada de estoque
// no item correspondente ou criação de um item novo
func (c *NfeController) importProduct(ctx *gin.Context, ownerID string, doc *nfe.Document, product nfe.Product, items []*catalog.Item) (dto.NfeImportItemResult, error) {
	qty, price, err := product.Amounts()
	if err != nil {
		return dto.NfeImportItemResult{}, err
	}

	matched := matchCatalogItem(product, items)

	if matched != nil {
		oldStock := matched.StockQuantity

		// Dados fiscais e custo acompanham a última nota recebida
		if price.IsPositive() {
			matched.CostPrice = decimal.NewNullDecimal(money.Scale(price))
		}
		if product.NCM != "" {
			matched.NCM = product.NCM
		}
		if product.CFOP != "" {
			matched.CFOP = product.CFOP
		}
		if err := c.catalogRepo.Update(ctx, matched); err != nil {
			return dto.NfeImportItemResult{}, err
		}

		updated, err := c.catalogRepo.AdjustStock(ctx, ownerID, matched.ID, qty)
		if err != nil {
			return dto.NfeImportItemResult{}, err
		}
		matched.StockQuantity = updated.StockQuantity

		reason := fmt.Sprintf("Entrada via NFe %s - %s", doc.Number, doc.IssuerName)
		movement := catalog.NewMovement(updated, catalog.MovementIn, qty, reason)
		if err := c.movementRepo.Create(ctx, movement); err != nil {
			return dto.NfeImportItemResult{}, err
		}

		return dto.NfeImportItemResult{
			Name:     matched.Name,
			Quantity: qty,
			Status:   "updated",
			OldStock: oldStock,
			NewStock: updated.StockQuantity,
		}, nil
	}

	item, err := catalog.NewItem(ownerID, product.Name, catalog.TypeProduct)
	if err != nil {
		return dto.NfeImportItemResult{}, err
	}
	item.SKU = product.Code
	if product.HasEAN() {
		item.QrCode = product.EAN
	}
	item.Unit = product.Unit
	item.NCM = product.NCM
	item.CFOP = product.CFOP
	item.CostPrice = decimal.NewNullDecimal(money.Scale(price))
	item.UnitPrice = money.Scale(price.Mul(markupFactor))
	item.StockQuantity = qty
	item.MinStock = decimal.Zero

	if err := c.catalogRepo.Create(ctx, item); err != nil {
		return dto.NfeImportItemResult{}, err
	}

	reason := fmt.Sprintf("Entrada inicial via NFe %s - %s", doc.Number, doc.IssuerName)
	movement := catalog.NewMovement(item, catalog.MovementIn, qty, reason)
	if err := c.movementRepo.Create(ctx, movement); err != nil {
		return dto.NfeImportItemResult{}, err
	}

	return dto.NfeImportItemResult{
		Name:     item.Name,
		Quantity: qty,
		Status:   "created",
		OldStock: decimal.Zero,
		NewStock: item.StockQuantity,
	}, nil
}

// matchCatalogItem procura o item correspondente à linha da nota: primeiro
// pelo EAN ("SEM GTIN" é ignorado), depois pelo SKU
func matchCatalogItem(product nfe.Product, items []*catalog.Item) *catalog.Item {
	if product.HasEAN() {
		for _, item := range items {
			if item.QrCode != "" && item.QrCode == product.EAN {
				return item
			}
		}
	}
	if product.Code != "" {
		for _, item := range items {
			if item.SKU != "" && strings.EqualFold(item.SKU, product.Code) {
				return item
			}
		}
	}
	return nil
}
