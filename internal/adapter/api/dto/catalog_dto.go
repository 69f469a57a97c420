package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/domain/catalog"
)

// CatalogItemRequest representa os dados de criação/edição de item do catálogo
type CatalogItemRequest struct {
	Name               string              `json:"name" binding:"required"`
	SKU                string              `json:"sku"`
	QrCode             string              `json:"qrCode"`
	Type               string              `json:"type" binding:"required,oneof=PRODUCT SERVICE"`
	Unit               string              `json:"unit"`
	UnitPrice          decimal.Decimal     `json:"unitPrice"`
	CostPrice          decimal.NullDecimal `json:"costPrice"`
	Description        string              `json:"description"`
	ProductImageBase64 string              `json:"productImageBase64"`
	NCM                string              `json:"ncm"`
	CEST               string              `json:"cest"`
	CFOP               string              `json:"cfop"`
	IcmsRate           decimal.NullDecimal `json:"icmsRate"`
	IpiRate            decimal.NullDecimal `json:"ipiRate"`
	StockQuantity      decimal.NullDecimal `json:"stockQuantity"`
	MinStock           decimal.NullDecimal `json:"minStock"`
}

// Apply copia os campos da requisição para o item. O estoque em si não é
// alterado aqui: movimentações passam pelo ajuste atômico.
func (r *CatalogItemRequest) Apply(item *catalog.Item) {
	item.Name = r.Name
	item.SKU = r.SKU
	item.QrCode = r.QrCode
	item.Type = catalog.ItemType(r.Type)
	item.Unit = r.Unit
	item.UnitPrice = r.UnitPrice
	item.CostPrice = r.CostPrice
	item.Description = r.Description
	item.ProductImageBase64 = r.ProductImageBase64
	item.NCM = r.NCM
	item.CEST = r.CEST
	item.CFOP = r.CFOP
	item.IcmsRate = r.IcmsRate
	item.IpiRate = r.IpiRate
	if r.MinStock.Valid {
		item.MinStock = r.MinStock.Decimal
	}
}

// StockAdjustmentRequest representa uma movimentação manual de estoque
type StockAdjustmentRequest struct {
	Type     string          `json:"type" binding:"required,oneof=IN OUT"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Reason   string          `json:"reason"`
}
