package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("nome não pode ser vazio")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrInvalidImage      = errors.New("formato de imagem inválido")
	ErrImageTooLarge     = errors.New("imagem muito grande")
)

// MaxImageBase64Length é o tamanho máximo da imagem do produto em data-URI
const MaxImageBase64Length = 2_000_000

// ItemType define o tipo do item do catálogo
type ItemType string

const (
	TypeProduct ItemType = "PRODUCT" // Produto (controla estoque)
	TypeService ItemType = "SERVICE" // Serviço (sem estoque)
)

// MovementType define a direção de uma movimentação de estoque
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// Item representa um item do catálogo (produto ou serviço)
type Item struct {
	ID                 string              `json:"id"`
	OwnerID            string              `json:"-"`
	Name               string              `json:"name"`
	SKU                string              `json:"sku"`
	QrCode             string              `json:"qrCode"` // Código de barras / EAN
	Type               ItemType            `json:"type"`
	Unit               string              `json:"unit"`
	UnitPrice          decimal.Decimal     `json:"unitPrice"`
	CostPrice          decimal.NullDecimal `json:"costPrice"`
	Description        string              `json:"description"`
	ProductImageBase64 string              `json:"productImageBase64"`
	NCM                string              `json:"ncm"`  // Nomenclatura Comum do Mercosul
	CEST               string              `json:"cest"` // Código Especificador da Substituição Tributária
	CFOP               string              `json:"cfop"` // Código Fiscal de Operações e Prestações
	IcmsRate           decimal.NullDecimal `json:"icmsRate"`
	IpiRate            decimal.NullDecimal `json:"ipiRate"`
	StockQuantity      decimal.Decimal     `json:"stockQuantity"`
	MinStock           decimal.Decimal     `json:"minStock"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// NewItem cria um novo item do catálogo
func NewItem(ownerID, name string, itemType ItemType) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Item{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(name),
		Type:          itemType,
		StockQuantity: decimal.Zero,
		MinStock:      decimal.Zero,
		CreatedAt:     time.Now(),
	}, nil
}

// IsLowStock verifica se o item está com estoque abaixo do mínimo.
// O limite é inclusivo: estoque igual ao mínimo já é considerado baixo.
func (i *Item) IsLowStock() bool {
	return i.StockQuantity.LessThanOrEqual(i.MinStock)
}

// ValidateImage valida uma imagem em data-URI. Valor vazio é permitido.
func ValidateImage(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if !strings.HasPrefix(trimmed, "data:image/") {
		return ErrInvalidImage
	}
	if len(trimmed) > MaxImageBase64Length {
		return ErrImageTooLarge
	}
	return nil
}

// Movement é um registro imutável de movimentação de estoque.
// Nunca é alterado nem removido depois de criado.
type Movement struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"-"`
	CatalogItemID string          `json:"catalogItemId"`
	ItemName      string          `json:"itemName"`
	Type          MovementType    `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// NewMovement cria uma nova movimentação de estoque para o item.
// A quantidade registrada é sempre a solicitada, sem sinal.
func NewMovement(item *Item, movType MovementType, quantity decimal.Decimal, reason string) *Movement {
	return &Movement{
		ID:            uuid.New().String(),
		OwnerID:       item.OwnerID,
		CatalogItemID: item.ID,
		ItemName:      item.Name,
		Type:          movType,
		Quantity:      quantity,
		Reason:        strings.TrimSpace(reason),
		CreatedAt:     time.Now(),
	}
}

// SignedDelta converte a quantidade solicitada no delta aplicado ao estoque
func SignedDelta(movType MovementType, quantity decimal.Decimal) decimal.Decimal {
	if movType == MovementOut {
		return quantity.Neg()
	}
	return quantity
}
