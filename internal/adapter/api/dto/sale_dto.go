package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/domain/sale"
)

// SaleItemRequest é uma linha da venda enviada pelo cliente
type SaleItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	ProductID   string          `json:"productId"`
}

// SaleRequest representa os dados de criação/edição de venda
type SaleRequest struct {
	CustomerID      string              `json:"customerId"`
	CustomerName    string              `json:"customerName"`
	SaleDate        string              `json:"saleDate"`
	Status          string              `json:"status"`
	Items           []SaleItemRequest   `json:"items" binding:"required,min=1"`
	Discount        decimal.NullDecimal `json:"discount"`
	DiscountPercent decimal.NullDecimal `json:"discountPercent"`
	Shipping        decimal.NullDecimal `json:"shipping"`
	Tax             decimal.NullDecimal `json:"tax"`
	PaymentMethod   string              `json:"paymentMethod"`
	Notes           string              `json:"notes"`
}

// Apply copia os campos da requisição para a venda e recalcula os totais
func (r *SaleRequest) Apply(s *sale.Sale) error {
	s.CustomerID = r.CustomerID
	s.CustomerName = r.CustomerName
	s.Discount = r.Discount
	s.DiscountPercent = r.DiscountPercent
	s.Shipping = r.Shipping
	s.Tax = r.Tax
	s.PaymentMethod = sale.PaymentMethod(r.PaymentMethod)
	s.Notes = r.Notes

	if r.SaleDate != "" {
		saleDate, err := ParseDate(r.SaleDate)
		if err != nil {
			return err
		}
		s.SaleDate = saleDate
	}
	if status, ok := sale.ValidStatus(r.Status); ok {
		s.Status = status
	}

	items := make([]sale.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, sale.Item{
			ID:          uuid.New().String(),
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			ProductID:   it.ProductID,
		})
	}
	s.Items = items
	s.CalculateTotals()
	return nil
}

// SaleStatsResponse agrega os números de vendas do dono
type SaleStatsResponse struct {
	TotalSales     int64           `json:"totalSales"`
	PendingSales   int64           `json:"pendingSales"`
	PaidSales      int64           `json:"paidSales"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	PendingRevenue decimal.Decimal `json:"pendingRevenue"`
}
