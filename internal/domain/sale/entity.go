package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/pkg/money"
)

// Status representa o estado de uma venda
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// PaymentMethod define a forma de pagamento
type PaymentMethod string

const (
	PaymentMoney        PaymentMethod = "MONEY"
	PaymentCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentPix          PaymentMethod = "PIX"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCheck        PaymentMethod = "CHECK"
	PaymentOther        PaymentMethod = "OTHER"
)

// ValidStatus verifica se o texto corresponde a um status conhecido
func ValidStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// Item é uma linha da venda. O ciclo de vida pertence exclusivamente à
// venda: itens são substituídos em bloco a cada atualização.
type Item struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Quantity    decimal.Decimal     `json:"quantity"`
	Unit        string              `json:"unit"`
	UnitPrice   decimal.Decimal     `json:"unitPrice"`
	Total       decimal.Decimal     `json:"total"`
	ProductID   string              `json:"productId,omitempty"` // referência opcional ao catálogo
}

// Sale representa uma venda com suas linhas
type Sale struct {
	ID              string              `json:"id"`
	OwnerID         string              `json:"-"`
	CustomerID      string              `json:"customerId,omitempty"`
	CustomerName    string              `json:"customerName"`
	SaleDate        time.Time           `json:"saleDate"`
	Status          Status              `json:"status"`
	Items           []Item              `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Discount        decimal.NullDecimal `json:"discount"`        // desconto em R$
	DiscountPercent decimal.NullDecimal `json:"discountPercent"` // desconto em %
	Shipping        decimal.NullDecimal `json:"shipping"`
	Tax             decimal.NullDecimal `json:"tax"`
	Total           decimal.Decimal     `json:"total"`
	PaymentMethod   PaymentMethod       `json:"paymentMethod,omitempty"`
	Notes           string              `json:"notes"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// New cria uma venda já com os valores padrão aplicados
func New(ownerID string) *Sale {
	now := time.Now()
	return &Sale{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		SaleDate:  now,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CalculateTotals recalcula os totais de cada linha e da venda:
// total = subtotal - desconto + frete + impostos. O desconto explícito em
// R$ tem precedência sobre o percentual.
func (s *Sale) CalculateTotals() {
	subtotal := decimal.Zero
	for i := range s.Items {
		s.Items[i].Quantity = money.Scale(s.Items[i].Quantity)
		s.Items[i].UnitPrice = money.Scale(s.Items[i].UnitPrice)
		s.Items[i].Total = money.Scale(s.Items[i].Quantity.Mul(s.Items[i].UnitPrice))
		subtotal = subtotal.Add(s.Items[i].Total)
	}
	s.Subtotal = money.Scale(subtotal)

	discountValue := decimal.Zero
	if s.Discount.Valid {
		discountValue = s.Discount.Decimal
	} else if s.DiscountPercent.Valid {
		discountValue = money.Percent(s.Subtotal, s.DiscountPercent.Decimal)
	}

	total := s.Subtotal.Sub(discountValue)
	if s.Shipping.Valid {
		total = total.Add(s.Shipping.Decimal)
	}
	if s.Tax.Valid {
		total = total.Add(s.Tax.Decimal)
	}
	s.Total = money.Scale(total)
}
