package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/pkg/money"
)

// Status representa o estado de um orçamento
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusSent     Status = "SENT"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Item é uma linha do orçamento
type Item struct {
	ID            string          `json:"id"`
	CatalogItemID string          `json:"catalogItemId,omitempty"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Total         decimal.Decimal `json:"total"`
}

// Quote representa um orçamento. Não há desconto: subtotal == total.
type Quote struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"-"`
	CustomerID   string          `json:"customerId,omitempty"`
	CustomerName string          `json:"customerName"`
	Status       Status          `json:"status"`
	IssueDate    time.Time       `json:"issueDate"`
	ValidUntil   time.Time       `json:"validUntil"`
	Notes        string          `json:"notes"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
	Items        []Item          `json:"items"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// New cria um novo orçamento vazio
func New(ownerID string) *Quote {
	return &Quote{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Status:    StatusDraft,
		CreatedAt: time.Now(),
	}
}

// ReplaceItems substitui todas as linhas e recalcula subtotal e total.
// A lista anterior é descartada por inteiro a cada atualização.
func (q *Quote) ReplaceItems(items []Item) {
	subtotal := decimal.Zero
	for i := range items {
		items[i].Quantity = money.Scale(items[i].Quantity)
		items[i].UnitPrice = money.Scale(items[i].UnitPrice)
		items[i].Total = money.Scale(items[i].Quantity.Mul(items[i].UnitPrice))
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		subtotal = subtotal.Add(items[i].Total)
	}
	q.Items = items
	q.Subtotal = money.Scale(subtotal)
	q.Total = q.Subtotal
}
