package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/domain/quote"
)

// QuoteItemRequest é uma linha do orçamento enviada pelo cliente
type QuoteItemRequest struct {
	CatalogItemID string          `json:"catalogItemId"`
	Description   string          `json:"description" binding:"required"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
}

// QuoteRequest representa os dados de criação/edição de orçamento
type QuoteRequest struct {
	CustomerID   string             `json:"customerId"`
	CustomerName string             `json:"customerName" binding:"required"`
	Status       string             `json:"status"`
	IssueDate    string             `json:"issueDate"`
	ValidUntil   string             `json:"validUntil"`
	Notes        string             `json:"notes"`
	Items        []QuoteItemRequest `json:"items" binding:"required,min=1"`
}

// Apply copia os campos da requisição para o orçamento e recalcula os totais
func (r *QuoteRequest) Apply(q *quote.Quote) error {
	q.CustomerID = r.CustomerID
	q.CustomerName = r.CustomerName
	q.Notes = r.Notes

	switch quote.Status(r.Status) {
	case quote.StatusDraft, quote.StatusSent, quote.StatusApproved, quote.StatusRejected:
		q.Status = quote.Status(r.Status)
	}

	issueDate, err := ParseDate(r.IssueDate)
	if err != nil {
		return err
	}
	if !issueDate.IsZero() {
		q.IssueDate = issueDate
	}
	validUntil, err := ParseDate(r.ValidUntil)
	if err != nil {
		return err
	}
	q.ValidUntil = validUntil

	items := make([]quote.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, quote.Item{
			CatalogItemID: it.CatalogItemID,
			Description:   it.Description,
			Unit:          it.Unit,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
		})
	}
	q.ReplaceItems(items)
	return nil
}
