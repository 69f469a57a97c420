package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/domain/entry"
	"github.com/gestaofacil/backend/pkg/money"
)

// EntryRequest representa os dados de criação/edição de um lançamento
// financeiro
type EntryRequest struct {
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Status      string          `json:"status" binding:"required,oneof=PENDING PAID"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description" binding:"required"`
	DueDate     string          `json:"dueDate"`
	PaidDate    string          `json:"paidDate"`
}

// Apply copia os campos da requisição para o lançamento
func (r *EntryRequest) Apply(e *entry.Entry) error {
	e.Type = entry.Type(r.Type)
	e.Status = entry.Status(r.Status)
	e.Amount = money.Scale(r.Amount)
	e.Category = r.Category
	e.Description = r.Description

	dueDate, err := ParseDatePtr(r.DueDate)
	if err != nil {
		return err
	}
	e.DueDate = dueDate

	paidDate, err := ParseDatePtr(r.PaidDate)
	if err != nil {
		return err
	}
	e.PaidDate = paidDate
	return nil
}

// SummaryResponse agrega a posição financeira do mês consultado
type SummaryResponse struct {
	MonthlyIncome  decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpense decimal.Decimal `json:"monthlyExpense"`
	MonthlyBalance decimal.Decimal `json:"monthlyBalance"`
	TotalPending   decimal.Decimal `json:"totalPending"`
	PaidBalance    decimal.Decimal `json:"paidBalance"`
	ApprovedQuotes int64           `json:"approvedQuotes"`
	OpenQuotes     int64           `json:"openQuotes"`
	Customers      int64           `json:"customers"`
	LowStock       int64           `json:"lowStock"`
}
