package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type define a natureza do lançamento financeiro
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Status define a situação do lançamento
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

// Entry é um lançamento financeiro avulso, sem relação com vendas,
// orçamentos ou ordens de serviço
type Entry struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"-"`
	Type        Type            `json:"type"`
	Status      Status          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	PaidDate    *time.Time      `json:"paidDate,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// New cria um novo lançamento
func New(ownerID string) *Entry {
	return &Entry{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}
}

// ReferenceDate é a data usada nas agregações mensais: data de pagamento,
// senão vencimento, senão criação.
func (e *Entry) ReferenceDate() time.Time {
	if e.PaidDate != nil {
		return *e.PaidDate
	}
	if e.DueDate != nil {
		return *e.DueDate
	}
	return e.CreatedAt
}
