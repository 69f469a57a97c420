package serviceorder

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/pkg/money"
)

// Status representa o estado de uma ordem de serviço
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusPaused     Status = "PAUSED"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// ValidStatus verifica se o texto corresponde a um status conhecido
func ValidStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusPaused, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// Label retorna o rótulo do status em português
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusInProgress:
		return "Em Andamento"
	case StatusPaused:
		return "Pausado"
	case StatusCompleted:
		return "Concluído"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// Item é uma linha da ordem de serviço, marcada como serviço ou peça
type Item struct {
	ID          string          `json:"id"`
	CatalogID   string          `json:"catalogId,omitempty"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
	IsService   bool            `json:"isService"`
}

// ServiceOrder representa uma ordem de serviço com os dados do cliente
// congelados no momento da criação
type ServiceOrder struct {
	ID                 string          `json:"id"`
	OwnerID            string          `json:"-"`
	CustomerID         string          `json:"customerId,omitempty"`
	CustomerName       string          `json:"customerName"`
	CustomerPhone      string          `json:"customerPhone"`
	CustomerAddress    string          `json:"customerAddress"`
	Status             Status          `json:"status"`
	StartDate          time.Time       `json:"startDate"`
	EstimatedEndDate   *time.Time      `json:"estimatedEndDate,omitempty"`
	CompletedDate      *time.Time      `json:"completedDate,omitempty"`
	Description        string          `json:"description"`
	TechnicianNotes    string          `json:"technicianNotes"`
	AssignedTechnician string          `json:"assignedTechnician"`
	LaborCost          decimal.Decimal `json:"laborCost"`
	PartsCost          decimal.Decimal `json:"partsCost"`
	Total              decimal.Decimal `json:"total"`
	Items              []Item          `json:"items"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// New cria uma nova ordem de serviço
func New(ownerID string) *ServiceOrder {
	now := time.Now()
	return &ServiceOrder{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Status:    StatusPending,
		StartDate: now,
		LaborCost: decimal.Zero,
		PartsCost: decimal.Zero,
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReplaceItems substitui as linhas e recalcula os custos: mão de obra é a
// soma das linhas de serviço, peças a soma das demais, total = soma de ambos.
func (o *ServiceOrder) ReplaceItems(items []Item) {
	labor := decimal.Zero
	parts := decimal.Zero
	for i := range items {
		items[i].Quantity = money.Scale(items[i].Quantity)
		items[i].UnitPrice = money.Scale(items[i].UnitPrice)
		items[i].Total = money.Scale(items[i].Quantity.Mul(items[i].UnitPrice))
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		if items[i].IsService {
			labor = labor.Add(items[i].Total)
		} else {
			parts = parts.Add(items[i].Total)
		}
	}
	o.Items = items
	o.LaborCost = money.Scale(labor)
	o.PartsCost = money.Scale(parts)
	o.Total = money.Scale(labor.Add(parts))
}

// ChangeStatus aplica a troca de status. A data de conclusão é definida uma
// única vez, na primeira transição para COMPLETED.
func (o *ServiceOrder) ChangeStatus(newStatus Status) Status {
	oldStatus := o.Status
	o.Status = newStatus
	o.UpdatedAt = time.Now()
	if newStatus == StatusCompleted && o.CompletedDate == nil {
		today := time.Now()
		o.CompletedDate = &today
	}
	return oldStatus
}
