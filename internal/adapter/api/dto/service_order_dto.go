package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/domain/serviceorder"
)

// ServiceOrderItemRequest é uma linha da ordem de serviço
type ServiceOrderItemRequest struct {
	CatalogID   string          `json:"catalogId"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	IsService   bool            `json:"isService"`
}

// ServiceOrderRequest representa os dados de criação/edição de ordem de serviço
type ServiceOrderRequest struct {
	CustomerID         string                    `json:"customerId"`
	CustomerName       string                    `json:"customerName" binding:"required"`
	CustomerPhone      string                    `json:"customerPhone"`
	CustomerAddress    string                    `json:"customerAddress"`
	StartDate          string                    `json:"startDate"`
	EstimatedEndDate   string                    `json:"estimatedEndDate"`
	Description        string                    `json:"description"`
	TechnicianNotes    string                    `json:"technicianNotes"`
	AssignedTechnician string                    `json:"assignedTechnician"`
	Items              []ServiceOrderItemRequest `json:"items"`
}

// Apply copia os campos da requisição para a ordem e recalcula os custos
func (r *ServiceOrderRequest) Apply(o *serviceorder.ServiceOrder) error {
	o.CustomerID = r.CustomerID
	o.CustomerName = r.CustomerName
	o.CustomerPhone = r.CustomerPhone
	o.CustomerAddress = r.CustomerAddress
	o.Description = r.Description
	o.TechnicianNotes = r.TechnicianNotes
	o.AssignedTechnician = r.AssignedTechnician

	startDate, err := ParseDate(r.StartDate)
	if err != nil {
		return err
	}
	if !startDate.IsZero() {
		o.StartDate = startDate
	}
	estimatedEnd, err := ParseDatePtr(r.EstimatedEndDate)
	if err != nil {
		return err
	}
	o.EstimatedEndDate = estimatedEnd

	items := make([]serviceorder.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, serviceorder.Item{
			CatalogID:   it.CatalogID,
			ItemName:    it.ItemName,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			IsService:   it.IsService,
		})
	}
	o.ReplaceItems(items)
	return nil
}

// ServiceOrderStatusRequest representa a troca de status de uma ordem
type ServiceOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ServiceOrderStatsResponse agrega os números de ordens de serviço do dono
type ServiceOrderStatsResponse struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Total      int64 `json:"total"`
}
