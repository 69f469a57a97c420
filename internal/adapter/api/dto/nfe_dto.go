package dto

import "github.com/shopspring/decimal"

// NfeImportItemResult descreve o destino de uma linha da nota importada
type NfeImportItemResult struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Status   string          `json:"status"` // created | updated
	OldStock decimal.Decimal `json:"oldStock"`
	NewStock decimal.Decimal `json:"newStock"`
}

// NfeImportResponse resume a importação de uma NFe para o estoque
type NfeImportResponse struct {
	Success       bool                  `json:"success"`
	NfeNumber     string                `json:"nfeNumber"`
	NfeKey        string                `json:"nfeKey"`
	Issuer        string                `json:"issuer"`
	TotalItems    int                   `json:"totalItems"`
	ItemsImported int                   `json:"itemsImported"`
	ItemsUpdated  int                   `json:"itemsUpdated"`
	Items         []NfeImportItemResult `json:"items"`
}
