package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceOrderDashboard agrega os números de ordens de serviço
type ServiceOrderDashboard struct {
	Total      int64           `json:"total"`
	Pending    int64           `json:"pending"`
	InProgress int64           `json:"inProgress"`
	Completed  int64           `json:"completed"`
	Paused     int64           `json:"paused"`
	Cancelled  int64           `json:"cancelled"`
	ThisMonth  int64           `json:"thisMonth"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// QuoteDashboard agrega os números de orçamentos
type QuoteDashboard struct {
	Total          int64           `json:"total"`
	Draft          int64           `json:"draft"`
	Sent           int64           `json:"sent"`
	Approved       int64           `json:"approved"`
	Rejected       int64           `json:"rejected"`
	ConversionRate decimal.Decimal `json:"conversionRate"` // aprovados / enviados * 100
	TotalValue     decimal.Decimal `json:"totalValue"`
}

// FinancialDashboard agrega a posição financeira do mês corrente
type FinancialDashboard struct {
	MonthlyIncome  decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpense decimal.Decimal `json:"monthlyExpense"`
	MonthlyBalance decimal.Decimal `json:"monthlyBalance"`
	TotalPending   decimal.Decimal `json:"totalPending"`
}

// ActivityEntry é uma linha do feed de atividade recente
type ActivityEntry struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Action     string    `json:"action"`
	Details    string    `json:"details"`
	Timestamp  time.Time `json:"timestamp"`
}

// DashboardStatsResponse é a resposta de GET /dashboard/stats
type DashboardStatsResponse struct {
	ServiceOrders  ServiceOrderDashboard `json:"serviceOrders"`
	Quotes         QuoteDashboard        `json:"quotes"`
	Financial      FinancialDashboard    `json:"financial"`
	RecentActivity []ActivityEntry       `json:"recentActivity"`
	LowStock       int64                 `json:"lowStock"`
	CustomersCount int64                 `json:"customersCount"`
}

// SalesDashboardResponse é a resposta de GET /dashboard/sales-stats
type SalesDashboardResponse struct {
	Total         int64           `json:"total"`
	Pending       int64           `json:"pending"`
	Paid          int64           `json:"paid"`
	Cancelled     int64           `json:"cancelled"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	MonthRevenue  decimal.Decimal `json:"monthRevenue"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
}

// SalesChartResponse é a série diária de faturamento dos últimos 30 dias
type SalesChartResponse struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// TopProductResponse é uma posição do ranking de produtos por faturamento
type TopProductResponse struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// RecentSaleResponse é a projeção de venda para o painel
type RecentSaleResponse struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}
