package controller

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/domain/catalog"
	"github.com/gestaofacil/backend/internal/domain/customer"
	entrydomain "github.com/gestaofacil/backend/internal/domain/entry"
	quotedomain "github.com/gestaofacil/backend/internal/domain/quote"
	saledomain "github.com/gestaofacil/backend/internal/domain/sale"
	sodomain "github.com/gestaofacil/backend/internal/domain/serviceorder"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

// salesChartDays é a janela da série diária de faturamento
const salesChartDays = 30

// topProductsLimit é o tamanho do ranking de produtos
const topProductsLimit = 5

// recentSalesLimit é o número de vendas exibidas no painel
const recentSalesLimit = 5

// recentActivityDisplay é o número de ações exibidas no painel
const recentActivityDisplay = 10

// DashboardController agrega os indicadores do painel
type DashboardController struct {
	orderRepo    sodomain.Repository
	quoteRepo    quotedomain.Repository
	entryRepo    entrydomain.Repository
	saleRepo     saledomain.Repository
	customerRepo customer.Repository
	catalogRepo  catalog.Repository
	audit        *service.AuditService
	logger       logger.Logger
}

// NewDashboardController cria uma nova instância de DashboardController
func NewDashboardController(orderRepo sodomain.Repository, quoteRepo quotedomain.Repository, entryRepo entrydomain.Repository, saleRepo saledomain.Repository, customerRepo customer.Repository, catalogRepo catalog.Repository, audit *service.AuditService, logger logger.Logger) *DashboardController {
	return &DashboardController{
		orderRepo:    orderRepo,
		quoteRepo:    quoteRepo,
		entryRepo:    entryRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		catalogRepo:  catalogRepo,
		audit:        audit,
		logger:       logger,
	}
}

// Stats retorna os indicadores gerais do painel
// @Summary Indicadores do painel
// @Description Agrega ordens de serviço, orçamentos, finanças e atividade recente
// @Tags dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	ownerID := ctx.GetString("owner_id")
	now := time.Now()

	var resp dto.DashboardStatsResponse
	resp.ServiceOrders.Revenue = decimal.Zero
	resp.Quotes.ConversionRate = decimal.Zero
	resp.Quotes.TotalValue = decimal.Zero
	resp.Financial.MonthlyIncome = decimal.Zero
	resp.Financial.MonthlyExpense = decimal.Zero
	resp.Financial.TotalPending = decimal.Zero

	orders, err := c.orderRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		c.dashboardError(ctx, err)
		return
	}
	for _, o := range orders {
		resp.ServiceOrders.Total++
		switch o.Status {
		case sodomain.StatusPending:
			resp.ServiceOrders.Pending++
		case sodomain.StatusInProgress:
			resp.ServiceOrders.InProgress++
		case sodomain.StatusCompleted:
			resp.ServiceOrders.Completed++
			resp.ServiceOrders.Revenue = resp.ServiceOrders.Revenue.Add(o.Total)
		case sodomain.StatusPaused:
			resp.ServiceOrders.Paused++
		case sodomain.StatusCancelled:
			resp.ServiceOrders.Cancelled++
		}
		if o.CreatedAt.Year() == now.Year() && o.CreatedAt.Month() == now.Month() {
			resp.ServiceOrders.ThisMonth++
		}
	}

	quotes, err := c.quoteRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		c.dashboardError(ctx, err)
		return
	}
	for _, q := range quotes {
		resp.Quotes.Total++
		resp.Quotes.TotalValue = resp.Quotes.TotalValue.Add(q.Total)
		switch q.Status {
		case quotedomain.StatusDraft:
			resp.Quotes.Draft++
		case quotedomain.StatusSent:
			resp.Quotes.Sent++
		case quotedomain.StatusApproved:
			resp.Quotes.Approved++
		case quotedomain.StatusRejected:
			resp.Quotes.Rejected++
		}
	}
	if resp.Quotes.Sent > 0 {
		resp.Quotes.ConversionRate = decimal.NewFromInt(resp.Quotes.Approved).
			Div(decimal.NewFromInt(resp.Quotes.Sent)).
			Mul(decimal.NewFromInt(100)).Round(2)
	}

	entries, err := c.entryRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		c.dashboardError(ctx, err)
		return
	}
	for _, e := range entries {
		if e.DueDate != nil && e.DueDate.Year() == now.Year() && e.DueDate.Month() == now.Month() {
			switch e.Type {
			case entrydomain.TypeIncome:
				resp.Financial.MonthlyIncome = resp.Financial.MonthlyIncome.Add(e.Amount)
			case entrydomain.TypeExpense:
				resp.Financial.MonthlyExpense = resp.Financial.MonthlyExpense.Add(e.Amount)
			}
		}
		if e.Status == entrydomain.StatusPending {
			resp.Financial.TotalPending = resp.Financial.TotalPending.Add(e.Amount)
		}
	}
	resp.Financial.MonthlyBalance = resp.Financial.MonthlyIncome.Sub(resp.Financial.MonthlyExpense)

	logs, err := c.audit.RecentActivity(ctx, ownerID)
	if err != nil {
		c.dashboardError(ctx, err)
		return
	}
	resp.RecentActivity = make([]dto.ActivityEntry, 0, recentActivityDisplay)
	for i, l := range logs {
		if i == recentActivityDisplay {
			break
		}
		resp.RecentActivity = append(resp.RecentActivity, dto.ActivityEntry{
			ID:         l.ID,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Action:     l.Action,
			Details:    l.Details,
			Timestamp:  l.Timestamp,
		})
	}

	items, err := c.catalogRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		c.dashboardError(ctx, err)
		return
	}
	for _, item := range items {
		if item.IsLowStock() {
			resp.LowStock++
		}
	}

	if resp.CustomersCount, err = c.customerRepo.CountByOwner(ctx, ownerID); err != nil {
		c.dashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// SalesStats retorna os indicadores de vendas do painel
// @Summary Indicadores de vendas
// @Description Retorna contagens, faturamento e ticket médio
// @Tags dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.SalesDashboardResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard/sales-stats [get]
func (c *DashboardController) SalesStats(ctx *gin.Context) {
	sales, err := c.saleRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.dashboardError(ctx, err)
		return
	}

	now := time.Now()
	resp := dto.SalesDashboardResponse{
		TotalRevenue:  decimal.Zero,
		MonthRevenue:  decimal.Zero,
		AverageTicket: decimal.Zero,
	}
	for _, s := range sales {
		resp.Total++
		switch s.Status {
		case saledomain.StatusPending:
			resp.Pending++
		case saledomain.StatusPaid:
			resp.Paid++
			resp.TotalRevenue = resp.TotalRevenue.Add(s.Total)
			if s.SaleDate.Year() == now.Year() && s.SaleDate.Month() == now.Month() {
				resp.MonthRevenue = resp.MonthRevenue.Add(s.Total)
			}
		case saledomain.StatusCancelled:
			resp.Cancelled++
		}
	}
	if resp.Paid > 0 {
		resp.AverageTicket = resp.TotalRevenue.Div(decimal.NewFromInt(resp.Paid)).Round(2)
	}

	ctx.JSON(http.StatusOK, resp)
}

// SalesChart retorna a série diária de faturamento dos últimos 30 dias
// @Summary Gráfico de vendas
// @Description Série diária do faturamento de vendas pagas, com dias zerados
// @Tags dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.SalesChartResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard/sales-chart [get]
func (c *DashboardController) SalesChart(ctx *gin.Context) {
	sales, err := c.saleRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.dashboardError(ctx, err)
		return
	}

	// Meia-noite no fuso local, o mesmo usado na formatação das datas de venda
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	start := today.AddDate(0, 0, -(salesChartDays - 1))

	byDay := make(map[string]decimal.Decimal, salesChartDays)
	for _, s := range sales {
		if s.Status != saledomain.StatusPaid {
			continue
		}
		key := s.SaleDate.Format("2006-01-02")
		if total, ok := byDay[key]; ok {
			byDay[key] = total.Add(s.Total)
		} else {
			byDay[key] = s.Total
		}
	}

	resp := dto.SalesChartResponse{
		Labels: make([]string, 0, salesChartDays),
		Values: make([]decimal.Decimal, 0, salesChartDays),
	}
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		resp.Labels = append(resp.Labels, day.Format("02/01"))
		if total, ok := byDay[day.Format("2006-01-02")]; ok {
			resp.Values = append(resp.Values, total)
		} else {
			resp.Values = append(resp.Values, decimal.Zero)
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

// TopProducts retorna o ranking de produtos por faturamento
// @Summary Produtos mais vendidos
// @Description Top 5 por faturamento sobre as linhas de vendas pagas
// @Tags dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} dto.TopProductResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard/top-products [get]
func (c *DashboardController) TopProducts(ctx *gin.Context) {
	sales, err := c.saleRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.dashboardError(ctx, err)
		return
	}

	type aggregate struct {
		quantity decimal.Decimal
		revenue  decimal.Decimal
	}
	byName := make(map[string]*aggregate)
	for _, s := range sales {
		if s.Status != saledomain.StatusPaid {
			continue
		}
		for _, item := range s.Items {
			agg, ok := byName[item.Description]
			if !ok {
				agg = &aggregate{quantity: decimal.Zero, revenue: decimal.Zero}
				byName[item.Description] = agg
			}
			agg.quantity = agg.quantity.Add(item.Quantity)
			agg.revenue = agg.revenue.Add(item.Total)
		}
	}

	products := make([]dto.TopProductResponse, 0, len(byName))
	for name, agg := range byName {
		products = append(products, dto.TopProductResponse{
			Name:     name,
			Quantity: agg.quantity,
			Revenue:  agg.revenue,
		})
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Revenue.GreaterThan(products[j].Revenue)
	})
	if len(products) > topProductsLimit {
		products = products[:topProductsLimit]
	}

	ctx.JSON(http.StatusOK, products)
}

// RecentSales retorna as últimas vendas para o painel
// @Summary Vendas recentes
// @Description Projeção das 5 vendas mais recentes
// @Tags dashboard
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} dto.RecentSaleResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard/recent-sales [get]
func (c *DashboardController) RecentSales(ctx *gin.Context) {
	sales, err := c.saleRepo.FindByOwner(ctx, ctx.GetString("owner_id"))
	if err != nil {
		c.dashboardError(ctx, err)
		return
	}

	recent := make([]dto.RecentSaleResponse, 0, recentSalesLimit)
	for i, s := range sales {
		if i == recentSalesLimit {
			break
		}
		recent = append(recent, dto.RecentSaleResponse{
			ID:           s.ID,
			CustomerName: s.CustomerName,
			Total:        s.Total,
			Status:       string(s.Status),
			CreatedAt:    s.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, recent)
}

func (c *DashboardController) dashboardError(ctx *gin.Context, err error) {
	c.logger.Error("falha ao montar painel", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar painel", err.Error()))
}
