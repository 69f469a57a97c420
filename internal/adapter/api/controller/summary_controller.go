package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	"github.com/gestaofacil/backend/internal/domain/catalog"
	"github.com/gestaofacil/backend/internal/domain/customer"
	entrydomain "github.com/gestaofacil/backend/internal/domain/entry"
	quotedomain "github.com/gestaofacil/backend/internal/domain/quote"
	"github.com/gestaofacil/backend/pkg/logger"
)

// SummaryController agrega a posição financeira mensal do dono
type SummaryController struct {
	entryRepo    entrydomain.Repository
	quoteRepo    quotedomain.Repository
	customerRepo customer.Repository
	catalogRepo  catalog.Repository
	logger       logger.Logger
}

// NewSummaryController cria uma nova instância de SummaryController
func NewSummaryController(entryRepo entrydomain.Repository, quoteRepo quotedomain.Repository, customerRepo customer.Repository, catalogRepo catalog.Repository, logger logger.Logger) *SummaryController {
	return &SummaryController{
		entryRepo:    entryRepo,
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		catalogRepo:  catalogRepo,
		logger:       logger,
	}
}

// Get retorna o resumo financeiro do mês
// @Summary Resumo financeiro
// @Description Agrega receitas, despesas e indicadores do mês informado
// @Tags summary
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param month query string false "Mês no formato YYYY-MM (padrão: mês corrente)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /finance/summary [get]
func (c *SummaryController) Get(ctx *gin.Context) {
	month := time.Now()
	if raw := ctx.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "mês inválido", "use o formato YYYY-MM"))
			return
		}
		month = parsed
	}

	ownerID := ctx.GetString("owner_id")
	entries, err := c.entryRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		c.summaryError(ctx, err)
		return
	}

	resp := dto.SummaryResponse{
		MonthlyIncome:  decimal.Zero,
		MonthlyExpense: decimal.Zero,
		TotalPending:   decimal.Zero,
		PaidBalance:    decimal.Zero,
	}

	for _, e := range entries {
		ref := e.ReferenceDate()
		inMonth := ref.Year() == month.Year() && ref.Month() == month.Month()

		if inMonth {
			switch e.Type {
			case entrydomain.TypeIncome:
				resp.MonthlyIncome = resp.MonthlyIncome.Add(e.Amount)
			case entrydomain.TypeExpense:
				resp.MonthlyExpense = resp.MonthlyExpense.Add(e.Amount)
			}
		}
		if e.Status == entrydomain.StatusPending {
			resp.TotalPending = resp.TotalPending.Add(e.Amount)
		}
		if e.Status == entrydomain.StatusPaid {
			if e.Type == entrydomain.TypeIncome {
				resp.PaidBalance = resp.PaidBalance.Add(e.Amount)
			} else {
				resp.PaidBalance = resp.PaidBalance.Sub(e.Amount)
			}
		}
	}
	resp.MonthlyBalance = resp.MonthlyIncome.Sub(resp.MonthlyExpense)

	quotes, err := c.quoteRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		c.summaryError(ctx, err)
		return
	}
	for _, q := range quotes {
		switch q.Status {
		case quotedomain.StatusApproved:
			resp.ApprovedQuotes++
		case quotedomain.StatusDraft, quotedomain.StatusSent:
			resp.OpenQuotes++
		}
	}

	if resp.Customers, err = c.customerRepo.CountByOwner(ctx, ownerID); err != nil {
		c.summaryError(ctx, err)
		return
	}

	items, err := c.catalogRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		c.summaryError(ctx, err)
		return
	}
	for _, item := range items {
		if item.IsLowStock() {
			resp.LowStock++
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

func (c *SummaryController) summaryError(ctx *gin.Context, err error) {
	c.logger.Error("falha ao montar resumo financeiro", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao montar resumo", err.Error()))
}
