package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	entrydomain "github.com/gestaofacil/backend/internal/domain/entry"
	quotedomain "github.com/gestaofacil/backend/internal/domain/quote"
	"github.com/gestaofacil/backend/pkg/logger"
)

func newEntry(entryType entrydomain.Type, status entrydomain.Status, amount string) *entrydomain.Entry {
	e := entrydomain.New(testOwner)
	e.Type = entryType
	e.Status = status
	e.Amount = decimal.RequireFromString(amount)
	return e
}

func TestSummaryAggregation(t *testing.T) {
	march := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)

	// Receita paga em março
	income := newEntry(entrydomain.TypeIncome, entrydomain.StatusPaid, "1000")
	income.PaidDate = &march

	// Despesa de março pendente, referenciada pelo vencimento
	expense := newEntry(entrydomain.TypeExpense, entrydomain.StatusPending, "300")
	expense.DueDate = &march

	// Receita de abril fica fora do mês consultado, mas entra no saldo pago
	other := newEntry(entrydomain.TypeIncome, entrydomain.StatusPaid, "500")
	other.PaidDate = &april

	entryRepo := &fakeEntryRepo{entries: []*entrydomain.Entry{income, expense, other}}

	draft := quotedomain.New(testOwner)
	sent := quotedomain.New(testOwner)
	sent.Status = quotedomain.StatusSent
	approved := quotedomain.New(testOwner)
	approved.Status = quotedomain.StatusApproved
	quoteRepo := &fakeQuoteRepo{quotes: []*quotedomain.Quote{draft, sent, approved}}

	ctrl := NewSummaryController(entryRepo, quoteRepo, &fakeCustomerRepo{}, newFakeCatalogRepo(), logger.NewLogger())

	r := testRouter()
	r.GET("/summary", ctrl.Get)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summary?month=2025-03", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "1000", resp.MonthlyIncome.String())
	assert.Equal(t, "300", resp.MonthlyExpense.String())
	assert.Equal(t, "700", resp.MonthlyBalance.String())
	assert.Equal(t, "300", resp.TotalPending.String())

	// Saldo pago é global: 1000 + 500 de receitas pagas
	assert.Equal(t, "1500", resp.PaidBalance.String())

	assert.EqualValues(t, 1, resp.ApprovedQuotes)
	assert.EqualValues(t, 2, resp.OpenQuotes)
}

func TestSummaryRejectsBadMonth(t *testing.T) {
	ctrl := NewSummaryController(&fakeEntryRepo{}, &fakeQuoteRepo{}, &fakeCustomerRepo{}, newFakeCatalogRepo(), logger.NewLogger())

	r := testRouter()
	r.GET("/summary", ctrl.Get)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summary?month=03-2025", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM")
}
