package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/backend/internal/adapter/api/dto"
	saledomain "github.com/gestaofacil/backend/internal/domain/sale"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

func setupDashboardTest(t *testing.T, saleRepo *fakeSaleRepo) *gin.Engine {
	t.Helper()
	audit := service.NewAuditService(&fakeAuditRepo{}, logger.NewLogger())
	ctrl := NewDashboardController(&fakeServiceOrderRepo{}, &fakeQuoteRepo{}, &fakeEntryRepo{}, saleRepo, &fakeCustomerRepo{}, newFakeCatalogRepo(), audit, logger.NewLogger())

	r := testRouter()
	r.GET("/dashboard/sales-chart", ctrl.SalesChart)
	return r
}

func TestSalesChartWindowInLocalTime(t *testing.T) {
	now := time.Now()
	hoje := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	saleRepo := &fakeSaleRepo{sales: []*saledomain.Sale{
		{ID: "v-1", OwnerID: testOwner, Status: saledomain.StatusPaid, SaleDate: hoje, Total: decimal.NewFromInt(80)},
		{ID: "v-2", OwnerID: testOwner, Status: saledomain.StatusPending, SaleDate: hoje, Total: decimal.NewFromInt(999)},
		// Fora da janela de 30 dias
		{ID: "v-3", OwnerID: testOwner, Status: saledomain.StatusPaid, SaleDate: hoje.AddDate(0, 0, -31), Total: decimal.NewFromInt(500)},
	}}
	r := setupDashboardTest(t, saleRepo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/sales-chart", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SalesChartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Labels, 30)
	require.Len(t, resp.Values, 30)

	// Último ponto é o dia corrente no fuso local; apenas vendas pagas contam
	assert.Equal(t, hoje.Format("02/01"), resp.Labels[29])
	assert.Equal(t, "80", resp.Values[29].String())
	assert.True(t, resp.Values[0].IsZero())
}
