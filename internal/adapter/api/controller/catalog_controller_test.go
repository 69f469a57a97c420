package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/backend/internal/domain/catalog"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

func newCatalogItem(t *testing.T, name string, stock int64) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(testOwner, name, catalog.TypeProduct)
	require.NoError(t, err)
	item.StockQuantity = decimal.NewFromInt(stock)
	return item
}

func setupCatalogTest(t *testing.T, items ...*catalog.Item) (*gin.Engine, *fakeCatalogRepo, *fakeMovementRepo) {
	t.Helper()
	catalogRepo := newFakeCatalogRepo(items...)
	movementRepo := &fakeMovementRepo{}
	audit := service.NewAuditService(&fakeAuditRepo{}, logger.NewLogger())
	ctrl := NewCatalogController(catalogRepo, movementRepo, audit, logger.NewLogger())

	r := testRouter()
	r.POST("/catalog/:id/stock-adjust", ctrl.AdjustStock)
	r.GET("/catalog/stock/low", ctrl.LowStock)
	return r, catalogRepo, movementRepo
}

func TestAdjustStockOut(t *testing.T) {
	item := newCatalogItem(t, "Cabo HDMI", 10)
	r, repo, movements := setupCatalogTest(t, item)

	body := `{"type":"OUT","quantity":6,"reason":"Ajuste de inventário"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/catalog/"+item.ID+"/stock-adjust", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4", repo.items[item.ID].StockQuantity.String())

	require.Len(t, movements.movements, 1)
	mov := movements.movements[0]
	assert.Equal(t, catalog.MovementOut, mov.Type)
	assert.Equal(t, "6", mov.Quantity.String())
	assert.Equal(t, "Ajuste de inventário", mov.Reason)
}

func TestAdjustStockInsufficient(t *testing.T) {
	item := newCatalogItem(t, "Cabo HDMI", 10)
	r, repo, movements := setupCatalogTest(t, item)

	body := `{"type":"OUT","quantity":20}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/catalog/"+item.ID+"/stock-adjust", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "estoque insuficiente")

	// Estoque intacto e nenhuma movimentação registrada
	assert.Equal(t, "10", repo.items[item.ID].StockQuantity.String())
	assert.Empty(t, movements.movements)
}

func TestAdjustStockUnknownItem(t *testing.T) {
	r, _, _ := setupCatalogTest(t)

	body := `{"type":"IN","quantity":5}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/catalog/nao-existe/stock-adjust", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdjustStockRejectsNonPositiveQuantity(t *testing.T) {
	item := newCatalogItem(t, "Cabo HDMI", 10)
	r, repo, _ := setupCatalogTest(t, item)

	body := `{"type":"OUT","quantity":-3}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/catalog/"+item.ID+"/stock-adjust", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "10", repo.items[item.ID].StockQuantity.String())
}

func TestLowStockIncludesServiceItems(t *testing.T) {
	sobrando := newCatalogItem(t, "Cabo HDMI", 10)
	sobrando.MinStock = decimal.NewFromInt(2)

	faltando := newCatalogItem(t, "Fonte 12V", 1)
	faltando.MinStock = decimal.NewFromInt(3)

	// Serviço com estoque e mínimo zerados conta como estoque baixo
	servico, err := catalog.NewItem(testOwner, "Instalação", catalog.TypeService)
	require.NoError(t, err)

	r, _, _ := setupCatalogTest(t, sobrando, faltando, servico)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/stock/low", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Fonte 12V")
	assert.Contains(t, body, "Instalação")
	assert.NotContains(t, body, "Cabo HDMI")
}
