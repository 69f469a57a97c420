package controller

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/backend/internal/domain/audit"
	"github.com/gestaofacil/backend/internal/domain/catalog"
	saledomain "github.com/gestaofacil/backend/internal/domain/sale"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

func setupSaleTest(t *testing.T, items ...*catalog.Item) (*gin.Engine, *fakeSaleRepo, *fakeCatalogRepo, *fakeMovementRepo) {
	t.Helper()
	saleRepo := &fakeSaleRepo{}
	catalogRepo := newFakeCatalogRepo(items...)
	movementRepo := &fakeMovementRepo{}
	audit := service.NewAuditService(&fakeAuditRepo{}, logger.NewLogger())
	ctrl := NewSaleController(saleRepo, catalogRepo, movementRepo, newFakeConfigRepo(), audit, service.NewPDFService(), logger.NewLogger())

	r := testRouter()
	r.POST("/sales", ctrl.Create)
	return r, saleRepo, catalogRepo, movementRepo
}

func postSale(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSaleDecrementsStock(t *testing.T) {
	item := newCatalogItem(t, "Cabo HDMI", 10)
	r, saleRepo, catalogRepo, movements := setupSaleTest(t, item)

	body := fmt.Sprintf(`{
		"customerName": "João da Silva",
		"items": [
			{"description": "Cabo HDMI", "quantity": 2, "unitPrice": 25.00, "productId": %q}
		]
	}`, item.ID)

	w := postSale(r, body)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, saleRepo.sales, 1)
	assert.Equal(t, "50", saleRepo.sales[0].Total.String())

	// Baixa de estoque e movimentação de saída com motivo da venda
	assert.Equal(t, "8", catalogRepo.items[item.ID].StockQuantity.String())
	require.Len(t, movements.movements, 1)
	mov := movements.movements[0]
	assert.Equal(t, catalog.MovementOut, mov.Type)
	assert.Contains(t, mov.Reason, "Venda #")
	assert.Contains(t, mov.Reason, "João da Silva")
}

func TestCreateSaleInsufficientStockRejectsWholeSale(t *testing.T) {
	stocked := newCatalogItem(t, "Cabo HDMI", 10)
	scarce := newCatalogItem(t, "Fonte 12V", 1)
	r, saleRepo, catalogRepo, movements := setupSaleTest(t, stocked, scarce)

	body := fmt.Sprintf(`{
		"customerName": "João da Silva",
		"items": [
			{"description": "Cabo HDMI", "quantity": 2, "unitPrice": 25.00, "productId": %q},
			{"description": "Fonte 12V", "quantity": 3, "unitPrice": 35.90, "productId": %q}
		]
	}`, stocked.ID, scarce.ID)

	w := postSale(r, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "estoque insuficiente")

	// Nada é gravado: nem a venda, nem baixa parcial de estoque
	assert.Empty(t, saleRepo.sales)
	assert.Equal(t, "10", catalogRepo.items[stocked.ID].StockQuantity.String())
	assert.Equal(t, "1", catalogRepo.items[scarce.ID].StockQuantity.String())
	assert.Empty(t, movements.movements)
}

func TestCreateSaleIgnoresDeadProductReference(t *testing.T) {
	r, saleRepo, _, movements := setupSaleTest(t)

	body := `{
		"customerName": "Maria",
		"items": [
			{"description": "Produto removido", "quantity": 1, "unitPrice": 15.00, "productId": "inexistente"}
		]
	}`

	w := postSale(r, body)

	// Referência morta vira linha de texto livre
	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, saleRepo.sales, 1)
	assert.Empty(t, movements.movements)
}

func TestCreateSaleServiceLineSkipsStock(t *testing.T) {
	svc, err := catalog.NewItem(testOwner, "Instalação", catalog.TypeService)
	require.NoError(t, err)

	r, saleRepo, catalogRepo, movements := setupSaleTest(t, svc)

	body := fmt.Sprintf(`{
		"customerName": "Maria",
		"items": [
			{"description": "Instalação", "quantity": 1, "unitPrice": 120.00, "productId": %q}
		]
	}`, svc.ID)

	w := postSale(r, body)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, saleRepo.sales, 1)
	assert.True(t, catalogRepo.items[svc.ID].StockQuantity.IsZero())
	assert.Empty(t, movements.movements)
}

func TestCreateSaleAppliesDiscount(t *testing.T) {
	r, saleRepo, _, _ := setupSaleTest(t)

	body := `{
		"customerName": "Maria",
		"discountPercent": 10,
		"items": [
			{"description": "Serviço avulso", "quantity": 1, "unitPrice": 200.00}
		]
	}`

	w := postSale(r, body)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, saleRepo.sales, 1)
	assert.Equal(t, "180", saleRepo.sales[0].Total.String())
	assert.True(t, saleRepo.sales[0].Subtotal.Equal(decimal.NewFromInt(200)))
}

func TestSaleHistoryScopedToOwner(t *testing.T) {
	own := &saledomain.Sale{ID: "venda-1", OwnerID: testOwner, CustomerName: "Maria"}
	alheia := &saledomain.Sale{ID: "venda-2", OwnerID: "outro-dono", CustomerName: "Cliente Secreto"}

	saleRepo := &fakeSaleRepo{sales: []*saledomain.Sale{own, alheia}}
	auditRepo := &fakeAuditRepo{logs: []*audit.Log{
		audit.NewLog(testOwner, "SALE", own.ID, "CREATE", "Venda para Maria - R$ 50,00"),
		audit.NewLog("outro-dono", "SALE", alheia.ID, "CREATE", "Venda para Cliente Secreto - R$ 999,00"),
	}}
	svc := service.NewAuditService(auditRepo, logger.NewLogger())
	ctrl := NewSaleController(saleRepo, newFakeCatalogRepo(), &fakeMovementRepo{}, newFakeConfigRepo(), svc, service.NewPDFService(), logger.NewLogger())

	r := testRouter()
	r.GET("/sales/:id/history", ctrl.History)

	// Venda de outro dono: mesmo resultado de uma venda inexistente
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sales/"+alheia.ID+"/history", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "Cliente Secreto")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sales/"+own.ID+"/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Venda para Maria")
}
