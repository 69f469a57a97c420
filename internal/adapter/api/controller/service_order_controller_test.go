package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gestaofacil/backend/internal/domain/audit"
	sodomain "github.com/gestaofacil/backend/internal/domain/serviceorder"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

func TestServiceOrderHistoryScopedToOwner(t *testing.T) {
	own := &sodomain.ServiceOrder{ID: "os-1", OwnerID: testOwner, CustomerName: "Maria"}
	alheia := &sodomain.ServiceOrder{ID: "os-2", OwnerID: "outro-dono", CustomerName: "Cliente Secreto"}

	orderRepo := &fakeServiceOrderRepo{orders: []*sodomain.ServiceOrder{own, alheia}}
	auditRepo := &fakeAuditRepo{logs: []*audit.Log{
		audit.NewLog(testOwner, "SERVICE_ORDER", own.ID, "CREATE", "Ordem para Maria"),
		audit.NewLog("outro-dono", "SERVICE_ORDER", alheia.ID, "CREATE", "Ordem para Cliente Secreto"),
	}}
	svc := service.NewAuditService(auditRepo, logger.NewLogger())
	mailer := service.NewMailerFromEnv(logger.NewLogger())
	ctrl := NewServiceOrderController(orderRepo, newFakeConfigRepo(), svc, service.NewPDFService(), mailer, logger.NewLogger())

	r := testRouter()
	r.GET("/service-orders/:id/history", ctrl.History)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/service-orders/"+alheia.ID+"/history", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "Cliente Secreto")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/service-orders/"+own.ID+"/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ordem para Maria")
}
