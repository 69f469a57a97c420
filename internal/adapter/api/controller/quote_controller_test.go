package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gestaofacil/backend/internal/domain/audit"
	quotedomain "github.com/gestaofacil/backend/internal/domain/quote"
	"github.com/gestaofacil/backend/internal/service"
	"github.com/gestaofacil/backend/pkg/logger"
)

func TestQuoteHistoryScopedToOwner(t *testing.T) {
	own := &quotedomain.Quote{ID: "orc-1", OwnerID: testOwner, CustomerName: "Maria"}
	alheio := &quotedomain.Quote{ID: "orc-2", OwnerID: "outro-dono", CustomerName: "Cliente Secreto"}

	quoteRepo := &fakeQuoteRepo{quotes: []*quotedomain.Quote{own, alheio}}
	auditRepo := &fakeAuditRepo{logs: []*audit.Log{
		audit.NewLog(testOwner, "QUOTE", own.ID, "CREATE", "Orçamento para Maria"),
		audit.NewLog("outro-dono", "QUOTE", alheio.ID, "CREATE", "Orçamento para Cliente Secreto"),
	}}
	svc := service.NewAuditService(auditRepo, logger.NewLogger())
	ctrl := NewQuoteController(quoteRepo, newFakeConfigRepo(), svc, service.NewPDFService(), logger.NewLogger())

	r := testRouter()
	r.GET("/quotes/:id/history", ctrl.History)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quotes/"+alheio.ID+"/history", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "Cliente Secreto")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quotes/"+own.ID+"/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Orçamento para Maria")
}
