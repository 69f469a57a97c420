package service

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaofacil/backend/internal/domain/audit"
	"github.com/gestaofacil/backend/pkg/logger"
)

type auditRepoStub struct {
	logs []*audit.Log
	err  error
}

func (s *auditRepoStub) Create(_ context.Context, l *audit.Log) error {
	if s.err != nil {
		return s.err
	}
	s.logs = append(s.logs, l)
	return nil
}

func (s *auditRepoStub) FindByEntity(_ context.Context, entityType, entityID string) ([]*audit.Log, error) {
	var out []*audit.Log
	for _, l := range s.logs {
		if l.EntityType == entityType && l.EntityID == entityID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *auditRepoStub) FindRecentByOwner(_ context.Context, ownerID string, limit int) ([]*audit.Log, error) {
	var out []*audit.Log
	for _, l := range s.logs {
		if l.OwnerID == ownerID && len(out) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestLogActionCapturesRequestMetadata(t *testing.T) {
	repo := &auditRepoStub{}
	svc := NewAuditService(repo, logger.NewLogger())

	r := httptest.NewRequest("POST", "/api/finance/sales", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	r.Header.Set("User-Agent", "TestClient/1.0")

	svc.LogAction(context.Background(), "owner-1", "SALE", "sale-1", "CREATE", "Venda criada", r)

	require.Len(t, repo.logs, 1)
	l := repo.logs[0]
	assert.Equal(t, "owner-1", l.OwnerID)
	assert.Equal(t, "SALE", l.EntityType)
	assert.Equal(t, "CREATE", l.Action)
	assert.Equal(t, "203.0.113.9", l.IPAddress)
	assert.Equal(t, "TestClient/1.0", l.UserAgent)
	assert.False(t, l.Timestamp.IsZero())
}

func TestLogActionSwallowsRepositoryError(t *testing.T) {
	repo := &auditRepoStub{err: errors.New("banco fora do ar")}
	svc := NewAuditService(repo, logger.NewLogger())

	// Não entra em pânico nem propaga o erro
	svc.LogAction(context.Background(), "owner-1", "SALE", "sale-1", "CREATE", "Venda criada", nil)

	assert.Empty(t, repo.logs)
}

func TestLogChangeStoresOldAndNewValues(t *testing.T) {
	repo := &auditRepoStub{}
	svc := NewAuditService(repo, logger.NewLogger())

	svc.LogChange(context.Background(), "owner-1", "SERVICE_ORDER", "os-1", "STATUS_CHANGE", "Pendente → Em Andamento", "PENDING", "IN_PROGRESS", nil)

	require.Len(t, repo.logs, 1)
	assert.Equal(t, "PENDING", repo.logs[0].OldValue)
	assert.Equal(t, "IN_PROGRESS", repo.logs[0].NewValue)
	assert.Empty(t, repo.logs[0].IPAddress)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.10:51234"

	assert.Equal(t, "192.0.2.10", ClientIP(r))

	r.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", ClientIP(r))

	// X-Forwarded-For prevalece e só o primeiro endereço conta
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.7")
	assert.Equal(t, "203.0.113.9", ClientIP(r))
}
