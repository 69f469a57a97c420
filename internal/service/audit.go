package service

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/gestaofacil/backend/internal/domain/audit"
	"github.com/gestaofacil/backend/pkg/logger"
)

// AuditService grava o rastro de auditoria das operações de negócio. A
// gravação é melhor-esforço: falhas são registradas no log e nunca se
// propagam para o chamador.
type AuditService struct {
	repo   audit.Repository
	logger logger.Logger
}

// NewAuditService cria uma nova instância de AuditService
func NewAuditService(repo audit.Repository, logger logger.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// LogAction registra uma ação sobre uma entidade. IP e User-Agent são
// extraídos da requisição quando presente.
func (s *AuditService) LogAction(ctx context.Context, ownerID, entityType, entityID, action, details string, r *http.Request) {
	s.LogChange(ctx, ownerID, entityType, entityID, action, details, "", "", r)
}

// LogChange registra uma ação com os valores anterior e novo serializados
func (s *AuditService) LogChange(ctx context.Context, ownerID, entityType, entityID, action, details, oldValue, newValue string, r *http.Request) {
	l := audit.NewLog(ownerID, entityType, entityID, action, details)
	l.OldValue = oldValue
	l.NewValue = newValue
	if r != nil {
		l.IPAddress = ClientIP(r)
		l.UserAgent = r.UserAgent()
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("falha ao gravar auditoria", "error", err,
			"entityType", entityType, "entityId", entityID, "action", action)
	}
}

// EntityHistory retorna o histórico de uma entidade, do mais recente para
// o mais antigo
func (s *AuditService) EntityHistory(ctx context.Context, entityType, entityID string) ([]*audit.Log, error) {
	return s.repo.FindByEntity(ctx, entityType, entityID)
}

// RecentActivity retorna as últimas ações do dono, limitadas ao teto do feed
func (s *AuditService) RecentActivity(ctx context.Context, ownerID string) ([]*audit.Log, error) {
	return s.repo.FindRecentByOwner(ctx, ownerID, audit.RecentActivityLimit)
}

// ClientIP resolve o IP do cliente na ordem X-Forwarded-For, X-Real-IP e
// endereço remoto da conexão
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
