package audit

import "context"

// RecentActivityLimit é o número máximo de registros no feed de atividade
const RecentActivityLimit = 50

// Repository define as operações do livro de auditoria (somente inserção
// e leitura)
type Repository interface {
	Create(ctx context.Context, l *Log) error
	FindByEntity(ctx context.Context, entityType, entityID string) ([]*Log, error)
	FindRecentByOwner(ctx context.Context, ownerID string, limit int) ([]*Log, error)
}
