package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaofacil/backend/internal/domain/audit"
)

// AuditRepository implementa a interface audit.Repository. O livro de
// auditoria é somente-inserção: não há update nem delete.
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository cria uma nova instância de AuditRepository
func NewAuditRepository(db *pgxpool.Pool) audit.Repository {
	return &AuditRepository{db: db}
}

const auditColumns = `id, owner_id, entity_type, entity_id, action, details,
	old_value, new_value, timestamp, ip_address, user_agent`

// Create implementa audit.Repository.Create
func (r *AuditRepository) Create(ctx context.Context, l *audit.Log) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO audit_logs (`+auditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.OwnerID, l.EntityType, nullable(l.EntityID), l.Action,
		nullable(l.Details), nullable(l.OldValue), nullable(l.NewValue),
		l.Timestamp, nullable(l.IPAddress), nullable(l.UserAgent))
	if err != nil {
		return fmt.Errorf("erro ao gravar registro de auditoria: %w", err)
	}
	return nil
}

// FindByEntity implementa audit.Repository.FindByEntity
func (r *AuditRepository) FindByEntity(ctx context.Context, entityType, entityID string) ([]*audit.Log, error) {
	return r.findMany(ctx,
		`SELECT `+auditColumns+` FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2 ORDER BY timestamp DESC`,
		entityType, entityID)
}

// FindRecentByOwner implementa audit.Repository.FindRecentByOwner
func (r *AuditRepository) FindRecentByOwner(ctx context.Context, ownerID string, limit int) ([]*audit.Log, error) {
	if limit <= 0 || limit > audit.RecentActivityLimit {
		limit = audit.RecentActivityLimit
	}
	return r.findMany(ctx,
		`SELECT `+auditColumns+` FROM audit_logs
		WHERE owner_id = $1 ORDER BY timestamp DESC LIMIT $2`,
		ownerID, limit)
}

func (r *AuditRepository) findMany(ctx context.Context, query string, args ...any) ([]*audit.Log, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar registros de auditoria: %w", err)
	}
	defer rows.Close()

	logs := make([]*audit.Log, 0)
	for rows.Next() {
		l, err := scanAuditLog(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler registro de auditoria: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func scanAuditLog(row pgx.Row) (*audit.Log, error) {
	var l audit.Log
	var entityID, details, oldValue, newValue, ipAddress, userAgent *string

	err := row.Scan(&l.ID, &l.OwnerID, &l.EntityType, &entityID, &l.Action,
		&details, &oldValue, &newValue, &l.Timestamp, &ipAddress, &userAgent)
	if err != nil {
		return nil, err
	}

	l.EntityID = deref(entityID)
	l.Details = deref(details)
	l.OldValue = deref(oldValue)
	l.NewValue = deref(newValue)
	l.IPAddress = deref(ipAddress)
	l.UserAgent = deref(userAgent)
	return &l, nil
}
