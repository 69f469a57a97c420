package audit

import (
	"time"

	"github.com/google/uuid"
)

// Log é um registro imutável de auditoria. Depois de criado nunca é
// alterado nem removido.
type Log struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"-"`
	EntityType string    `json:"entityType"` // SALE, QUOTE, SERVICE_ORDER, ...
	EntityID   string    `json:"entityId"`
	Action     string    `json:"action"` // CREATE, UPDATE, STATUS_CHANGE, DELETE, ...
	Details    string    `json:"details"`
	OldValue   string    `json:"oldValue,omitempty"`
	NewValue   string    `json:"newValue,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
}

// NewLog cria um novo registro de auditoria com o horário do servidor
func NewLog(ownerID, entityType, entityID, action, details string) *Log {
	return &Log{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
		Timestamp:  time.Now(),
	}
}
