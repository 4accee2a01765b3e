package repository

import (
	"context"

	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
)

// AuditFilter filtros de consulta de bitácora.
type AuditFilter struct {
	Action string // acción exacta
	Search string // por cédula, nombre o acción
	Limit  int    // 0 = sin límite
}

// AuditRepository puerto de la bitácora append-only.
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditEntry, error)
	// Actions devuelve las acciones distintas registradas, para filtros de UI.
	Actions(ctx context.Context) ([]string, error)
}
