package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepository)(nil)

// AuditRepository implementación PostgreSQL de la bitácora append-only.
type AuditRepository struct {
	q Querier
}

// NewAuditRepository construye el repositorio de bitácora.
func NewAuditRepository(q Querier) *AuditRepository {
	return &AuditRepository{q: q}
}

// Append inserta un registro de bitácora.
func (r *AuditRepository) Append(ctx context.Context, e *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_log (actor_id, actor_name, occurred_at, action)
		VALUES ($1, $2, now(), $3)
		RETURNING id, occurred_at`

	err := r.q.QueryRow(ctx, query, e.ActorID, e.ActorName, e.Action).
		Scan(&e.ID, &e.OccurredAt)
	if err != nil {
		return fmt.Errorf("insertar bitácora: %w", err)
	}
	return nil
}

// List devuelve registros recientes primero, con filtros opcionales.
func (r *AuditRepository) List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditEntry, error) {
	builder := psql.Select("id", "actor_id", "actor_name", "occurred_at", "action").
		From("audit_log").
		OrderBy("id DESC")
	if filter.Action != "" {
		builder = builder.Where(sq.Eq{"action": filter.Action})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"actor_id": pattern},
			sq.ILike{"actor_name": pattern},
			sq.ILike{"action": pattern},
		})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar consulta de bitácora: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar bitácora: %w", err)
	}
	defer rows.Close()

	entries := []*entity.AuditEntry{}
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorName, &e.OccurredAt, &e.Action); err != nil {
			return nil, fmt.Errorf("leer bitácora: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Actions devuelve las acciones distintas registradas, en orden alfabético.
func (r *AuditRepository) Actions(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT action FROM audit_log ORDER BY action ASC`)
	if err != nil {
		return nil, fmt.Errorf("listar acciones de bitácora: %w", err)
	}
	defer rows.Close()

	actions := []string{}
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("leer acción: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
