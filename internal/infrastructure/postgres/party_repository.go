package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/digitalstock/digital-stock-api/internal/domain"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.PartyRepository = (*PartyRepository)(nil)

// PartyRepository implementación PostgreSQL del directorio de terceros.
// La misma implementación sirve clientes y proveedores: cambia solo la tabla.
type PartyRepository struct {
	q     Querier
	table string
}

// NewClientRepository repositorio sobre la tabla de clientes.
func NewClientRepository(q Querier) *PartyRepository {
	return &PartyRepository{q: q, table: "clients"}
}

// NewProviderRepository repositorio sobre la tabla de proveedores.
func NewProviderRepository(q Querier) *PartyRepository {
	return &PartyRepository{q: q, table: "providers"}
}

// Create inserta un tercero. Retorna domain.ErrDuplicate si la cédula ya existe.
func (r *PartyRepository) Create(ctx context.Context, p *entity.Party) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, phone, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`, r.table)

	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Phone, p.Email, p.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar en %s: %w", r.table, err)
	}
	return nil
}

// FindByID busca por cédula. Retorna nil, nil si no existe.
func (r *PartyRepository) FindByID(ctx context.Context, id string) (*entity.Party, error) {
	query := fmt.Sprintf(`
		SELECT id, name, phone, email, active, created_at, updated_at
		FROM %s WHERE id = $1`, r.table)

	var p entity.Party
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Phone, &p.Email, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer de %s: %w", r.table, err)
	}
	return &p, nil
}

// List devuelve terceros filtrados por búsqueda libre y estado, ordenados por nombre.
func (r *PartyRepository) List(ctx context.Context, search string, active *bool) ([]*entity.Party, error) {
	builder := psql.Select("id, name, phone, email, active, created_at, updated_at").
		From(r.table).
		OrderBy("name ASC")
	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"id": pattern},
			sq.ILike{"name": pattern},
		})
	}
	if active != nil {
		builder = builder.Where(sq.Eq{"active": *active})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar consulta de %s: %w", r.table, err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", r.table, err)
	}
	defer rows.Close()

	parties := []*entity.Party{}
	for rows.Next() {
		var p entity.Party
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Email, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("leer fila de %s: %w", r.table, err)
		}
		parties = append(parties, &p)
	}
	return parties, rows.Err()
}

// Update aplica una actualización parcial. Retorna false si el tercero no existe.
func (r *PartyRepository) Update(ctx context.Context, id string, patch repository.PartyPatch) (bool, error) {
	builder := psql.Update(r.table).Set("updated_at", sq.Expr("now()"))
	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Phone != nil {
		builder = builder.Set("phone", *patch.Phone)
	}
	if patch.Email != nil {
		builder = builder.Set("email", *patch.Email)
	}
	if patch.Active != nil {
		builder = builder.Set("active", *patch.Active)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("armar patch de %s: %w", r.table, err)
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("actualizar %s: %w", r.table, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Count total de terceros en la tabla.
func (r *PartyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, r.table)
	if err := r.q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("contar %s: %w", r.table, err)
	}
	return count, nil
}
