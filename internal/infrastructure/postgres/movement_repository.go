package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.MovementRepository = (*MovementRepository)(nil)

// MovementRepository implementación PostgreSQL de cabeceras y detalles.
// Solo inserta y lee: los movimientos son inmutables.
type MovementRepository struct {
	q Querier
}

// NewMovementRepository construye el repositorio sobre un pool o una transacción.
func NewMovementRepository(q Querier) *MovementRepository {
	return &MovementRepository{q: q}
}

// CreateHeader inserta la cabecera y asigna el consecutivo en m.ID.
func (r *MovementRepository) CreateHeader(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (direction, counterparty_id, date, time, amount, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, now(), $6)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, query,
		m.Direction, m.CounterpartyID, m.Date, m.Time, m.Amount, m.CreatedBy).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar cabecera de movimiento: %w", err)
	}
	return nil
}

// CreateDetail inserta una línea con los snapshots del producto. La llave es
// (movement_id, line_no): el mismo producto puede repetirse en un movimiento.
func (r *MovementRepository) CreateDetail(ctx context.Context, d *entity.MovementDetail) error {
	query := `
		INSERT INTO movement_details (movement_id, line_no, product_code, product_name, unit_price, tax_rate, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.Exec(ctx, query,
		d.MovementID, d.LineNo, d.ProductCode, d.ProductName, d.UnitPrice, d.TaxRate, d.Quantity)
	if err != nil {
		return fmt.Errorf("insertar detalle de movimiento %d: %w", d.MovementID, err)
	}
	return nil
}

// counterpartyTable tabla del directorio según la dirección del movimiento.
func counterpartyTable(direction string) string {
	if direction == entity.DirectionPurchase {
		return "providers"
	}
	return "clients"
}

// GetByID busca una cabecera por dirección e id, con el nombre del tercero
// resuelto por JOIN (vacío si el tercero ya no existe). Retorna nil, nil si no hay fila.
func (r *MovementRepository) GetByID(ctx context.Context, direction string, id int64) (*entity.Movement, error) {
	query := fmt.Sprintf(`
		SELECT m.id, m.direction, m.counterparty_id, COALESCE(p.name, ''),
		       m.date, m.time, m.amount, m.created_at, m.created_by
		FROM movements m
		LEFT JOIN %s p ON p.id = m.counterparty_id
		WHERE m.direction = $1 AND m.id = $2`, counterpartyTable(direction))

	m, err := scanMovement(r.q.QueryRow(ctx, query, direction, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer movimiento %d: %w", id, err)
	}
	return m, nil
}

// ListDetails devuelve las líneas de un movimiento en su orden original.
func (r *MovementRepository) ListDetails(ctx context.Context, movementID int64) ([]*entity.MovementDetail, error) {
	query := `
		SELECT movement_id, line_no, product_code, product_name, unit_price, tax_rate, quantity
		FROM movement_details
		WHERE movement_id = $1
		ORDER BY line_no ASC`

	rows, err := r.q.Query(ctx, query, movementID)
	if err != nil {
		return nil, fmt.Errorf("listar detalles de %d: %w", movementID, err)
	}
	defer rows.Close()

	details := []*entity.MovementDetail{}
	for rows.Next() {
		var d entity.MovementDetail
		if err := rows.Scan(&d.MovementID, &d.LineNo, &d.ProductCode, &d.ProductName, &d.UnitPrice, &d.TaxRate, &d.Quantity); err != nil {
			return nil, fmt.Errorf("leer detalle: %w", err)
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}

// List devuelve cabeceras de una dirección, recientes primero, con filtros
// opcionales de mes, búsqueda libre y límite.
func (r *MovementRepository) List(ctx context.Context, direction string, filter repository.MovementFilter) ([]*entity.Movement, error) {
	builder := psql.Select(
		"m.id", "m.direction", "m.counterparty_id", "COALESCE(p.name, '')",
		"m.date", "m.time", "m.amount", "m.created_at", "m.created_by").
		From("movements m").
		LeftJoin(counterpartyTable(direction) + " p ON p.id = m.counterparty_id").
		Where(sq.Eq{"m.direction": direction}).
		OrderBy("m.id DESC")
	if filter.Month >= 1 && filter.Month <= 12 {
		builder = builder.Where("EXTRACT(MONTH FROM m.created_at) = ?", filter.Month)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.Expr("CAST(m.id AS TEXT) ILIKE ?", pattern),
			sq.ILike{"m.counterparty_id": pattern},
			sq.Expr("COALESCE(p.name, '') ILIKE ?", pattern),
		})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar consulta de movimientos: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()

	movements := []*entity.Movement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("leer movimiento: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

// Count total de movimientos de una dirección.
func (r *MovementRepository) Count(ctx context.Context, direction string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM movements WHERE direction = $1`, direction).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar movimientos: %w", err)
	}
	return count, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.Direction, &m.CounterpartyID, &m.CounterpartyName,
		&m.Date, &m.Time, &m.Amount, &m.CreatedAt, &m.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
