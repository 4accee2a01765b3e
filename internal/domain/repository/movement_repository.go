package repository

import (
	"context"

	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
)

// MovementFilter filtros de listado de movimientos.
type MovementFilter struct {
	Month  int    // 1..12; 0 = sin filtro
	Search string // por id, cédula del tercero o nombre
	Limit  int    // 0 = sin límite
}

// MovementRepository puerto de persistencia de cabeceras y detalles de movimiento.
// El motor es el único dueño de la ruta de escritura; no hay update ni delete.
type MovementRepository interface {
	// CreateHeader persiste la cabecera y asigna el consecutivo en movement.ID.
	CreateHeader(ctx context.Context, movement *entity.Movement) error
	CreateDetail(ctx context.Context, detail *entity.MovementDetail) error
	// GetByID devuelve nil, nil si no existe un movimiento con esa dirección e id.
	GetByID(ctx context.Context, direction string, id int64) (*entity.Movement, error)
	ListDetails(ctx context.Context, movementID int64) ([]*entity.MovementDetail, error)
	List(ctx context.Context, direction string, filter MovementFilter) ([]*entity.Movement, error)
	Count(ctx context.Context, direction string) (int64, error)
}
