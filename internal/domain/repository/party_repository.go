package repository

import (
	"context"

	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
)

// PartyPatch campos opcionales para actualización parcial de un tercero.
type PartyPatch struct {
	Name   *string
	Phone  *string
	Email  *string
	Active *bool
}

// PartyRepository puerto del directorio de terceros. Hay dos instancias:
// una sobre la tabla de clientes y otra sobre la de proveedores.
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	// FindByID devuelve nil, nil si el tercero no existe.
	FindByID(ctx context.Context, id string) (*entity.Party, error)
	List(ctx context.Context, search string, active *bool) ([]*entity.Party, error)
	// Update aplica el patch; devuelve false si el tercero no existe.
	Update(ctx context.Context, id string, patch PartyPatch) (bool, error)
	Count(ctx context.Context) (int64, error)
}
