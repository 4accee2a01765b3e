package movement

import (
	"context"

	"github.com/digitalstock/digital-stock-api/internal/application/dto"
	"github.com/digitalstock/digital-stock-api/internal/domain"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Get devuelve un movimiento por id con todas sus líneas. Los snapshots
// conservan los valores del producto al momento de la creación, aunque el
// producto haya sido editado después.
func (uc *CreateMovementUseCase) Get(ctx context.Context, direction string, id int64) (*dto.MovementResponse, error) {
	header, err := uc.movements.GetByID(ctx, direction, id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.ErrNotFound
	}
	details, err := uc.movements.ListDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	var party *entity.Party
	if direction == entity.DirectionSale {
		party, _ = uc.clients.FindByID(ctx, header.CounterpartyID)
	} else {
		party, _ = uc.providers.FindByID(ctx, header.CounterpartyID)
	}

	var subtotal, tax decimal.Decimal
	for _, d := range details {
		lineSubtotal := d.UnitPrice.Mul(decimal.NewFromInt(d.Quantity))
		subtotal = subtotal.Add(lineSubtotal)
		tax = tax.Add(lineSubtotal.Mul(d.TaxRate).Div(decimal.NewFromInt(100)))
	}

	return buildResponse(header, details, party, subtotal.Round(2), tax.Round(2)), nil
}

// List lista movimientos de una dirección con filtros de mes, búsqueda y límite.
func (uc *CreateMovementUseCase) List(ctx context.Context, direction string, filter repository.MovementFilter) (*dto.MovementListResponse, error) {
	list, err := uc.movements.List(ctx, direction, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.MovementListResponse{Items: make([]dto.MovementListItem, 0, len(list))}
	for _, m := range list {
		resp.Items = append(resp.Items, dto.MovementListItem{
			ID:               m.ID,
			CounterpartyID:   m.CounterpartyID,
			CounterpartyName: m.CounterpartyName,
			Date:             m.Date,
			Time:             m.Time,
			Amount:           m.Amount,
		})
	}
	resp.Count = len(resp.Items)
	return resp, nil
}

// Count devuelve el total de movimientos de una dirección.
func (uc *CreateMovementUseCase) Count(ctx context.Context, direction string) (int64, error) {
	return uc.movements.Count(ctx, direction)
}
