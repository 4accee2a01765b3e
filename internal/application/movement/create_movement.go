package movement

import (
	"context"
	"errors"
	"time"

	"github.com/digitalstock/digital-stock-api/internal/application/dto"
	"github.com/digitalstock/digital-stock-api/internal/domain"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
	"github.com/digitalstock/digital-stock-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Actor usuario autenticado que registra el movimiento (para bitácora).
type Actor struct {
	Cedula string
	Name   string
}

// CreateMovementUseCase registra compras (entradas) y ventas (salidas) de forma
// transaccional: validación, cálculo de totales, snapshot de líneas, ajuste de
// stock y persistencia de cabecera+detalle en una sola transacción, con
// bitácora y envío de comprobante como efectos post-commit de mejor esfuerzo.
type CreateMovementUseCase struct {
	txRunner  TxRunner
	movements repository.MovementRepository // atado al pool, para lecturas
	clients   repository.PartyRepository
	providers repository.PartyRepository
	audit     repository.AuditRepository
	notifier  Notifier
	log       *logger.Logger
}

// NewCreateMovementUseCase construye el caso de uso.
func NewCreateMovementUseCase(
	txRunner TxRunner,
	movements repository.MovementRepository,
	clients repository.PartyRepository,
	providers repository.PartyRepository,
	audit repository.AuditRepository,
	notifier Notifier,
	log *logger.Logger,
) *CreateMovementUseCase {
	return &CreateMovementUseCase{
		txRunner:  txRunner,
		movements: movements,
		clients:   clients,
		providers: providers,
		audit:     audit,
		notifier:  notifier,
		log:       log,
	}
}

// Create registra un movimiento. direction es entity.DirectionPurchase o
// entity.DirectionSale; counterparty_id es el proveedor o el cliente según el caso.
//
// Pasos 1-8 (lookup, verificación de stock, totales, cabecera, detalles, ajuste
// de stock) corren dentro de una transacción: cualquier error revierte todo y
// no queda ningún efecto parcial. La bitácora y el comprobante por correo
// ocurren después del commit y jamás afectan el resultado.
func (uc *CreateMovementUseCase) Create(ctx context.Context, actor Actor, direction string, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if direction != entity.DirectionPurchase && direction != entity.DirectionSale {
		return nil, domain.NewValidation("dirección de movimiento desconocida")
	}
	if in.CounterpartyID == "" {
		if direction == entity.DirectionSale {
			return nil, domain.NewValidation("el cliente es requerido")
		}
		return nil, domain.NewValidation("el proveedor es requerido")
	}
	if len(in.Lines) == 0 {
		return nil, domain.NewValidation("debe incluir al menos un producto")
	}
	for _, line := range in.Lines {
		if line.ProductCode == "" {
			return nil, domain.NewValidation("código de producto requerido")
		}
		if line.Quantity <= 0 {
			return nil, domain.NewValidation("la cantidad debe ser un entero positivo")
		}
	}

	now := time.Now()
	header := &entity.Movement{
		Direction:      direction,
		CounterpartyID: in.CounterpartyID,
		Date:           now.Format("2006-01-02"),
		Time:           now.Format("15:04:05"),
		CreatedAt:      now,
		CreatedBy:      actor.Cedula,
	}
	var details []*entity.MovementDetail
	var party *entity.Party
	var subtotal, tax decimal.Decimal

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		clientRepo repository.PartyRepository,
		providerRepo repository.PartyRepository,
	) error {
		// 1) Validar líneas contra el catálogo y armar snapshots
		for _, line := range in.Lines {
			product, err := productRepo.FindActiveByCode(ctx, line.ProductCode)
			if err != nil {
				return err
			}
			if product == nil {
				return &domain.ProductNotFoundError{Code: line.ProductCode}
			}
			if direction == entity.DirectionSale {
				if product.Quantity < line.Quantity {
					return &domain.InsufficientStockError{Code: product.Code, Available: product.Quantity}
				}
				// Quedar por debajo del mínimo es advertencia, no bloquea la venta.
				// El máximo nunca se verifica en compras.
				if product.Quantity-line.Quantity < product.Min {
					uc.log.Warn().
						Str("product_code", product.Code).
						Int64("remaining", product.Quantity-line.Quantity).
						Int64("min", product.Min).
						Msg("la venta deja el producto por debajo del stock mínimo")
				}
			}

			lineSubtotal := product.Price.Mul(decimal.NewFromInt(line.Quantity))
			subtotal = subtotal.Add(lineSubtotal)
			tax = tax.Add(lineSubtotal.Mul(product.TaxRate).Div(decimal.NewFromInt(100)))

			details = append(details, &entity.MovementDetail{
				LineNo:      len(details) + 1,
				ProductCode: product.Code,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				TaxRate:     product.TaxRate,
				Quantity:    line.Quantity,
			})
		}

		// 2) Totales: redondeo a 2 decimales una sola vez, sobre los agregados
		subtotal = subtotal.Round(2)
		tax = tax.Round(2)
		header.Amount = subtotal.Add(tax)

		// 3) Snapshot del tercero (solo enriquecimiento: su ausencia no bloquea)
		var err error
		if direction == entity.DirectionSale {
			party, err = clientRepo.FindByID(ctx, in.CounterpartyID)
		} else {
			party, err = providerRepo.FindByID(ctx, in.CounterpartyID)
		}
		if err != nil {
			return err
		}

		// 4) Cabecera (asigna el consecutivo) y detalles
		if err := movRepo.CreateHeader(ctx, header); err != nil {
			return err
		}
		for _, d := range details {
			d.MovementID = header.ID
			if err := movRepo.CreateDetail(ctx, d); err != nil {
				return err
			}
		}

		// 5) Ajuste de stock con delta firmado. El UPDATE condicional es la
		// barrera contra carreras: dos ventas concurrentes no pueden sobregirar.
		for _, d := range details {
			delta := d.Quantity
			if direction == entity.DirectionSale {
				delta = -delta
			}
			if err := productRepo.AdjustQuantity(ctx, d.ProductCode, delta); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					available := int64(0)
					if p, perr := productRepo.FindActiveByCode(ctx, d.ProductCode); perr == nil && p != nil {
						available = p.Quantity
					}
					return &domain.InsufficientStockError{Code: d.ProductCode, Available: available}
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit: bitácora y comprobante, mejor esfuerzo.
	uc.appendAudit(ctx, actor, direction)
	uc.notifier.Dispatch(&ReceiptData{
		ID:        header.ID,
		Direction: direction,
		Date:      header.Date,
		Time:      header.Time,
		Amount:    header.Amount,
		Party:     party,
		Lines:     details,
	})

	return buildResponse(header, details, party, subtotal, tax), nil
}

// appendAudit registra la acción en bitácora. Un fallo aquí se loguea y se descarta:
// el movimiento ya está confirmado.
func (uc *CreateMovementUseCase) appendAudit(ctx context.Context, actor Actor, direction string) {
	if actor.Cedula == "" && actor.Name == "" {
		return
	}
	action := "Registró una salida"
	if direction == entity.DirectionPurchase {
		action = "Registró una entrada"
	}
	entry := &entity.AuditEntry{
		ActorID:    actor.Cedula,
		ActorName:  actor.Name,
		OccurredAt: time.Now(),
		Action:     action,
	}
	if err := uc.audit.Append(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("action", action).Msg("registrar en bitácora")
	}
}

// buildResponse arma la respuesta con totales y snapshots.
func buildResponse(header *entity.Movement, details []*entity.MovementDetail, party *entity.Party, subtotal, tax decimal.Decimal) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:        header.ID,
		Direction: header.Direction,
		Amount:    header.Amount,
		Subtotal:  subtotal,
		Tax:       tax,
		Date:      header.Date,
		Time:      header.Time,
		Lines:     make([]dto.MovementLineResponse, 0, len(details)),
	}
	if party != nil {
		resp.Counterparty = &dto.CounterpartyResponse{
			ID:    party.ID,
			Name:  party.Name,
			Email: party.Email,
			Phone: party.Phone,
		}
	}
	for _, d := range details {
		resp.Lines = append(resp.Lines, dto.MovementLineResponse{
			ProductCode: d.ProductCode,
			ProductName: d.ProductName,
			UnitPrice:   d.UnitPrice,
			TaxRate:     d.TaxRate,
			Quantity:    d.Quantity,
		})
	}
	return resp
}
