package usecase

import (
	"context"
	"time"

	"github.com/digitalstock/digital-stock-api/internal/application/dto"
	"github.com/digitalstock/digital-stock-api/internal/domain"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
)

// PartyUseCase casos de uso CRUD para terceros. Se instancia dos veces:
// una con el repositorio de clientes y otra con el de proveedores.
type PartyUseCase struct {
	repo repository.PartyRepository
}

// NewPartyUseCase construye el caso de uso sobre el repositorio dado.
func NewPartyUseCase(repo repository.PartyRepository) *PartyUseCase {
	return &PartyUseCase{repo: repo}
}

// Create crea un tercero.
func (uc *PartyUseCase) Create(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	existing, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	party := &entity.Party{
		ID:        in.ID,
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, party); err != nil {
		return nil, err
	}
	return toPartyResponse(party), nil
}

// GetByID obtiene un tercero por identificador.
func (uc *PartyUseCase) GetByID(ctx context.Context, id string) (*dto.PartyResponse, error) {
	party, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	return toPartyResponse(party), nil
}

// Update aplica una actualización parcial.
func (uc *PartyUseCase) Update(ctx context.Context, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	patch := repository.PartyPatch{
		Name:   in.Name,
		Phone:  in.Phone,
		Email:  in.Email,
		Active: in.Active,
	}
	ok, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return uc.GetByID(ctx, id)
}

// Deactivate marca el tercero como inactivo. Los movimientos históricos
// conservan sus snapshots y no se ven afectados.
func (uc *PartyUseCase) Deactivate(ctx context.Context, id string) error {
	inactive := false
	ok, err := uc.repo.Update(ctx, id, repository.PartyPatch{Active: &inactive})
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List lista terceros con búsqueda y filtro de estado.
func (uc *PartyUseCase) List(ctx context.Context, search string, active *bool) (*dto.PartyListResponse, error) {
	list, err := uc.repo.List(ctx, search, active)
	if err != nil {
		return nil, err
	}
	resp := &dto.PartyListResponse{Items: make([]dto.PartyResponse, 0, len(list))}
	for _, p := range list {
		resp.Items = append(resp.Items, *toPartyResponse(p))
	}
	resp.Count = len(resp.Items)
	return resp, nil
}

func toPartyResponse(p *entity.Party) *dto.PartyResponse {
	if p == nil {
		return nil
	}
	return &dto.PartyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
