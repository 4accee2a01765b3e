package usecase

import (
	"context"
	"time"

	"github.com/digitalstock/digital-stock-api/internal/application/dto"
	"github.com/digitalstock/digital-stock-api/internal/domain"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
	"github.com/digitalstock/digital-stock-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos.
// Quantity solo se toca en la creación (existencia inicial); después es
// propiedad exclusiva del motor de movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Valida min < max y precio e IVA no negativos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Min >= in.Max {
		return nil, domain.NewValidation("stock mínimo debe ser menor que stock máximo")
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.NewValidation("el precio no puede ser negativo")
	}
	if in.TaxRate.LessThan(decimal.Zero) || in.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.NewValidation("el IVA debe estar entre 0 y 100")
	}
	if in.Quantity < 0 {
		return nil, domain.NewValidation("la existencia inicial no puede ser negativa")
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		Code:      in.Code,
		Name:      in.Name,
		Price:     in.Price,
		TaxRate:   in.TaxRate,
		Min:       in.Min,
		Max:       in.Max,
		Quantity:  in.Quantity,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto por código.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial. No permite tocar Quantity y
// mantiene la invariante min < max contra los valores resultantes.
func (uc *ProductUseCase) Update(ctx context.Context, code string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	newMin, newMax := product.Min, product.Max
	if in.Min != nil {
		newMin = *in.Min
	}
	if in.Max != nil {
		newMax = *in.Max
	}
	if newMin >= newMax {
		return nil, domain.NewValidation("stock mínimo debe ser menor que stock máximo")
	}
	if in.Price != nil && in.Price.LessThan(decimal.Zero) {
		return nil, domain.NewValidation("el precio no puede ser negativo")
	}
	if in.TaxRate != nil && (in.TaxRate.LessThan(decimal.Zero) || in.TaxRate.GreaterThan(decimal.NewFromInt(100))) {
		return nil, domain.NewValidation("el IVA debe estar entre 0 y 100")
	}

	patch := repository.ProductPatch{
		Name:    in.Name,
		Price:   in.Price,
		TaxRate: in.TaxRate,
		Min:     in.Min,
		Max:     in.Max,
		Active:  in.Active,
	}
	ok, err := uc.repo.Update(ctx, code, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Deactivate marca el producto como inactivo (invisible para movimientos).
func (uc *ProductUseCase) Deactivate(ctx context.Context, code string) error {
	inactive := false
	ok, err := uc.repo.Update(ctx, code, repository.ProductPatch{Active: &inactive})
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con filtros de búsqueda y estado.
func (uc *ProductUseCase) List(ctx context.Context, search string, active *bool) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, repository.ProductFilter{Search: search, Active: active})
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(list))}
	for _, p := range list {
		resp.Items = append(resp.Items, *toProductResponse(p))
	}
	resp.Count = len(resp.Items)
	return resp, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		Code:      p.Code,
		Name:      p.Name,
		Price:     p.Price,
		TaxRate:   p.TaxRate,
		Min:       p.Min,
		Max:       p.Max,
		Quantity:  p.Quantity,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
