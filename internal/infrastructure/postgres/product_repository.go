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

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Ensure ProductRepository implements the interface.
var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación PostgreSQL del catálogo de productos.
type ProductRepository struct {
	q Querier
}

// NewProductRepository construye el repositorio sobre un pool o una transacción.
func NewProductRepository(q Querier) *ProductRepository {
	return &ProductRepository{q: q}
}

const productColumns = `code, name, price, tax_rate, min_stock, max_stock, quantity, active, created_at, updated_at`

// Create inserta un producto nuevo. Retorna domain.ErrDuplicate si el código ya existe.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (code, name, price, tax_rate, min_stock, max_stock, quantity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`

	_, err := r.q.Exec(ctx, query,
		p.Code, p.Name, p.Price, p.TaxRate, p.Min, p.Max, p.Quantity, p.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar producto: %w", err)
	}
	return nil
}

// GetByCode busca un producto por código. Retorna nil, nil si no existe.
func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, code))
}

// FindActiveByCode busca un producto activo por código; es la resolución que
// usa el motor de movimientos. Retorna nil, nil si no existe o está inactivo.
func (r *ProductRepository) FindActiveByCode(ctx context.Context, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1 AND active = TRUE`
	return r.scanOne(r.q.QueryRow(ctx, query, code))
}

// List devuelve los productos que calcen con el filtro, ordenados por nombre.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	builder := psql.Select(productColumns).From("products").OrderBy("name ASC")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"code": pattern},
			sq.ILike{"name": pattern},
		})
	}
	if filter.Active != nil {
		builder = builder.Where(sq.Eq{"active": *filter.Active})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar consulta de productos: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()

	products := []*entity.Product{}
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update aplica una actualización parcial. Retorna false si el producto no existe.
func (r *ProductRepository) Update(ctx context.Context, code string, patch repository.ProductPatch) (bool, error) {
	query, args, err := buildProductPatch(code, patch)
	if err != nil {
		return false, fmt.Errorf("armar patch de producto: %w", err)
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("actualizar producto: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// buildProductPatch construye el UPDATE solo con los campos presentes en el patch.
func buildProductPatch(code string, patch repository.ProductPatch) (string, []any, error) {
	builder := psql.Update("products").Set("updated_at", sq.Expr("now()"))
	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Price != nil {
		builder = builder.Set("price", *patch.Price)
	}
	if patch.TaxRate != nil {
		builder = builder.Set("tax_rate", *patch.TaxRate)
	}
	if patch.Min != nil {
		builder = builder.Set("min_stock", *patch.Min)
	}
	if patch.Max != nil {
		builder = builder.Set("max_stock", *patch.Max)
	}
	if patch.Active != nil {
		builder = builder.Set("active", *patch.Active)
	}
	return builder.Where(sq.Eq{"code": code}).ToSql()
}

// AdjustQuantity aplica un delta con signo sobre la existencia en un solo UPDATE
// condicional: la guardia quantity + delta >= 0 se evalúa bajo el bloqueo de fila,
// de modo que ventas concurrentes del mismo producto nunca dejan stock negativo.
// Retorna domain.ErrInsufficientStock si la guardia rechaza el ajuste.
func (r *ProductRepository) AdjustQuantity(ctx context.Context, code string, delta int64) error {
	query := `
		UPDATE products
		SET quantity = quantity + $2, updated_at = now()
		WHERE code = $1 AND quantity + $2 >= 0`

	tag, err := r.q.Exec(ctx, query, code, delta)
	if err != nil {
		return fmt.Errorf("ajustar existencia de %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		// El producto fue resuelto en esta misma transacción; la única causa
		// de cero filas es la guardia de stock.
		return domain.ErrInsufficientStock
	}
	return nil
}

// Count total de productos registrados.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("contar productos: %w", err)
	}
	return count, nil
}

func (r *ProductRepository) scanOne(row pgx.Row) (*entity.Product, error) {
	p, err := r.scanRow(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer producto: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) scanRow(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.Code, &p.Name, &p.Price, &p.TaxRate, &p.Min, &p.Max,
		&p.Quantity, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
