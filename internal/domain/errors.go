package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError entrada mal formada del caller; nunca deja efectos parciales.
// errors.Is(err, ErrInvalidInput) == true.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidation construye un ValidationError con el motivo dado.
func NewValidation(reason string) error { return &ValidationError{Reason: reason} }

// ProductNotFoundError producto inexistente o inactivo en un movimiento.
// errors.Is(err, ErrNotFound) == true.
type ProductNotFoundError struct {
	Code string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto %s no encontrado o inactivo", e.Code)
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientStockError venta que excede el stock disponible.
// Reporta el producto y la cantidad disponible al momento de la verificación.
// errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	Code      string
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d", e.Code, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
