package http

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate instancia compartida; los validadores son seguros para uso concurrente.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validationMessage convierte el primer error de validación en un mensaje legible.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "datos inválidos"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("el campo %s es requerido", fe.Field())
	case "email":
		return fmt.Sprintf("el campo %s debe ser un email válido", fe.Field())
	case "min":
		return fmt.Sprintf("el campo %s no cumple el mínimo (%s)", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("el campo %s excede el máximo (%s)", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("el campo %s debe ser mayor que %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("el campo %s debe ser uno de: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("el campo %s es inválido", fe.Field())
	}
}
