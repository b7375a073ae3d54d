package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUntrackedStock    = errors.New("stock ilimitado sin seguimiento numérico")
)

// ValidationErrors lista de mensajes de validación de un formulario.
// Se comporta como ErrInvalidInput en errors.Is.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, ", ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// OrNil devuelve nil si no hay mensajes.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
