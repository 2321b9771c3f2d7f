package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrPersistence señala un fallo al escribir el blob persistido. El estado
	// en memoria queda aplicado; el fallo es observable, nunca silencioso.
	ErrPersistence = errors.New("fallo de persistencia")
)

// ValidationError agrupa los fallos de validación de un registro. En un lote
// (importación) cada fila se valida de forma aislada: una fila inválida no
// aborta el resto.
type ValidationError struct {
	Fields []string // mensajes por campo, en orden de detección
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %s", strings.Join(e.Fields, "; "))
}

// Is permite detectar un ValidationError con errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError construye el error con los mensajes dados.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
