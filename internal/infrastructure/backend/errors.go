package backend

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError error de validación de un campo devuelto por el backend.
type FieldError struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// StockShortage detalle de un producto sin stock suficiente para una transferencia.
type StockShortage struct {
	ProductID          string `json:"productId"`
	ProductName        string `json:"productName"`
	Requested          int64  `json:"demandé"`
	Available          int64  `json:"disponible"`
	TotalStock         int64  `json:"stockTotal"`
	AlreadyTransferred int64  `json:"déjàTransféré"`
}

// APIError respuesta no 2xx del backend con su cuerpo estructurado.
type APIError struct {
	Status  int             `json:"-"`
	Op      string          `json:"-"`
	Message string          `json:"error,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
	Details []StockShortage `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %s: %d: %s", e.Op, e.Status, e.UserMessage())
}

// UserMessage texto para mostrar: mensajes de campo unidos, o el mensaje único.
func (e *APIError) UserMessage() string {
	if len(e.Errors) > 0 {
		msgs := make([]string, 0, len(e.Errors))
		for _, fe := range e.Errors {
			if fe.Message != "" {
				msgs = append(msgs, fe.Message)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, ", ")
		}
	}
	return e.Message
}

// UnavailableError el backend no respondió o la respuesta no se pudo interpretar.
// Message es el texto genérico localizado de la operación.
type UnavailableError struct {
	Op      string
	Message string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("backend %s: %s: %v", e.Op, e.Message, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// UserMessage texto genérico para mostrar.
func (e *UnavailableError) UserMessage() string { return e.Message }

// Message texto a mostrar para cualquier error de este paquete (o err.Error() si es otro).
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if m := apiErr.UserMessage(); m != "" {
			return m
		}
	}
	var unErr *UnavailableError
	if errors.As(err, &unErr) {
		return unErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

const transferFallback = "Une erreur est survenue lors du transfert"

// FormatTransferError mensaje de error de una transferencia: lista cada producto sin stock con
// lo pedido y lo disponible; si no hay detalle, los mensajes de campo o el mensaje único.
func FormatTransferError(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.Details) > 0 {
			parts := make([]string, 0, len(apiErr.Details))
			for _, d := range apiErr.Details {
				parts = append(parts, fmt.Sprintf("Stock insuffisant - %s: demandé %d, disponible %d",
					d.ProductName, d.Requested, d.Available))
			}
			return strings.Join(parts, ", ")
		}
		if m := apiErr.UserMessage(); m != "" {
			return m
		}
		return transferFallback
	}
	var unErr *UnavailableError
	if errors.As(err, &unErr) && unErr.Message != "" {
		return unErr.Message
	}
	return transferFallback
}
