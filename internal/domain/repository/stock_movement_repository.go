package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// MovementFilter filtro de listado de movimientos (vacíos = sin filtro).
type MovementFilter struct {
	ProductID string
	Kind      string
	Limit     int
	Offset    int
}

// StockMovementRepository log de movimientos: solo inserción y lectura.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	// List devuelve los movimientos más recientes primero.
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)
}
