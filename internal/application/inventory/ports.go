package inventory

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.StockItemRepository,
		movements repository.StockMovementRepository,
	) error) error
}

// MovementObserver recibe cada movimiento confirmado (métricas).
type MovementObserver interface {
	ObserveMovement(kind string, oversold bool)
}

type noopObserver struct{}

func (noopObserver) ObserveMovement(string, bool) {}
