package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// StockItemRepository puerto de persistencia de artículos del ledger.
// Get y GetForUpdate devuelven (nil, nil) si el artículo no existe.
type StockItemRepository interface {
	Get(ctx context.Context, id string) (*entity.StockItem, error)
	// GetForUpdate bloquea el registro hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	Upsert(ctx context.Context, item *entity.StockItem) error
	List(ctx context.Context) ([]*entity.StockItem, error)
}
