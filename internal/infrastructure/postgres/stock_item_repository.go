package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo artículos del ledger sobre PostgreSQL (usable con pool o tx).
// quantity es NULL cuando el artículo es ilimitado.
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, name, category, price, quantity, unlimited, threshold, updated_at`

// Get obtiene un artículo por id.
func (r *StockItemRepo) Get(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := scanStockItem(r.q.QueryRow(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := scanStockItem(r.q.QueryRow(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return item, nil
}

// Upsert inserta o actualiza un artículo.
func (r *StockItemRepo) Upsert(ctx context.Context, item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, name, category, price, quantity, unlimited, threshold, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category, price = EXCLUDED.price,
			quantity = EXCLUDED.quantity, unlimited = EXCLUDED.unlimited,
			threshold = EXCLUDED.threshold, updated_at = EXCLUDED.updated_at`
	var qty *int64
	if n, ok := item.Quantity.Amount(); ok {
		qty = &n
	}
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, string(item.Category), item.Price,
		qty, item.Quantity.IsUnlimited(), item.Threshold, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock item: %w", err)
	}
	return nil
}

// List devuelve todos los artículos ordenados por fecha de alta.
func (r *StockItemRepo) List(ctx context.Context) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockItemColumns+` FROM stock_items ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var (
		it        entity.StockItem
		category  string
		qty       *int64
		unlimited bool
	)
	if err := row.Scan(&it.ID, &it.Name, &category, &it.Price, &qty, &unlimited, &it.Threshold, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.Category = entity.Category(category)
	switch {
	case unlimited:
		it.Quantity = inventory.Unlimited()
	case qty != nil:
		it.Quantity = inventory.Finite(*qty)
	default:
		it.Quantity = inventory.Finite(0)
	}
	return &it, nil
}
