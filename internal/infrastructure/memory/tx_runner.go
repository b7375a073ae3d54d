package memory

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones del ledger con el lock de escritura del almacén.
// Las escrituras quedan en un área temporal y solo se aplican si fn termina sin error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repositorios atados a la transacción; Commit si fn no falla.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.StockItemRepository,
	movements repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx := &memTx{s: r.s, staged: make(map[string]entity.StockItem)}
	if err := fn(&txItems{tx}, &txMovements{tx}); err != nil {
		return err
	}
	// commit
	for _, id := range tx.stagedOrder {
		r.s.upsertLocked(tx.staged[id])
	}
	r.s.movements = append(r.s.movements, tx.movements...)
	return nil
}

type memTx struct {
	s           *Store
	staged      map[string]entity.StockItem
	stagedOrder []string
	movements   []entity.StockMovement
}

func (t *memTx) get(id string) *entity.StockItem {
	if it, ok := t.staged[id]; ok {
		return &it
	}
	return t.s.getLocked(id)
}

type txItems struct{ tx *memTx }

func (r *txItems) Get(_ context.Context, id string) (*entity.StockItem, error) {
	return r.tx.get(id), nil
}

// GetForUpdate: el lock global del runner ya da exclusión.
func (r *txItems) GetForUpdate(_ context.Context, id string) (*entity.StockItem, error) {
	return r.tx.get(id), nil
}

func (r *txItems) Upsert(_ context.Context, item *entity.StockItem) error {
	if _, ok := r.tx.staged[item.ID]; !ok {
		r.tx.stagedOrder = append(r.tx.stagedOrder, item.ID)
	}
	r.tx.staged[item.ID] = *item
	return nil
}

func (r *txItems) List(_ context.Context) ([]*entity.StockItem, error) {
	out := make([]*entity.StockItem, 0, len(r.tx.s.order)+len(r.tx.stagedOrder))
	seen := make(map[string]bool, len(r.tx.s.order))
	for _, id := range r.tx.s.order {
		seen[id] = true
		out = append(out, r.tx.get(id))
	}
	for _, id := range r.tx.stagedOrder {
		if !seen[id] {
			out = append(out, r.tx.get(id))
		}
	}
	return out, nil
}

type txMovements struct{ tx *memTx }

func (r *txMovements) Create(_ context.Context, m *entity.StockMovement) error {
	r.tx.movements = append(r.tx.movements, *m)
	return nil
}

func (r *txMovements) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	all := append(append([]entity.StockMovement{}, r.tx.s.movements...), r.tx.movements...)
	return filterMovements(all, f), nil
}
