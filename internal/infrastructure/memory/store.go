package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var (
	_ repository.StockItemRepository      = (*ItemRepo)(nil)
	_ repository.StockMovementRepository  = (*MovementRepo)(nil)
	_ repository.ActivityReportRepository = (*ReportRepo)(nil)
)

// Store almacén en memoria del ledger y de los rapports. Guarda copias de valor para que
// los llamadores no puedan mutar el estado interno.
type Store struct {
	mu        sync.RWMutex
	items     map[string]entity.StockItem
	order     []string
	movements []entity.StockMovement // orden de inserción
	reports   []entity.ActivityReport
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{items: make(map[string]entity.StockItem)}
}

// Items repositorio de artículos sobre el almacén.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Movements repositorio del log de movimientos.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Reports repositorio de rapports de actividad.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{s: s} }

func (s *Store) getLocked(id string) *entity.StockItem {
	it, ok := s.items[id]
	if !ok {
		return nil
	}
	return &it
}

func (s *Store) upsertLocked(item entity.StockItem) {
	if _, ok := s.items[item.ID]; !ok {
		s.order = append(s.order, item.ID)
	}
	s.items[item.ID] = item
}

// ── Artículos ────────────────────────────────────────────────────────────────

// ItemRepo artículos del ledger.
type ItemRepo struct {
	s *Store
}

// Get obtiene un artículo o (nil, nil).
func (r *ItemRepo) Get(_ context.Context, id string) (*entity.StockItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.getLocked(id), nil
}

// GetForUpdate fuera de una tx equivale a Get.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.Get(ctx, id)
}

// Upsert inserta o reemplaza un artículo.
func (r *ItemRepo) Upsert(_ context.Context, item *entity.StockItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.upsertLocked(*item)
	return nil
}

// List devuelve los artículos en orden de alta.
func (r *ItemRepo) List(_ context.Context) ([]*entity.StockItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockItem, 0, len(r.s.order))
	for _, id := range r.s.order {
		it := r.s.items[id]
		out = append(out, &it)
	}
	return out, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

// MovementRepo log de movimientos (solo inserción).
type MovementRepo struct {
	s *Store
}

// Create agrega un movimiento al log.
func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

// List movimientos filtrados, más recientes primero.
func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return filterMovements(r.s.movements, f), nil
}

func filterMovements(all []entity.StockMovement, f repository.MovementFilter) []*entity.StockMovement {
	out := make([]*entity.StockMovement, 0)
	skipped := 0
	for i := len(all) - 1; i >= 0; i-- {
		m := all[i]
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Kind != "" && m.Kind != f.Kind {
			continue
		}
		if skipped < f.Offset {
			skipped++
			continue
		}
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
		out = append(out, &m)
	}
	return out
}

// ── Rapports ─────────────────────────────────────────────────────────────────

// ReportRepo rapports de actividad comercial.
type ReportRepo struct {
	s *Store
}

// Create guarda un rapport.
func (r *ReportRepo) Create(_ context.Context, rep *entity.ActivityReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reports = append(r.s.reports, *rep)
	return nil
}

// ListByCompany rapports de la empresa, más recientes primero.
func (r *ReportRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.ActivityReport, error) {
	r.s.mu.RLock()
	matches := make([]entity.ActivityReport, 0)
	for _, rep := range r.s.reports {
		if rep.CompanyID == companyID {
			matches = append(matches, rep)
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matches) {
		return []*entity.ActivityReport{}, nil
	}
	matches = matches[offset:]
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]*entity.ActivityReport, len(matches))
	for i := range matches {
		out[i] = &matches[i]
	}
	return out, nil
}
