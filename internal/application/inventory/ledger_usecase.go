package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// OversellPolicy decide qué pasa cuando una venta supera la cantidad contable disponible.
type OversellPolicy string

const (
	// OversellAllow registra el saldo negativo y marca el movimiento como sobreventa.
	OversellAllow OversellPolicy = "allow"
	// OversellReject rechaza la venta con domain.ErrInsufficientStock.
	OversellReject OversellPolicy = "reject"
	// OversellClamp debita solo lo disponible (saldo mínimo 0) y marca sobreventa.
	OversellClamp OversellPolicy = "clamp"
)

// ParseOversellPolicy valida el texto de configuración.
func ParseOversellPolicy(s string) (OversellPolicy, error) {
	switch p := OversellPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case OversellAllow, OversellReject, OversellClamp:
		return p, nil
	case "":
		return OversellAllow, nil
	default:
		return "", fmt.Errorf("política de sobreventa desconocida %q", s)
	}
}

// LedgerUseCase mantiene la cantidad disponible por artículo coherente con su log de movimientos.
// Cada operación bloquea solo el artículo afectado y agrega un único movimiento.
type LedgerUseCase struct {
	txRunner  TxRunner
	items     repository.StockItemRepository
	movements repository.StockMovementRepository
	policy    OversellPolicy
	observer  MovementObserver
	log       *logger.Logger
	now       func() time.Time
}

// LedgerOption configura opciones del caso de uso.
type LedgerOption func(*LedgerUseCase)

// WithOversellPolicy cambia la política de sobreventa (por defecto allow).
func WithOversellPolicy(p OversellPolicy) LedgerOption {
	return func(uc *LedgerUseCase) { uc.policy = p }
}

// WithObserver registra un observador de movimientos.
func WithObserver(o MovementObserver) LedgerOption {
	return func(uc *LedgerUseCase) {
		if o != nil {
			uc.observer = o
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) LedgerOption {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// NewLedgerUseCase construye el caso de uso del ledger.
func NewLedgerUseCase(
	txRunner TxRunner,
	items repository.StockItemRepository,
	movements repository.StockMovementRepository,
	log *logger.Logger,
	opts ...LedgerOption,
) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &LedgerUseCase{
		txRunner:  txRunner,
		items:     items,
		movements: movements,
		policy:    OversellAllow,
		observer:  noopObserver{},
		log:       log.Component("ledger"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RecordInput entrada de una venta o un reaprovisionamiento.
type RecordInput struct {
	ProductID string
	Quantity  int64
	Actor     string
	Note      string
}

// AdjustInput entrada de un ajuste: Delta con signo, o SetTo para fijar una cantidad contable
// (también convierte un artículo ilimitado en contable).
type AdjustInput struct {
	ProductID string
	Delta     int64
	SetTo     *int64
	Actor     string
	Note      string
}

// Result artículo tras la operación y movimiento agregado.
type Result struct {
	Item     *entity.StockItem     `json:"article"`
	Movement *entity.StockMovement `json:"mouvement"`
}

// ── Operaciones ──────────────────────────────────────────────────────────────

// RecordSale debita quantity del artículo y agrega un movimiento "vente".
// Artículo desconocido: domain.ErrNotFound sin escribir nada.
// Artículo ilimitado: la cantidad no cambia pero el movimiento queda registrado.
func (uc *LedgerUseCase) RecordSale(ctx context.Context, in RecordInput) (*Result, error) {
	if strings.TrimSpace(in.ProductID) == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var res *Result
	err := uc.txRunner.Run(ctx, func(items repository.StockItemRepository, movements repository.StockMovementRepository) error {
		item, err := lockItem(ctx, items, in.ProductID)
		if err != nil {
			return err
		}
		delta := -in.Quantity
		oversold := false
		if current, ok := item.Quantity.Amount(); ok && current < in.Quantity {
			switch uc.policy {
			case OversellReject:
				return fmt.Errorf("%w: %s disponible %d, solicitado %d",
					domain.ErrInsufficientStock, item.Name, current, in.Quantity)
			case OversellClamp:
				delta = -max(current, 0)
			}
			oversold = true
		}
		res, err = uc.apply(ctx, items, movements, item, entity.MovementSale, delta, in.Actor, in.Note, oversold)
		return err
	})
	if err != nil {
		return nil, err
	}
	if res.Movement.Oversold {
		uc.log.Warn().
			Str("product_id", res.Item.ID).
			Int64("requested", in.Quantity).
			Str("quantity", res.Item.Quantity.String()).
			Str("policy", string(uc.policy)).
			Msg("venta por encima del stock disponible")
	}
	uc.observer.ObserveMovement(entity.MovementSale, res.Movement.Oversold)
	return res, nil
}

// RecordReplenishment acredita quantity al artículo y agrega un movimiento "reappro".
// quantity <= 0 devuelve domain.ErrInvalidInput sin tocar el stock.
func (uc *LedgerUseCase) RecordReplenishment(ctx context.Context, in RecordInput) (*Result, error) {
	if strings.TrimSpace(in.ProductID) == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	note := in.Note
	if note == "" {
		note = fmt.Sprintf("Réapprovisionnement de %d unités", in.Quantity)
	}
	var res *Result
	err := uc.txRunner.Run(ctx, func(items repository.StockItemRepository, movements repository.StockMovementRepository) error {
		item, err := lockItem(ctx, items, in.ProductID)
		if err != nil {
			return err
		}
		res, err = uc.apply(ctx, items, movements, item, entity.MovementReplenishment, in.Quantity, in.Actor, note, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.observer.ObserveMovement(entity.MovementReplenishment, false)
	return res, nil
}

// RecordAdjustment corrige la cantidad y agrega un movimiento "ajustement".
// Un delta sobre un artículo ilimitado devuelve domain.ErrUntrackedStock; para volverlo contable usar SetTo.
func (uc *LedgerUseCase) RecordAdjustment(ctx context.Context, in AdjustInput) (*Result, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SetTo == nil && in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SetTo != nil && *in.SetTo < 0 {
		return nil, domain.ErrInvalidInput
	}
	var res *Result
	err := uc.txRunner.Run(ctx, func(items repository.StockItemRepository, movements repository.StockMovementRepository) error {
		item, err := lockItem(ctx, items, in.ProductID)
		if err != nil {
			return err
		}
		if in.SetTo == nil {
			if item.Quantity.IsUnlimited() {
				return domain.ErrUntrackedStock
			}
			res, err = uc.apply(ctx, items, movements, item, entity.MovementAdjustment, in.Delta, in.Actor, in.Note, false)
			return err
		}
		current, _ := item.Quantity.Amount()
		item.Quantity = domaininv.Finite(current)
		res, err = uc.apply(ctx, items, movements, item, entity.MovementAdjustment, *in.SetTo-current, in.Actor, in.Note, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.observer.ObserveMovement(entity.MovementAdjustment, false)
	return res, nil
}

// apply muta la cantidad, persiste el artículo y agrega el movimiento dentro de la tx.
func (uc *LedgerUseCase) apply(
	ctx context.Context,
	items repository.StockItemRepository,
	movements repository.StockMovementRepository,
	item *entity.StockItem,
	kind string, delta int64, actor, note string, oversold bool,
) (*Result, error) {
	now := uc.now().UTC()
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   item.ID,
		ProductName: item.Name,
		Kind:        kind,
		Delta:       delta,
		Actor:       actor,
		Note:        note,
		Oversold:    oversold,
		CreatedAt:   now,
	}
	if before, ok := item.Quantity.Amount(); ok {
		after := before + delta
		mov.Before, mov.After = &before, &after
	}
	item.Quantity = item.Quantity.Add(delta)
	item.UpdatedAt = now
	if err := items.Upsert(ctx, item); err != nil {
		return nil, err
	}
	if err := movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return &Result{Item: item, Movement: mov}, nil
}

func lockItem(ctx context.Context, items repository.StockItemRepository, id string) (*entity.StockItem, error) {
	item, err := items.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

// CreateItemInput alta de un artículo. Quantity nil: ilimitado si es numérico, 0 si es físico.
type CreateItemInput struct {
	ID        string
	Name      string
	Category  entity.Category
	Price     decimal.Decimal
	Quantity  *domaininv.Quantity
	Threshold int64
}

// CreateItem da de alta un artículo; domain.ErrDuplicate si el id ya existe.
func (uc *LedgerUseCase) CreateItem(ctx context.Context, in CreateItemInput) (*entity.StockItem, error) {
	var errs domain.ValidationErrors
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "Le nom du produit est requis")
	}
	if !in.Category.Valid() {
		errs = append(errs, "Catégorie invalide")
	}
	if in.Price.IsNegative() {
		errs = append(errs, "Le prix doit être positif")
	}
	if in.Threshold < 0 {
		errs = append(errs, "Le seuil de réapprovisionnement doit être positif")
	}
	if in.Quantity != nil {
		if n, ok := in.Quantity.Amount(); ok && n < 0 {
			errs = append(errs, "La quantité initiale doit être positive")
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	qty := domaininv.Finite(0)
	if in.Quantity != nil {
		qty = *in.Quantity
	} else if in.Category == entity.CategoryDigital {
		qty = domaininv.Unlimited()
	}
	item := &entity.StockItem{
		ID:        strings.TrimSpace(in.ID),
		Name:      strings.TrimSpace(in.Name),
		Category:  in.Category,
		Price:     in.Price,
		Quantity:  qty,
		Threshold: in.Threshold,
		UpdatedAt: uc.now().UTC(),
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	err := uc.txRunner.Run(ctx, func(items repository.StockItemRepository, _ repository.StockMovementRepository) error {
		existing, err := items.GetForUpdate(ctx, item.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		return items.Upsert(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", item.ID).Str("quantity", item.Quantity.String()).Msg("artículo creado")
	return item, nil
}

// Seed inserta los artículos que aún no existen. Devuelve cuántos se insertaron.
func (uc *LedgerUseCase) Seed(ctx context.Context, catalogue []*entity.StockItem) (int, error) {
	inserted := 0
	err := uc.txRunner.Run(ctx, func(items repository.StockItemRepository, _ repository.StockMovementRepository) error {
		for _, it := range catalogue {
			existing, err := items.GetForUpdate(ctx, it.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			cp := *it
			if cp.UpdatedAt.IsZero() {
				cp.UpdatedAt = uc.now().UTC()
			}
			if err := items.Upsert(ctx, &cp); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetItem obtiene un artículo; domain.ErrNotFound si no existe.
func (uc *LedgerUseCase) GetItem(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := uc.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems lista los artículos del ledger.
func (uc *LedgerUseCase) ListItems(ctx context.Context) ([]*entity.StockItem, error) {
	return uc.items.List(ctx)
}

// ListMovements lista movimientos, más recientes primero (límite por defecto 50, máximo 200).
func (uc *LedgerUseCase) ListMovements(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return uc.movements.List(ctx, f)
}

// Health resumen del estado del stock del ledger.
type Health struct {
	Total      int `json:"total"`
	Low        int `json:"enRupture"`
	OutOfStock int `json:"epuises"`
	Unlimited  int `json:"illimites"`
}

// Health cuenta artículos bajo umbral, agotados e ilimitados.
func (uc *LedgerUseCase) Health(ctx context.Context) (*Health, error) {
	list, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	h := &Health{Total: len(list)}
	for _, it := range list {
		switch {
		case it.Quantity.IsUnlimited():
			h.Unlimited++
		case it.OutOfStock():
			h.OutOfStock++
			h.Low++
		case it.NeedsReplenishment():
			h.Low++
		}
	}
	return h, nil
}

// ── Reposición ───────────────────────────────────────────────────────────────

// ReplenishmentLine artículo contable bajo umbral con la cantidad sugerida de pedido.
type ReplenishmentLine struct {
	ProductID    string `json:"produitId"`
	Name         string `json:"nom"`
	Current      int64  `json:"quantite"`
	Threshold    int64  `json:"seuilReappro"`
	IdealStock   int64  `json:"stockIdeal"`
	SuggestedQty int64  `json:"quantiteSuggeree"`
	Priority     int    `json:"priorite"`
}

// ReplenishmentList artículos en o bajo el umbral. Stock ideal = 1.5 × umbral;
// orden por mayor déficit relativo al umbral y luego por id.
func (uc *LedgerUseCase) ReplenishmentList(ctx context.Context) ([]ReplenishmentLine, error) {
	list, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	lines := make([]ReplenishmentLine, 0)
	for _, it := range list {
		if !it.NeedsReplenishment() {
			continue
		}
		current := it.Quantity.Available()
		ideal := (it.Threshold*3 + 1) / 2
		suggested := ideal - current
		if suggested < 0 {
			suggested = 0
		}
		lines = append(lines, ReplenishmentLine{
			ProductID:    it.ID,
			Name:         it.Name,
			Current:      current,
			Threshold:    it.Threshold,
			IdealStock:   ideal,
			SuggestedQty: suggested,
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		// déficit relativo: (umbral - actual) / umbral, comparado en cruz para evitar divisiones
		da := (a.Threshold - a.Current) * max(b.Threshold, 1)
		db := (b.Threshold - b.Current) * max(a.Threshold, 1)
		if da != db {
			return da > db
		}
		return a.ProductID < b.ProductID
	})
	for i := range lines {
		lines[i].Priority = i + 1
	}
	return lines, nil
}
