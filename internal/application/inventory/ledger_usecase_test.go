package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 6, 12, 9, 30, 0, 0, time.UTC)

type countingObserver struct {
	mu       sync.Mutex
	kinds    []string
	oversold int
}

func (o *countingObserver) ObserveMovement(kind string, oversold bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.kinds = append(o.kinds, kind)
	if oversold {
		o.oversold++
	}
}

// newLedger construye el ledger sobre un almacén en memoria con el catálogo inicial.
func newLedger(t *testing.T, opts ...inventory.LedgerOption) (*inventory.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	opts = append([]inventory.LedgerOption{inventory.WithClock(func() time.Time { return fixedNow })}, opts...)
	uc := inventory.NewLedgerUseCase(memory.NewTxRunner(store), store.Items(), store.Movements(), nil, opts...)
	n, err := uc.Seed(context.Background(), inventory.DefaultCatalogue())
	require.NoError(t, err)
	require.Equal(t, 9, n)
	return uc, store
}

func quantityOf(t *testing.T, uc *inventory.LedgerUseCase, id string) domaininv.Quantity {
	t.Helper()
	item, err := uc.GetItem(context.Background(), id)
	require.NoError(t, err)
	return item.Quantity
}

func movementsOf(t *testing.T, uc *inventory.LedgerUseCase, id string) []*entity.StockMovement {
	t.Helper()
	list, err := uc.ListMovements(context.Background(), repository.MovementFilter{ProductID: id})
	require.NoError(t, err)
	return list
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_DebitaYRegistraMovimiento(t *testing.T) {
	uc, _ := newLedger(t)

	res, err := uc.RecordSale(context.Background(), inventory.RecordInput{ProductID: "1", Quantity: 5, Actor: "Awa"})
	require.NoError(t, err)

	assert.True(t, res.Item.Quantity.Equal(domaininv.Finite(45)))
	assert.Equal(t, fixedNow, res.Item.UpdatedAt)
	assert.Equal(t, entity.MovementSale, res.Movement.Kind)
	assert.Equal(t, int64(-5), res.Movement.Delta)
	require.NotNil(t, res.Movement.Before)
	require.NotNil(t, res.Movement.After)
	assert.Equal(t, int64(50), *res.Movement.Before)
	assert.Equal(t, int64(45), *res.Movement.After)
	assert.Equal(t, "Awa", res.Movement.Actor)
	assert.False(t, res.Movement.Oversold)

	assert.True(t, quantityOf(t, uc, "1").Equal(domaininv.Finite(45)))
	assert.Len(t, movementsOf(t, uc, "1"), 1)
}

func TestRecordSale_ProductoDesconocidoNoEscribe(t *testing.T) {
	uc, _ := newLedger(t)

	_, err := uc.RecordSale(context.Background(), inventory.RecordInput{ProductID: "404", Quantity: 1, Actor: "Awa"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := uc.ListMovements(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRecordSale_CantidadNoPositivaRechazada(t *testing.T) {
	uc, _ := newLedger(t)
	for _, q := range []int64{0, -3} {
		_, err := uc.RecordSale(context.Background(), inventory.RecordInput{ProductID: "1", Quantity: q})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.True(t, quantityOf(t, uc, "1").Equal(domaininv.Finite(50)))
}

func TestRecordSale_IlimitadoPermaneceIlimitado(t *testing.T) {
	uc, _ := newLedger(t)

	res, err := uc.RecordSale(context.Background(), inventory.RecordInput{ProductID: "5", Quantity: 30, Actor: "Koffi"})
	require.NoError(t, err)

	assert.True(t, res.Item.Quantity.IsUnlimited())
	assert.Nil(t, res.Movement.Before)
	assert.Nil(t, res.Movement.After)
	assert.Equal(t, int64(-30), res.Movement.Delta)
	assert.True(t, quantityOf(t, uc, "5").IsUnlimited())
}

func TestRecordSale_Sobreventa(t *testing.T) {
	t.Run("allow registra saldo negativo marcado", func(t *testing.T) {
		obs := &countingObserver{}
		uc, _ := newLedger(t, inventory.WithObserver(obs))

		res, err := uc.RecordSale(context.Background(), inventory.RecordInput{ProductID: "9", Quantity: 10})
		require.NoError(t, err)
		assert.True(t, res.Item.Quantity.Equal(domaininv.Finite(-3)))
		assert.True(t, res.Movement.Oversold)
		assert.Equal(t, 1, obs.oversold)
	})

	t.Run("reject no modifica el stock", func(t *testing.T) {
		uc, _ := newLedger(t, inventory.WithOversellPolicy(inventory.OversellReject))

		_, err := uc.RecordSale(context.Background(), inventory.RecordInput{ProductID: "9", Quantity: 10})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.True(t, quantityOf(t, uc, "9").Equal(domaininv.Finite(7)))
		assert.Empty(t, movementsOf(t, uc, "9"))
	})

	t.Run("clamp debita solo lo disponible", func(t *testing.T) {
		uc, _ := newLedger(t, inventory.WithOversellPolicy(inventory.OversellClamp))

		res, err := uc.RecordSale(context.Background(), inventory.RecordInput{ProductID: "9", Quantity: 10})
		require.NoError(t, err)
		assert.True(t, res.Item.Quantity.Equal(domaininv.Finite(0)))
		assert.Equal(t, int64(-7), res.Movement.Delta)
		assert.True(t, res.Movement.Oversold)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Reaprovisionamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordReplenishment_NotaPorDefecto(t *testing.T) {
	uc, _ := newLedger(t)

	res, err := uc.RecordReplenishment(context.Background(), inventory.RecordInput{ProductID: "4", Quantity: 15, Actor: "Admin"})
	require.NoError(t, err)
	assert.True(t, res.Item.Quantity.Equal(domaininv.Finite(40)))
	assert.Equal(t, entity.MovementReplenishment, res.Movement.Kind)
	assert.Equal(t, int64(15), res.Movement.Delta)
	assert.Equal(t, "Réapprovisionnement de 15 unités", res.Movement.Note)
}

func TestRecordReplenishment_CantidadNoPositivaNoMuta(t *testing.T) {
	uc, _ := newLedger(t)

	for _, q := range []int64{0, -5} {
		_, err := uc.RecordReplenishment(context.Background(), inventory.RecordInput{ProductID: "2", Quantity: q, Actor: "Admin"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "q=%d", q)
	}
	assert.True(t, quantityOf(t, uc, "2").Equal(domaininv.Finite(30)))
	assert.Empty(t, movementsOf(t, uc, "2"))
}

func TestLedger_RoundTripRestauraCantidad(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3", "4", "9"} {
		for _, q := range []int64{1, 7, 250} {
			before := quantityOf(t, uc, id)

			_, err := uc.RecordReplenishment(ctx, inventory.RecordInput{ProductID: id, Quantity: q, Actor: "u"})
			require.NoError(t, err)
			_, err = uc.RecordSale(ctx, inventory.RecordInput{ProductID: id, Quantity: q, Actor: "u"})
			require.NoError(t, err)

			assert.True(t, before.Equal(quantityOf(t, uc, id)), "producto %s q=%d", id, q)
		}
	}
}

func TestLedger_MovimientosMasRecientesPrimero(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	_, err := uc.RecordSale(ctx, inventory.RecordInput{ProductID: "3", Quantity: 2})
	require.NoError(t, err)
	_, err = uc.RecordReplenishment(ctx, inventory.RecordInput{ProductID: "3", Quantity: 9})
	require.NoError(t, err)

	list := movementsOf(t, uc, "3")
	require.Len(t, list, 2)
	assert.Equal(t, entity.MovementReplenishment, list[0].Kind)
	assert.Equal(t, entity.MovementSale, list[1].Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes, alta y salud
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordAdjustment(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	res, err := uc.RecordAdjustment(ctx, inventory.AdjustInput{ProductID: "1", Delta: -2, Note: "casse"})
	require.NoError(t, err)
	assert.True(t, res.Item.Quantity.Equal(domaininv.Finite(48)))
	assert.Equal(t, entity.MovementAdjustment, res.Movement.Kind)

	_, err = uc.RecordAdjustment(ctx, inventory.AdjustInput{ProductID: "6", Delta: 3})
	assert.ErrorIs(t, err, domain.ErrUntrackedStock)

	setTo := int64(500)
	res, err = uc.RecordAdjustment(ctx, inventory.AdjustInput{ProductID: "6", SetTo: &setTo})
	require.NoError(t, err)
	assert.True(t, res.Item.Quantity.Equal(domaininv.Finite(500)))

	_, err = uc.RecordAdjustment(ctx, inventory.AdjustInput{ProductID: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateItem(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	item, err := uc.CreateItem(ctx, inventory.CreateItemInput{
		Name: "Forfait Data 10Go", Category: entity.CategoryDigital, Price: decimal.NewFromInt(5000), Threshold: 10,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.True(t, item.Quantity.IsUnlimited())

	_, err = uc.CreateItem(ctx, inventory.CreateItemInput{ID: "1", Name: "Doublon", Category: entity.CategoryPhysical})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateItem(ctx, inventory.CreateItemInput{Name: "", Category: "autre"})
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSeed_Idempotente(t *testing.T) {
	uc, _ := newLedger(t)
	n, err := uc.Seed(context.Background(), inventory.DefaultCatalogue())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestHealthYReposicion(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	// Modem ADSL: 7 → 1 (umbral 2); Modem 4G: 25 → 0 (umbral 5)
	_, err := uc.RecordSale(ctx, inventory.RecordInput{ProductID: "9", Quantity: 6})
	require.NoError(t, err)
	_, err = uc.RecordSale(ctx, inventory.RecordInput{ProductID: "4", Quantity: 25})
	require.NoError(t, err)

	h, err := uc.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, h.Total)
	assert.Equal(t, 4, h.Unlimited)
	assert.Equal(t, 1, h.OutOfStock)
	assert.Equal(t, 2, h.Low)

	lines, err := uc.ReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "4", lines[0].ProductID)
	assert.Equal(t, int64(8), lines[0].SuggestedQty)
	assert.Equal(t, 1, lines[0].Priority)
	assert.Equal(t, "9", lines[1].ProductID)
	assert.Equal(t, int64(2), lines[1].SuggestedQty)
}

func TestRecordSale_ConcurrenteSinPerdidas(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordSale(ctx, inventory.RecordInput{ProductID: "3", Quantity: 2})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.True(t, quantityOf(t, uc, "3").Equal(domaininv.Finite(80)))
	assert.Len(t, movementsOf(t, uc, "3"), 20)
}
