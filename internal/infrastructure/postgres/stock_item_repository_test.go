package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// fakeRow simula pgx.Row copiando valores fijos a los destinos de Scan.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *decimal.Decimal:
			*p = r.values[i].(decimal.Decimal)
		case **int64:
			if r.values[i] == nil {
				*p = nil
			} else {
				v := r.values[i].(int64)
				*p = &v
			}
		case *bool:
			*p = r.values[i].(bool)
		case *int64:
			*p = r.values[i].(int64)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

func TestScanStockItem_Finito(t *testing.T) {
	now := time.Now().UTC()
	item, err := scanStockItem(fakeRow{values: []any{
		"1", "Pocket WiFi 4G", "physique", decimal.NewFromInt(89900), int64(50), false, int64(10), now,
	}})
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryPhysical, item.Category)
	n, ok := item.Quantity.Amount()
	assert.True(t, ok)
	assert.Equal(t, int64(50), n)
	assert.Equal(t, now, item.UpdatedAt)
}

func TestScanStockItem_Ilimitado(t *testing.T) {
	item, err := scanStockItem(fakeRow{values: []any{
		"5", "Mobile Money Celtiis", "numérique", decimal.Zero, nil, true, int64(100), time.Now(),
	}})
	require.NoError(t, err)
	assert.True(t, item.Quantity.IsUnlimited())
}

func TestScanStockItem_PropagaError(t *testing.T) {
	_, err := scanStockItem(fakeRow{err: errors.New("boom")})
	assert.Error(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestMigrationsEmbebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "001_ledger.sql", entries[0].Name())
}
