package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/inventory"
)

// CreateStockItemRequest body de POST /api/ledger/items. Quantity acepta un número
// o "Disponible" (ilimitado).
type CreateStockItemRequest struct {
	ID        string              `json:"id"`
	Name      string              `json:"nom"`
	Category  string              `json:"categorie"`
	Price     decimal.Decimal     `json:"prix"`
	Quantity  *inventory.Quantity `json:"quantite"`
	Threshold int64               `json:"seuilReappro"`
}

// MovementRequest body de venta y reabastecimiento.
type MovementRequest struct {
	Quantity int64  `json:"quantite"`
	Note     string `json:"note,omitempty"`
}

// AdjustmentRequest body de ajuste: delta con signo o valor absoluto (SetTo).
type AdjustmentRequest struct {
	Delta int64  `json:"delta"`
	SetTo *int64 `json:"fixerA,omitempty"`
	Note  string `json:"note,omitempty"`
}
