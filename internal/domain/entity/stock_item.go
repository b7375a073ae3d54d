package entity

import (
	"time"

	"github.com/jhoicas/Backoffice-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockItem artículo del ledger local de cantidades.
// Quantity puede ser ilimitada para bienes numéricos; Threshold es el umbral de reaprovisionamiento.
type StockItem struct {
	ID        string             `json:"id"`
	Name      string             `json:"nom"`
	Category  Category           `json:"categorie"`
	Price     decimal.Decimal    `json:"prix"`
	Quantity  inventory.Quantity `json:"quantite"`
	Threshold int64              `json:"seuilReappro"`
	UpdatedAt time.Time          `json:"derniereMiseAJour"`
}

// NeedsReplenishment indica si la cantidad contable llegó al umbral. Los ilimitados nunca.
func (s *StockItem) NeedsReplenishment() bool {
	n, ok := s.Quantity.Amount()
	return ok && n <= s.Threshold
}

// OutOfStock indica cantidad contable agotada (o negativa por sobreventa).
func (s *StockItem) OutOfStock() bool {
	n, ok := s.Quantity.Amount()
	return ok && n <= 0
}
