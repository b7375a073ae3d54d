package entity

import "time"

// Tipos de movimiento del ledger.
const (
	MovementSale          = "vente"
	MovementReplenishment = "reappro"
	MovementAdjustment    = "ajustement"
)

// StockMovement registro inmutable de un débito o crédito sobre un StockItem.
// Before/After son nil cuando la cantidad es ilimitada.
type StockMovement struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"produitId"`
	ProductName string    `json:"produitNom"`
	Kind        string    `json:"type"`
	Delta       int64     `json:"quantite"`
	Before      *int64    `json:"avant,omitempty"`
	After       *int64    `json:"apres,omitempty"`
	Actor       string    `json:"utilisateur"`
	Note        string    `json:"note,omitempty"`
	Oversold    bool      `json:"survente,omitempty"`
	CreatedAt   time.Time `json:"date"`
}
