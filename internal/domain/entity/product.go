package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de la empresa (propiedad del backend).
// AvailableStock = TotalEntries - TotalTransferred.
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Price            decimal.Decimal `json:"price"`
	IsActive         bool            `json:"isActive"`
	AvailableStock   int64           `json:"availableStock"`
	TotalEntries     int64           `json:"totalEntries"`
	TotalTransferred int64           `json:"totalTransferred"`
	CompanyID        string          `json:"companyId"`
	CreatedAt        time.Time       `json:"createdAt,omitempty"`
	UpdatedAt        time.Time       `json:"updatedAt,omitempty"`
	CompanyEntries   []CompanyEntry  `json:"companyEntries,omitempty"`
}

// StockValue valor del stock disponible (disponible × precio).
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.AvailableStock))
}

// CompanyEntry entrada de stock a nivel empresa.
type CompanyEntry struct {
	ID        string    `json:"id"`
	QtyAdded  int64     `json:"qtyAdded"`
	Date      time.Time `json:"date"`
	ProductID string    `json:"productId"`
	CompanyID string    `json:"companyId"`
}

// Tipos de línea del historial de stock.
const (
	HistoryEntry    = "ENTRY"
	HistoryTransfer = "TRANSFER"
)

// StockHistoryItem línea del historial de stock de un producto.
type StockHistoryItem struct {
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Quantity    int64     `json:"quantity"`
	Description string    `json:"description"`
}
