package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Las transiciones las decide el backend.
const (
	SaleStatusPending   = "pending"
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
)

// SaleStatusLabel etiqueta visible del estado.
func SaleStatusLabel(status string) string {
	switch status {
	case SaleStatusPending:
		return "En attente"
	case SaleStatusCompleted:
		return "Terminée"
	case SaleStatusCancelled:
		return "Annulée"
	default:
		return status
	}
}

// Sale venta registrada en el backend. Los montos llegan como texto y se decodifican a decimal;
// un monto mal formado hace fallar la decodificación completa.
type Sale struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	UserID        string          `json:"userId"`
	PointOfSaleID string          `json:"pointOfSaleId"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	SaleDate      time.Time       `json:"saleDate"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt,omitempty"`
	Items         []SaleItem      `json:"saleItems"`
	Customer      *Customer       `json:"customer,omitempty"`
	User          *UserRef        `json:"user,omitempty"`
	PointOfSale   *PointOfSale    `json:"pointOfSale,omitempty"`
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID        string          `json:"id,omitempty"`
	SaleID    string          `json:"saleId,omitempty"`
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Product   *ProductRef     `json:"product,omitempty"`
}

// UserRef referencia mínima a un usuario embebida en ventas y transferencias.
type UserRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

// FullName nombre para mostrar.
func (u *UserRef) FullName() string {
	if u == nil {
		return ""
	}
	return joinName(u.FirstName, u.LastName)
}

// ProductRef referencia mínima a un producto embebida en líneas.
type ProductRef struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// Pagination metadatos de paginación del backend.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// SalePage página de ventas del backend.
type SalePage struct {
	Data       []Sale     `json:"data"`
	Pagination Pagination `json:"pagination"`
}
