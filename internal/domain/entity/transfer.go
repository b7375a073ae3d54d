package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer transferencia de stock de la empresa hacia un punto de venta. Inmutable una vez creada.
type Transfer struct {
	ID                 string              `json:"id"`
	CompanyID          string              `json:"companyId"`
	UserID             string              `json:"userId"`
	PointOfSaleID      string              `json:"pointOfSaleId,omitempty"`
	Destination        string              `json:"destinationPointOfSale,omitempty"`
	TransferDate       time.Time           `json:"transferDate"`
	Notes              string              `json:"notes,omitempty"`
	CreatedAt          time.Time           `json:"createdAt,omitempty"`
	UpdatedAt          time.Time           `json:"updatedAt,omitempty"`
	Items              []TransferItem      `json:"transferItems"`
	Company            *CompanyRef         `json:"company,omitempty"`
	User               *UserRef            `json:"user,omitempty"`
	StockVerifications []StockVerification `json:"stockVerifications,omitempty"`
}

// TransferItem línea de una transferencia.
type TransferItem struct {
	ID         string      `json:"id,omitempty"`
	TransferID string      `json:"transferId,omitempty"`
	ProductID  string      `json:"productId"`
	Quantity   int64       `json:"qty"`
	Product    *ProductRef `json:"product,omitempty"`
}

// ProductName nombre del producto o el id si no vino embebido.
func (i TransferItem) ProductName() string {
	if i.Product != nil && i.Product.Name != "" {
		return i.Product.Name
	}
	return i.ProductID
}

// UnitPrice precio del producto embebido (cero si no vino).
func (i TransferItem) UnitPrice() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price
}

// StockVerification verificación de stock devuelta al crear una transferencia.
type StockVerification struct {
	ProductID        string `json:"productId"`
	ProductName      string `json:"productName"`
	RequestedQty     int64  `json:"requestedQty,omitempty"`
	TotalStock       int64  `json:"totalStock"`
	TransferredStock int64  `json:"transferredStock"`
	AvailableStock   int64  `json:"availableStock"`
	HasEnoughStock   bool   `json:"hasEnoughStock"`
}

// Estados del stock disponible.
const (
	StockStatusAvailable  = "disponible"
	StockStatusOutOfStock = "épuisé"
)

// StockProduct stock de un producto a nivel empresa (total ingresado, transferido, disponible).
type StockProduct struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Price            decimal.Decimal `json:"price"`
	TotalStock       int64           `json:"totalStock"`
	TransferredStock int64           `json:"transferredStock"`
	AvailableStock   int64           `json:"availableStock"`
	StockStatus      string          `json:"stockStatus"`
}

// AvailableStock respuesta de stock disponible por empresa.
type AvailableStock struct {
	Company  CompanyRef     `json:"company"`
	Products []StockProduct `json:"products"`
	Summary  struct {
		TotalProducts     int `json:"totalProducts"`
		ProductsWithStock int `json:"productsWithStock"`
		OutOfStock        int `json:"outOfStock"`
	} `json:"summary"`
}

// TransferPage página de transferencias del backend.
type TransferPage struct {
	Data       []Transfer `json:"data"`
	Pagination Pagination `json:"pagination"`
}
