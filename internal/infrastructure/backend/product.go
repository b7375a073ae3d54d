package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// CreateProductRequest alta de producto con stock inicial.
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	InitialQty  int64            `json:"initialQty"`
}

// UpdateProductRequest actualización parcial; campos nil no se envían.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// AddStockRequest entrada de stock en la empresa.
type AddStockRequest struct {
	ProductID string     `json:"productId"`
	QtyAdded  int64      `json:"qtyAdded"`
	Date      *time.Time `json:"date,omitempty"`
}

// AddStockResponse stock disponible tras la entrada.
type AddStockResponse struct {
	Message        string              `json:"message,omitempty"`
	AvailableStock int64               `json:"availableStock"`
	CompanyEntry   entity.CompanyEntry `json:"companyEntry"`
}

// TransferStockRequest transferencia de un producto a un punto de venta.
type TransferStockRequest struct {
	ProductID     string     `json:"productId"`
	PointOfSaleID string     `json:"pointOfSaleId"`
	Qty           int64      `json:"qty"`
	TransferDate  *time.Time `json:"transferDate,omitempty"`
}

// TransferStockResponse stock disponible tras la transferencia.
type TransferStockResponse struct {
	Message        string              `json:"message,omitempty"`
	AvailableStock int64               `json:"availableStock"`
	TransferItem   entity.TransferItem `json:"transferItem"`
}

// StockHistory historial de entradas y transferencias de un producto.
type StockHistory struct {
	Product        entity.Product            `json:"product"`
	AvailableStock int64                     `json:"availableStock"`
	History        []entity.StockHistoryItem `json:"history"`
}

type productEnvelope struct {
	Message string         `json:"message,omitempty"`
	Product entity.Product `json:"product"`
}

func productPath(id string) string {
	return "/products/" + url.PathEscape(id)
}

// CreateProduct crea un producto.
func (c *Client) CreateProduct(ctx context.Context, token string, in CreateProductRequest) (*entity.Product, error) {
	var out productEnvelope
	if err := c.do(ctx, token, call{
		op: "products.create", method: http.MethodPost, path: "/products",
		body: in, out: &out, fallback: "Erreur lors de la création du produit",
	}); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// ListProducts productos de la empresa.
func (c *Client) ListProducts(ctx context.Context, token string) ([]entity.Product, error) {
	var out []entity.Product
	if err := c.do(ctx, token, call{
		op: "products.list", method: http.MethodGet, path: "/products",
		out: &out, fallback: "Erreur lors de la récupération des produits",
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct un producto por id.
func (c *Client) GetProduct(ctx context.Context, token, id string) (*entity.Product, error) {
	var out entity.Product
	if err := c.do(ctx, token, call{
		op: "products.get", method: http.MethodGet, path: productPath(id),
		out: &out, fallback: "Erreur lors de la récupération du produit",
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct actualiza nombre, descripción o precio.
func (c *Client) UpdateProduct(ctx context.Context, token, id string, in UpdateProductRequest) (*entity.Product, error) {
	var out productEnvelope
	if err := c.do(ctx, token, call{
		op: "products.update", method: http.MethodPut, path: productPath(id),
		body: in, out: &out, fallback: "Erreur lors de la mise à jour du produit",
	}); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// DeactivateProduct desactiva el producto (el backend no lo borra).
func (c *Client) DeactivateProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, token, call{
		op: "products.deactivate", method: http.MethodDelete, path: productPath(id),
		fallback: "Erreur lors de la désactivation du produit",
	})
}

// AddStock registra una entrada de stock.
func (c *Client) AddStock(ctx context.Context, token string, in AddStockRequest) (*AddStockResponse, error) {
	var out AddStockResponse
	if err := c.do(ctx, token, call{
		op: "products.add_stock", method: http.MethodPost, path: "/products/add-stock",
		body: in, out: &out, fallback: "Erreur lors de l'ajout de stock",
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// TransferStock transfiere stock de un producto a un punto de venta.
func (c *Client) TransferStock(ctx context.Context, token string, in TransferStockRequest) (*TransferStockResponse, error) {
	var out TransferStockResponse
	if err := c.do(ctx, token, call{
		op: "products.transfer_stock", method: http.MethodPost, path: "/products/transfer-stock",
		body: in, out: &out, fallback: "Erreur lors du transfert de stock",
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// StockHistory historial de movimientos de un producto.
func (c *Client) StockHistory(ctx context.Context, token, id string) (*StockHistory, error) {
	var out StockHistory
	if err := c.do(ctx, token, call{
		op: "products.stock_history", method: http.MethodGet, path: productPath(id) + "/stock-history",
		out: &out, fallback: "Erreur lors de la récupération de l'historique",
	}); err != nil {
		return nil, err
	}
	return &out, nil
}
