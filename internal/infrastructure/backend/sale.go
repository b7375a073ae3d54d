package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// CreateSaleItemRequest línea de una venta nueva.
type CreateSaleItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateSaleRequest alta de una venta.
type CreateSaleRequest struct {
	CustomerID    string                  `json:"customerId"`
	PointOfSaleID string                  `json:"pointOfSaleId"`
	TotalAmount   decimal.Decimal         `json:"totalAmount"`
	SaleDate      time.Time               `json:"saleDate"`
	Status        string                  `json:"status"`
	Notes         string                  `json:"notes,omitempty"`
	Items         []CreateSaleItemRequest `json:"saleItems"`
}

// Validate devuelve todos los mensajes de validación; las líneas se numeran desde 1.
func (r CreateSaleRequest) Validate() error {
	var v domain.ValidationErrors
	if r.CustomerID == "" {
		v = append(v, "Le client est requis")
	}
	if r.PointOfSaleID == "" {
		v = append(v, "Le point de vente est requis")
	}
	if !r.TotalAmount.IsPositive() {
		v = append(v, "Le montant total doit être supérieur à 0")
	}
	if r.SaleDate.IsZero() {
		v = append(v, "La date de vente est requise")
	}
	if len(r.Items) == 0 {
		v = append(v, "Au moins un article est requis")
	}
	for i, it := range r.Items {
		n := i + 1
		if it.ProductID == "" {
			v = append(v, fmt.Sprintf("Produit requis pour l'article %d", n))
		}
		if it.Quantity <= 0 {
			v = append(v, fmt.Sprintf("Quantité invalide pour l'article %d", n))
		}
		if !it.UnitPrice.IsPositive() {
			v = append(v, fmt.Sprintf("Prix unitaire invalide pour l'article %d", n))
		}
	}
	switch r.Status {
	case "", entity.SaleStatusPending, entity.SaleStatusCompleted, entity.SaleStatusCancelled:
	default:
		v = append(v, "Le statut de la vente est invalide")
	}
	return v.OrNil()
}

// CreateSale valida y crea la venta. Sin estado explícito queda pendiente.
func (c *Client) CreateSale(ctx context.Context, token string, in CreateSaleRequest) (*entity.Sale, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = entity.SaleStatusPending
	}
	var out entity.Sale
	if err := c.do(ctx, token, call{
		op: "sales.create", method: http.MethodPost, path: "/sales",
		body: in, out: &out, fallback: "Erreur lors de la création de la vente",
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSales ventas paginadas (por defecto página 1, límite 10).
func (c *Client) ListSales(ctx context.Context, token string, page, limit int) (*entity.SalePage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	var out entity.SalePage
	if err := c.do(ctx, token, call{
		op: "sales.list", method: http.MethodGet, path: "/sales",
		query: pagination(nil, page, limit), out: &out, fallback: "Erreur lors de la récupération des ventes",
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSale una venta por id.
func (c *Client) GetSale(ctx context.Context, token, id string) (*entity.Sale, error) {
	var out entity.Sale
	if err := c.do(ctx, token, call{
		op: "sales.get", method: http.MethodGet, path: "/sales/" + url.PathEscape(id),
		out: &out, fallback: "Erreur lors de la récupération de la vente",
	}); err != nil {
		return nil, err
	}
	return &out, nil
}
