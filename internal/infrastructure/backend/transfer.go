package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/application/ports"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

var _ ports.ReportSource = (*Client)(nil)

// CreateTransferItemRequest línea de una transferencia nueva.
type CreateTransferItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// CreateTransferRequest transferencia de la empresa a un punto de venta.
// CompanyID y UserID los completa el backend a partir del token cuando llegan vacíos.
type CreateTransferRequest struct {
	CompanyID     string                      `json:"companyId,omitempty"`
	UserID        string                      `json:"userId,omitempty"`
	PointOfSaleID string                      `json:"pointOfSaleId"`
	TransferDate  *time.Time                  `json:"transferDate,omitempty"`
	Notes         string                      `json:"notes,omitempty"`
	Items         []CreateTransferItemRequest `json:"transferItems"`
}

// Validate devuelve todos los mensajes de validación; las líneas se numeran desde 1.
func (r CreateTransferRequest) Validate() error {
	var v domain.ValidationErrors
	if r.PointOfSaleID == "" {
		v = append(v, "Le point de vente de destination est requis")
	}
	if len(r.Items) == 0 {
		v = append(v, "Au moins un article est requis pour le transfert")
	}
	for i, it := range r.Items {
		n := i + 1
		if it.ProductID == "" {
			v = append(v, fmt.Sprintf("Produit requis pour l'article %d", n))
		}
		if it.Quantity <= 0 {
			v = append(v, fmt.Sprintf("Quantité invalide pour l'article %d", n))
		}
	}
	return v.OrNil()
}

func transferQuery(f ports.TransferQuery) url.Values {
	page, limit := f.Page, f.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	q := pagination(nil, page, limit)
	for k, val := range map[string]string{
		"companyId":     f.CompanyID,
		"userId":        f.UserID,
		"pointOfSaleId": f.PointOfSaleID,
		"startDate":     f.StartDate,
		"endDate":       f.EndDate,
	} {
		if val != "" {
			q.Set(k, val)
		}
	}
	return q
}

// CreateTransfer valida y crea la transferencia. Si falta stock el backend responde
// con details; ver FormatTransferError.
func (c *Client) CreateTransfer(ctx context.Context, token string, in CreateTransferRequest) (*entity.Transfer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out struct {
		Message string          `json:"message"`
		Data    entity.Transfer `json:"data"`
	}
	if err := c.do(ctx, token, call{
		op: "transfers.create", method: http.MethodPost, path: "/transfers",
		body: in, out: &out, fallback: "Erreur lors de la création du transfert",
	}); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ListTransfers transferencias paginadas y filtradas.
func (c *Client) ListTransfers(ctx context.Context, token string, f ports.TransferQuery) (*entity.TransferPage, error) {
	var out entity.TransferPage
	if err := c.do(ctx, token, call{
		op: "transfers.list", method: http.MethodGet, path: "/transfers",
		query: transferQuery(f), out: &out, fallback: "Erreur lors de la récupération des transferts",
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTransfer una transferencia por id.
func (c *Client) GetTransfer(ctx context.Context, token, id string) (*entity.Transfer, error) {
	var out struct {
		Data entity.Transfer `json:"data"`
	}
	if err := c.do(ctx, token, call{
		op: "transfers.get", method: http.MethodGet, path: "/transfers/" + url.PathEscape(id),
		out: &out, fallback: "Erreur lors de la récupération du transfert",
	}); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// AvailableStock stock disponible por producto de la empresa.
func (c *Client) AvailableStock(ctx context.Context, token, companyID string) (*entity.AvailableStock, error) {
	var out struct {
		Data entity.AvailableStock `json:"data"`
	}
	if err := c.do(ctx, token, call{
		op: "transfers.available_stock", method: http.MethodGet, path: "/transfers/stock/" + url.PathEscape(companyID),
		out: &out, fallback: "Erreur lors de la récupération du stock disponible",
	}); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
