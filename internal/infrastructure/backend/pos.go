package backend

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// CreatePOSRequest alta de un punto de venta.
type CreatePOSRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Validate nombre de al menos 2 caracteres y dirección de al menos 5 (sin espacios extremos).
func (r CreatePOSRequest) Validate() error {
	var v domain.ValidationErrors
	if utf8.RuneCountInString(strings.TrimSpace(r.Name)) < 2 {
		v = append(v, "Le nom du point de vente doit contenir au moins 2 caractères")
	}
	if utf8.RuneCountInString(strings.TrimSpace(r.Location)) < 5 {
		v = append(v, "L'adresse doit contenir au moins 5 caractères")
	}
	return v.OrNil()
}

// CreatePOS crea un punto de venta tras validar localmente.
func (c *Client) CreatePOS(ctx context.Context, token string, in CreatePOSRequest) (*entity.PointOfSale, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Location = strings.TrimSpace(in.Location)
	var out entity.PointOfSale
	if err := c.do(ctx, token, call{
		op: "pos.create", method: http.MethodPost, path: "/pos",
		body: in, out: &out, fallback: "Erreur lors de la création du point de vente",
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPOS puntos de venta de la empresa.
func (c *Client) ListPOS(ctx context.Context, token string) ([]entity.PointOfSale, error) {
	var out struct {
		Count int                  `json:"count"`
		Data  []entity.PointOfSale `json:"data"`
	}
	if err := c.do(ctx, token, call{
		op: "pos.list", method: http.MethodGet, path: "/pos",
		out: &out, fallback: "Erreur lors de la récupération des points de vente",
	}); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ActiveUsersCount usuarios activos asignados al punto de venta.
func ActiveUsersCount(p entity.PointOfSale) int {
	n := 0
	for _, u := range p.Users {
		if u.IsActive {
			n++
		}
	}
	return n
}
