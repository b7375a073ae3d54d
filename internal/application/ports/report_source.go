package ports

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// TransferQuery filtros y paginación del listado de transferencias del backend.
// Campos vacíos no se envían.
type TransferQuery struct {
	Page          int
	Limit         int
	CompanyID     string
	UserID        string
	PointOfSaleID string
	StartDate     string
	EndDate       string
}

// ReportSource puerto de lectura del backend REST que alimenta los reportes.
// Cada llamada lleva el token del usuario; el adaptador es backend.Client.
type ReportSource interface {
	ListSales(ctx context.Context, token string, page, limit int) (*entity.SalePage, error)
	ListTransfers(ctx context.Context, token string, q TransferQuery) (*entity.TransferPage, error)
	AvailableStock(ctx context.Context, token, companyID string) (*entity.AvailableStock, error)
}
