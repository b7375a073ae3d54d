package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// ActivityReportRepository puerto para los rapports de actividad comercial.
type ActivityReportRepository interface {
	Create(ctx context.Context, r *entity.ActivityReport) error
	// ListByCompany devuelve los rapports más recientes primero.
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.ActivityReport, error)
}
