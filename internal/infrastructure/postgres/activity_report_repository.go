package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.ActivityReportRepository = (*ActivityReportRepo)(nil)

// ActivityReportRepo rapports de actividad comercial sobre PostgreSQL.
type ActivityReportRepo struct {
	q Querier
}

// NewActivityReportRepository construye el adaptador.
func NewActivityReportRepository(q Querier) *ActivityReportRepo {
	return &ActivityReportRepo{q: q}
}

// Create persiste un rapport.
func (r *ActivityReportRepo) Create(ctx context.Context, rep *entity.ActivityReport) error {
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	query := `
		INSERT INTO activity_reports (id, company_id, created_by, created_at, report_date, commercial, products_sold, revenue, observations, objectives_met)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		rep.ID, rep.CompanyID, rep.CreatedBy, rep.CreatedAt, rep.ReportDate, rep.Commercial,
		rep.ProductsSold, rep.Revenue, rep.Observations, rep.ObjectivesMet,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert activity report: %w", err)
	}
	return nil
}

// ListByCompany rapports de la empresa, más recientes primero.
func (r *ActivityReportRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.ActivityReport, error) {
	query := `
		SELECT id, company_id, created_by, created_at, report_date, commercial, products_sold, revenue, observations, objectives_met
		FROM activity_reports WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity reports: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ActivityReport, 0)
	for rows.Next() {
		var rep entity.ActivityReport
		if err := rows.Scan(&rep.ID, &rep.CompanyID, &rep.CreatedBy, &rep.CreatedAt, &rep.ReportDate,
			&rep.Commercial, &rep.ProductsSold, &rep.Revenue, &rep.Observations, &rep.ObjectivesMet); err != nil {
			return nil, fmt.Errorf("scan activity report: %w", err)
		}
		list = append(list, &rep)
	}
	return list, rows.Err()
}
