package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/pkg/format"
)

const reportDateLayout = "2006-01-02"

// ActivityReportUseCase registro e historial de rapports de actividad comercial.
type ActivityReportUseCase struct {
	repo repository.ActivityReportRepository
	now  func() time.Time
}

// NewActivityReportUseCase construye el caso de uso.
func NewActivityReportUseCase(repo repository.ActivityReportRepository) *ActivityReportUseCase {
	return &ActivityReportUseCase{repo: repo, now: time.Now}
}

// Create valida y guarda un rapport. Sin fecha se usa la del día; sin comercial, el nombre de la sesión.
func (uc *ActivityReportUseCase) Create(ctx context.Context, companyID, userID, userName string, in dto.CreateActivityReportRequest) (*dto.ActivityReportResponse, error) {
	now := uc.now()
	var v domain.ValidationErrors

	reportDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if s := strings.TrimSpace(in.ReportDate); s != "" {
		d, err := time.Parse(reportDateLayout, s)
		if err != nil {
			v = append(v, "La date du rapport est invalide")
		} else {
			reportDate = d
		}
	}
	commercial := strings.TrimSpace(in.Commercial)
	if commercial == "" {
		commercial = strings.TrimSpace(userName)
	}
	if commercial == "" {
		v = append(v, "Le commercial est requis")
	}
	if in.ProductsSold < 0 {
		v = append(v, "Le nombre de produits vendus doit être positif")
	}
	if in.Revenue.IsNegative() {
		v = append(v, "Le chiffre d'affaires doit être positif")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	r := &entity.ActivityReport{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CreatedBy:     userID,
		CreatedAt:     now,
		ReportDate:    reportDate,
		Commercial:    commercial,
		ProductsSold:  in.ProductsSold,
		Revenue:       in.Revenue,
		Observations:  strings.TrimSpace(in.Observations),
		ObjectivesMet: strings.TrimSpace(in.ObjectivesMet),
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("guardar rapport: %w", err)
	}
	resp := toActivityReportResponse(r)
	return &resp, nil
}

// List historial de la empresa, más recientes primero.
func (uc *ActivityReportUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ActivityReportListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar rapports: %w", err)
	}
	items := make([]dto.ActivityReportResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toActivityReportResponse(r))
	}
	return &dto.ActivityReportListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

func toActivityReportResponse(r *entity.ActivityReport) dto.ActivityReportResponse {
	return dto.ActivityReportResponse{
		ID:            r.ID,
		CreatedAt:     r.CreatedAt,
		ReportDate:    r.ReportDate.Format(reportDateLayout),
		Commercial:    r.Commercial,
		ProductsSold:  r.ProductsSold,
		Revenue:       r.Revenue,
		RevenueLabel:  format.Amount(r.Revenue),
		Observations:  r.Observations,
		ObjectivesMet: r.ObjectivesMet,
		Level:         analytics.ReportLevel(r.Revenue),
	}
}
