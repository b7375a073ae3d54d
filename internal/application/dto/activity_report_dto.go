package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateActivityReportRequest body de POST /api/activity-reports.
type CreateActivityReportRequest struct {
	ReportDate    string          `json:"dateRapport"` // YYYY-MM-DD
	Commercial    string          `json:"commercial"`
	ProductsSold  int64           `json:"produitsVendus"`
	Revenue       decimal.Decimal `json:"chiffreAffaires"`
	Observations  string          `json:"observations"`
	ObjectivesMet string          `json:"objectifsAtteints"`
}

// ActivityReportResponse rapport con su nivel de desempeño.
type ActivityReportResponse struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"dateCreation"`
	ReportDate    string          `json:"dateRapport"`
	Commercial    string          `json:"commercial"`
	ProductsSold  int64           `json:"produitsVendus"`
	Revenue       decimal.Decimal `json:"chiffreAffaires"`
	RevenueLabel  string          `json:"chiffreAffairesFormate"`
	Observations  string          `json:"observations,omitempty"`
	ObjectivesMet string          `json:"objectifsAtteints,omitempty"`
	Level         string          `json:"niveau"`
}

// ActivityReportListResponse página de rapports.
type ActivityReportListResponse struct {
	Items []ActivityReportResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
