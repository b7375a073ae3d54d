package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityReport rapport de actividad comercial que registra un vendedor.
type ActivityReport struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"companyId"`
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"dateCreation"`
	ReportDate    time.Time       `json:"dateRapport"`
	Commercial    string          `json:"commercial"`
	ProductsSold  int64           `json:"produitsVendus"`
	Revenue       decimal.Decimal `json:"chiffreAffaires"`
	Observations  string          `json:"observations"`
	ObjectivesMet string          `json:"objectifsAtteints"`
}
