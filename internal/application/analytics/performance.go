package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// PerformancePeriod ventana del análisis por vendedor.
type PerformancePeriod string

const (
	PerformanceDay   PerformancePeriod = "jour"
	PerformanceWeek  PerformancePeriod = "semaine"
	PerformanceMonth PerformancePeriod = "mois"
)

// Objetivos de facturación por periodo (F CFA).
var objectives = map[PerformancePeriod]int64{
	PerformanceDay:   200000,
	PerformanceWeek:  1000000,
	PerformanceMonth: 4000000,
}

// ParsePerformancePeriod devuelve jour para valores vacíos o desconocidos.
func ParsePerformancePeriod(s string) PerformancePeriod {
	p := PerformancePeriod(s)
	if _, ok := objectives[p]; ok {
		return p
	}
	return PerformanceDay
}

// Objective objetivo de facturación del periodo.
func (p PerformancePeriod) Objective() decimal.Decimal {
	return decimal.NewFromInt(objectives[ParsePerformancePeriod(string(p))])
}

// Start inicio del periodo que contiene now, en la zona de now: medianoche de hoy,
// del domingo de la semana o del día 1 del mes.
func (p PerformancePeriod) Start(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch ParsePerformancePeriod(string(p)) {
	case PerformanceWeek:
		return day.AddDate(0, 0, -int(day.Weekday()))
	case PerformanceMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return day
	}
}

// SellerStats desempeño de un vendedor en el periodo.
type SellerStats struct {
	SellerID        string          `json:"commercialId"`
	SellerName      string          `json:"commercial"`
	SalesCount      int             `json:"nombreVentes"`
	Revenue         decimal.Decimal `json:"chiffreAffaires"`
	ItemsSold       int64           `json:"produitsVendus"`
	UniqueCustomers int             `json:"clientsUniques"`
	AverageSale     decimal.Decimal `json:"moyenneVente"`
	ObjectivePct    decimal.Decimal `json:"objectifAtteint"`
	Badge           string          `json:"badge"`
}

// Badge etiqueta según el porcentaje del objetivo alcanzado.
func Badge(pct decimal.Decimal) string {
	switch {
	case pct.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return "Excellent"
	case pct.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return "Très bien"
	case pct.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return "Bien"
	default:
		return "À améliorer"
	}
}

// SellerPerformance agrupa por vendedor las ventas desde el inicio del periodo.
// Las ventas anuladas no cuentan. Orden: facturación descendente, luego nombre.
func SellerPerformance(sales []entity.Sale, p PerformancePeriod, now time.Time) []SellerStats {
	p = ParsePerformancePeriod(string(p))
	from := p.Start(now)
	objective := p.Objective()

	index := make(map[string]int)
	customers := make(map[string]map[string]struct{})
	out := make([]SellerStats, 0)
	for _, s := range sales {
		if s.Status == entity.SaleStatusCancelled || s.SaleDate.Before(from) {
			continue
		}
		id := s.UserID
		if id == "" && s.User != nil {
			id = s.User.ID
		}
		i, ok := index[id]
		if !ok {
			name := s.User.FullName()
			if name == "" {
				name = id
			}
			out = append(out, SellerStats{SellerID: id, SellerName: name, Revenue: decimal.Zero})
			i = len(out) - 1
			index[id] = i
			customers[id] = make(map[string]struct{})
		}
		st := &out[i]
		st.SalesCount++
		st.Revenue = st.Revenue.Add(s.TotalAmount)
		st.ItemsSold += SaleItemsCount(s)
		if s.CustomerID != "" {
			customers[id][s.CustomerID] = struct{}{}
		}
	}

	for i := range out {
		st := &out[i]
		st.UniqueCustomers = len(customers[st.SellerID])
		st.AverageSale = st.Revenue.Div(decimal.NewFromInt(int64(st.SalesCount))).Round(0)
		st.ObjectivePct = st.Revenue.Mul(decimal.NewFromInt(100)).Div(objective).Round(1)
		st.Badge = Badge(st.ObjectivePct)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].SellerName < out[j].SellerName
	})
	return out
}

// Niveles de un reporte de actividad según la facturación.
const (
	LevelExcellent = "excellent"
	LevelVeryGood  = "tres-bien"
	LevelGood      = "bien"
	LevelStandard  = "standard"
)

// ReportLevel ≥ 1 000 000 excellent, ≥ 500 000 tres-bien, ≥ 100 000 bien, si no standard.
func ReportLevel(revenue decimal.Decimal) string {
	switch {
	case revenue.GreaterThanOrEqual(decimal.NewFromInt(1000000)):
		return LevelExcellent
	case revenue.GreaterThanOrEqual(decimal.NewFromInt(500000)):
		return LevelVeryGood
	case revenue.GreaterThanOrEqual(decimal.NewFromInt(100000)):
		return LevelGood
	default:
		return LevelStandard
	}
}
