package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// Period granularidad de agrupación temporal.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod devuelve month para valores vacíos o desconocidos.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodDay, PeriodWeek:
		return Period(s)
	default:
		return PeriodMonth
	}
}

const noProduct = "Aucun"

// Totals cantidades y valor de una transferencia.
type Totals struct {
	Quantity   int64           `json:"totalQuantity"`
	ItemsCount int             `json:"itemsCount"`
	Value      decimal.Decimal `json:"totalValue"`
}

// TransferTotals suma cantidades y valor (cantidad × precio unitario) de las líneas.
func TransferTotals(t entity.Transfer) Totals {
	tot := Totals{ItemsCount: len(t.Items), Value: decimal.Zero}
	for _, it := range t.Items {
		tot.Quantity += it.Quantity
		tot.Value = tot.Value.Add(it.UnitPrice().Mul(decimal.NewFromInt(it.Quantity)))
	}
	return tot
}

// ProductTransferStats acumulado de un producto en las transferencias.
type ProductTransferStats struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	TotalQty      int64           `json:"totalQty"`
	TransferCount int             `json:"transferCount"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}

// TransfersByProduct acumula por producto en orden de primera aparición.
// TransferCount cuenta líneas: un producto repetido en la misma transferencia cuenta dos veces.
func TransfersByProduct(transfers []entity.Transfer) []ProductTransferStats {
	index := make(map[string]int)
	out := make([]ProductTransferStats, 0)
	for _, t := range transfers {
		for _, it := range t.Items {
			i, ok := index[it.ProductID]
			if !ok {
				out = append(out, ProductTransferStats{
					ProductID:   it.ProductID,
					ProductName: it.ProductName(),
					TotalValue:  decimal.Zero,
				})
				i = len(out) - 1
				index[it.ProductID] = i
			}
			st := &out[i]
			st.TotalQty += it.Quantity
			st.TransferCount++
			st.TotalValue = st.TotalValue.Add(it.UnitPrice().Mul(decimal.NewFromInt(it.Quantity)))
		}
	}
	return out
}

// PeriodBucket transferencias de un periodo.
type PeriodBucket struct {
	Key        string            `json:"period"`
	Count      int               `json:"count"`
	TotalQty   int64             `json:"totalQty"`
	TotalValue decimal.Decimal   `json:"totalValue"`
	Transfers  []entity.Transfer `json:"transfers,omitempty"`
}

// PeriodKey clave del periodo en UTC: YYYY-MM-DD (día), fecha del domingo que inicia la semana, o YYYY-MM.
func PeriodKey(t time.Time, p Period) string {
	t = t.UTC()
	switch p {
	case PeriodDay:
		return t.Format("2006-01-02")
	case PeriodWeek:
		return t.AddDate(0, 0, -int(t.Weekday())).Format("2006-01-02")
	default:
		return t.Format("2006-01")
	}
}

// TransfersByPeriod agrupa por periodo en orden de primera aparición. Solo hay
// buckets para periodos con al menos una transferencia.
func TransfersByPeriod(transfers []entity.Transfer, p Period) []PeriodBucket {
	index := make(map[string]int)
	out := make([]PeriodBucket, 0)
	for _, t := range transfers {
		key := PeriodKey(t.TransferDate, p)
		i, ok := index[key]
		if !ok {
			out = append(out, PeriodBucket{Key: key, TotalValue: decimal.Zero})
			i = len(out) - 1
			index[key] = i
		}
		tot := TransferTotals(t)
		b := &out[i]
		b.Count++
		b.TotalQty += tot.Quantity
		b.TotalValue = b.TotalValue.Add(tot.Value)
		b.Transfers = append(b.Transfers, t)
	}
	return out
}

// ChartPoint fila de la serie temporal para gráficos.
type ChartPoint struct {
	Period    string          `json:"period"`
	Transfers int             `json:"transferts"`
	Quantity  int64           `json:"quantité"`
	Value     decimal.Decimal `json:"valeur"`
	Date      string          `json:"date"`
}

// ChartData convierte los buckets en filas ordenadas por clave.
func ChartData(buckets []PeriodBucket) []ChartPoint {
	out := make([]ChartPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ChartPoint{
			Period:    b.Key,
			Transfers: b.Count,
			Quantity:  b.TotalQty,
			Value:     b.TotalValue,
			Date:      b.Key,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// TransferSummary resumen del reporte de transferencias.
type TransferSummary struct {
	TotalTransfers         int             `json:"totalTransfers"`
	TotalQuantity          int64           `json:"totalQuantity"`
	TotalValue             decimal.Decimal `json:"totalValue"`
	AverageTransferValue   decimal.Decimal `json:"averageTransferValue"`
	MostTransferredProduct string          `json:"mostTransferredProduct"`
}

// TransferReport resumen más detalle por producto y por periodo.
type TransferReport struct {
	Period    Period                 `json:"period"`
	Summary   TransferSummary        `json:"summary"`
	ByProduct []ProductTransferStats `json:"byProduct"`
	ByPeriod  []PeriodBucket         `json:"byPeriod"`
	Chart     []ChartPoint           `json:"chart"`
}

// BuildTransferReport arma el reporte. El producto más transferido es el de mayor cantidad
// (en empate, el primero en aparecer); sin transferencias es "Aucun".
func BuildTransferReport(transfers []entity.Transfer, p Period) TransferReport {
	sum := TransferSummary{
		TotalTransfers:         len(transfers),
		TotalValue:             decimal.Zero,
		AverageTransferValue:   decimal.Zero,
		MostTransferredProduct: noProduct,
	}
	for _, t := range transfers {
		tot := TransferTotals(t)
		sum.TotalQuantity += tot.Quantity
		sum.TotalValue = sum.TotalValue.Add(tot.Value)
	}
	if sum.TotalTransfers > 0 {
		sum.AverageTransferValue = sum.TotalValue.Div(decimal.NewFromInt(int64(sum.TotalTransfers))).Round(2)
	}

	byProduct := TransfersByProduct(transfers)
	var best *ProductTransferStats
	for i := range byProduct {
		if best == nil || byProduct[i].TotalQty > best.TotalQty {
			best = &byProduct[i]
		}
	}
	if best != nil && best.ProductName != "" {
		sum.MostTransferredProduct = best.ProductName
	}

	byPeriod := TransfersByPeriod(transfers, p)
	return TransferReport{
		Period:    p,
		Summary:   sum,
		ByProduct: byProduct,
		ByPeriod:  byPeriod,
		Chart:     ChartData(byPeriod),
	}
}
