package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// DefaultLowStockThreshold umbral de stock bajo cuando el llamador no indica otro.
const DefaultLowStockThreshold = 10

const (
	criticalStock = 5
	restockCeil   = 20
	fastTurnover  = 70
	slowTurnover  = 30
)

// StockLevel clasificación de salud de stock.
type StockLevel string

const (
	StockOut StockLevel = "out"
	StockLow StockLevel = "low"
	StockOK  StockLevel = "ok"
)

// StockLine vista común de un producto con su stock, sea de /products o de /transfers/stock.
type StockLine struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Total       int64           `json:"totalStock"`
	Transferred int64           `json:"transferredStock"`
	Available   int64           `json:"availableStock"`
}

// FromStockProducts convierte el stock disponible del backend.
func FromStockProducts(ps []entity.StockProduct) []StockLine {
	out := make([]StockLine, 0, len(ps))
	for _, p := range ps {
		out = append(out, StockLine{
			ProductID:   p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Total:       p.TotalStock,
			Transferred: p.TransferredStock,
			Available:   p.AvailableStock,
		})
	}
	return out
}

// FromProducts convierte productos del catálogo; el total es entradas de empresa.
func FromProducts(ps []entity.Product) []StockLine {
	out := make([]StockLine, 0, len(ps))
	for _, p := range ps {
		out = append(out, StockLine{
			ProductID:   p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Total:       p.TotalEntries,
			Transferred: p.TotalTransferred,
			Available:   p.AvailableStock,
		})
	}
	return out
}

func available(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

// ClassifyStock out si no queda stock (negativo cuenta como cero), low por debajo del umbral.
// Un umbral <= 0 usa DefaultLowStockThreshold.
func ClassifyStock(qty int64, threshold int) StockLevel {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	qty = available(qty)
	switch {
	case qty == 0:
		return StockOut
	case qty < int64(threshold):
		return StockLow
	default:
		return StockOK
	}
}

// StockAlertsResult productos agotados y con stock bajo.
type StockAlertsResult struct {
	OutOfStock     []StockLine `json:"outOfStock"`
	LowStock       []StockLine `json:"lowStock"`
	CriticalAlerts int         `json:"criticalAlerts"`
}

// StockAlerts críticas = agotados + stock bajo por debajo de 5.
func StockAlerts(lines []StockLine, threshold int) StockAlertsResult {
	res := StockAlertsResult{OutOfStock: []StockLine{}, LowStock: []StockLine{}}
	for _, l := range lines {
		switch ClassifyStock(l.Available, threshold) {
		case StockOut:
			res.OutOfStock = append(res.OutOfStock, l)
		case StockLow:
			res.LowStock = append(res.LowStock, l)
			if l.Available < criticalStock {
				res.CriticalAlerts++
			}
		}
	}
	res.CriticalAlerts += len(res.OutOfStock)
	return res
}

// StockStatsResult totales de stock.
type StockStatsResult struct {
	TotalProducts       int             `json:"totalProducts"`
	ProductsWithStock   int             `json:"productsWithStock"`
	OutOfStock          int             `json:"outOfStock"`
	LowStockProducts    int             `json:"lowStockProducts"`
	TotalAvailableStock int64           `json:"totalAvailableStock"`
	TotalValue          decimal.Decimal `json:"totalValue"`
	TransferRate        int64           `json:"transferRate"`
}

// StockStats valor = Σ disponible × precio; tasa de transferencia = round(transferido / total × 100).
func StockStats(lines []StockLine, threshold int) StockStatsResult {
	res := StockStatsResult{TotalProducts: len(lines), TotalValue: decimal.Zero}
	var total, transferred int64
	for _, l := range lines {
		avail := available(l.Available)
		res.TotalAvailableStock += avail
		res.TotalValue = res.TotalValue.Add(l.Price.Mul(decimal.NewFromInt(avail)))
		total += l.Total
		transferred += l.Transferred
		switch ClassifyStock(l.Available, threshold) {
		case StockOut:
			res.OutOfStock++
		case StockLow:
			res.LowStockProducts++
			res.ProductsWithStock++
		default:
			res.ProductsWithStock++
		}
	}
	if total > 0 {
		res.TransferRate = percent(transferred, total).Round(0).IntPart()
	}
	return res
}

func percent(part, total int64) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(total))
}

// TurnoverLine rotación de un producto.
type TurnoverLine struct {
	StockLine
	Rate decimal.Decimal `json:"turnoverRate"`
}

// StockTurnoverResult rotación del stock.
type StockTurnoverResult struct {
	AverageTurnover int64          `json:"averageTurnover"`
	FastMoving      []TurnoverLine `json:"fastMoving"`
	SlowMoving      []TurnoverLine `json:"slowMoving"`
}

// StockTurnover tasa = transferido / total × 100 (0 sin stock total). Rápidos > 70 %,
// lentos < 30 % con stock total; el promedio incluye todos los productos.
func StockTurnover(lines []StockLine) StockTurnoverResult {
	res := StockTurnoverResult{FastMoving: []TurnoverLine{}, SlowMoving: []TurnoverLine{}}
	if len(lines) == 0 {
		return res
	}
	sum := decimal.Zero
	for _, l := range lines {
		rate := percent(l.Transferred, l.Total)
		sum = sum.Add(rate)
		tl := TurnoverLine{StockLine: l, Rate: rate.Round(1)}
		switch {
		case rate.GreaterThan(decimal.NewFromInt(fastTurnover)):
			res.FastMoving = append(res.FastMoving, tl)
		case rate.LessThan(decimal.NewFromInt(slowTurnover)) && l.Total > 0:
			res.SlowMoving = append(res.SlowMoving, tl)
		}
	}
	res.AverageTurnover = sum.Div(decimal.NewFromInt(int64(len(lines)))).Round(0).IntPart()
	return res
}

// Priority urgencia de una sugerencia de reposición.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

func (p Priority) rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	default:
		return 2
	}
}

// RestockSuggestion cantidad sugerida de reposición con su motivo.
type RestockSuggestion struct {
	Product           StockLine `json:"product"`
	SuggestedQuantity int64     `json:"suggestedQuantity"`
	Reason            string    `json:"reason"`
	Priority          Priority  `json:"priority"`
}

// RestockSuggestions solo para disponible < 20 (exactamente 20 no recibe sugerencia):
// 0 → max(50, transferido); < 5 → max(30, transferido); < 20 → max(20, ⌊transferido/2⌋).
// Orden: prioridad y luego disponible ascendente.
func RestockSuggestions(lines []StockLine) []RestockSuggestion {
	out := make([]RestockSuggestion, 0)
	for _, l := range lines {
		avail := available(l.Available)
		if avail >= restockCeil {
			continue
		}
		s := RestockSuggestion{Product: l}
		switch {
		case avail == 0:
			s.SuggestedQuantity = max(50, l.Transferred)
			s.Reason = "Stock épuisé - Réapprovisionnement urgent"
			s.Priority = PriorityUrgent
		case avail < criticalStock:
			s.SuggestedQuantity = max(30, l.Transferred)
			s.Reason = "Stock critique - Réapprovisionnement recommandé"
			s.Priority = PriorityHigh
		default:
			s.SuggestedQuantity = max(20, l.Transferred/2)
			s.Reason = "Stock faible - Envisager le réapprovisionnement"
			s.Priority = PriorityMedium
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Priority.rank(), out[j].Priority.rank()
		if ri != rj {
			return ri < rj
		}
		return available(out[i].Product.Available) < available(out[j].Product.Available)
	})
	return out
}
