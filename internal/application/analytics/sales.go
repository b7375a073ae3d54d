// Package analytics agrega ventas, transferencias y stock del backend en estadísticas
// para los reportes. Las funciones son puras; ReportUseCase obtiene los datos.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// POSSalesStats ventas de un punto de venta.
type POSSalesStats struct {
	PointOfSaleID   string          `json:"pointOfSaleId"`
	PointOfSaleName string          `json:"pointOfSaleName"`
	TotalSales      int             `json:"totalSales"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CompletedSales  int             `json:"completedSales"`
	PendingSales    int             `json:"pendingSales"`
	CancelledSales  int             `json:"cancelledSales"`
}

// StatusCounts ventas por estado.
type StatusCounts struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Cancelled int `json:"cancelled"`
}

// SalesByPOS agrupa por punto de venta en orden de primera aparición.
// La suma de TotalAmount de los grupos es igual a la suma de las ventas.
func SalesByPOS(sales []entity.Sale) []POSSalesStats {
	index := make(map[string]int)
	out := make([]POSSalesStats, 0)
	for _, s := range sales {
		i, ok := index[s.PointOfSaleID]
		if !ok {
			name := ""
			if s.PointOfSale != nil {
				name = s.PointOfSale.Name
			}
			out = append(out, POSSalesStats{
				PointOfSaleID:   s.PointOfSaleID,
				PointOfSaleName: name,
				TotalAmount:     decimal.Zero,
			})
			i = len(out) - 1
			index[s.PointOfSaleID] = i
		}
		st := &out[i]
		st.TotalSales++
		st.TotalAmount = st.TotalAmount.Add(s.TotalAmount)
		switch s.Status {
		case entity.SaleStatusCompleted:
			st.CompletedSales++
		case entity.SaleStatusPending:
			st.PendingSales++
		case entity.SaleStatusCancelled:
			st.CancelledSales++
		}
	}
	return out
}

// TotalSalesAmount suma de los montos.
func TotalSalesAmount(sales []entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.TotalAmount)
	}
	return total
}

// SalesCountByStatus cuenta las ventas por estado. Estados desconocidos no se cuentan.
func SalesCountByStatus(sales []entity.Sale) StatusCounts {
	var c StatusCounts
	for _, s := range sales {
		switch s.Status {
		case entity.SaleStatusCompleted:
			c.Completed++
		case entity.SaleStatusPending:
			c.Pending++
		case entity.SaleStatusCancelled:
			c.Cancelled++
		}
	}
	return c
}

// SaleItemsCount unidades vendidas en una venta.
func SaleItemsCount(s entity.Sale) int64 {
	var n int64
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}
