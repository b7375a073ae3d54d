package analytics_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sale(pos, amount, status string) entity.Sale {
	return entity.Sale{
		PointOfSaleID: pos,
		TotalAmount:   dec(amount),
		Status:        status,
		PointOfSale:   &entity.PointOfSale{ID: pos, Name: "PDV " + pos},
	}
}

func transfer(at time.Time, items ...entity.TransferItem) entity.Transfer {
	return entity.Transfer{TransferDate: at, Items: items}
}

func item(id, name string, qty int64, price string) entity.TransferItem {
	return entity.TransferItem{
		ProductID: id,
		Quantity:  qty,
		Product:   &entity.ProductRef{ID: id, Name: name, Price: dec(price)},
	}
}

func randomSales(r *rand.Rand, n int) []entity.Sale {
	statuses := []string{entity.SaleStatusCompleted, entity.SaleStatusPending, entity.SaleStatusCancelled}
	pos := []string{"A", "B", "C", "D"}
	out := make([]entity.Sale, n)
	for i := range out {
		amount := decimal.New(r.Int63n(10_000_000), -2)
		out[i] = sale(pos[r.Intn(len(pos))], amount.String(), statuses[r.Intn(len(statuses))])
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesByPOS_Scenario(t *testing.T) {
	got := analytics.SalesByPOS([]entity.Sale{
		sale("A", "100", entity.SaleStatusCompleted),
		sale("A", "50", entity.SaleStatusPending),
	})
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].PointOfSaleID)
	assert.Equal(t, "PDV A", got[0].PointOfSaleName)
	assert.Equal(t, 2, got[0].TotalSales)
	assert.True(t, got[0].TotalAmount.Equal(dec("150")))
	assert.Equal(t, 1, got[0].CompletedSales)
	assert.Equal(t, 1, got[0].PendingSales)
	assert.Equal(t, 0, got[0].CancelledSales)
}

func TestSalesByPOS_FirstAppearanceOrder(t *testing.T) {
	got := analytics.SalesByPOS([]entity.Sale{
		sale("B", "1", entity.SaleStatusCompleted),
		sale("A", "1", entity.SaleStatusCompleted),
		sale("B", "1", entity.SaleStatusCompleted),
	})
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].PointOfSaleID)
	assert.Equal(t, "A", got[1].PointOfSaleID)
}

func TestSalesByPOS_PreservesTotalsAndCounts(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		sales := randomSales(r, 1+r.Intn(40))
		groups := analytics.SalesByPOS(sales)

		sum := decimal.Zero
		count := 0
		for _, g := range groups {
			sum = sum.Add(g.TotalAmount)
			count += g.TotalSales
			assert.Equal(t, g.TotalSales, g.CompletedSales+g.PendingSales+g.CancelledSales, "pos %s", g.PointOfSaleID)
		}
		assert.True(t, sum.Equal(analytics.TotalSalesAmount(sales)), "suma %s", sum)
		assert.Equal(t, len(sales), count)

		again := analytics.SalesByPOS(sales)
		assert.Equal(t, groups, again)
	}
}

func TestSalesByPOS_Empty(t *testing.T) {
	assert.Empty(t, analytics.SalesByPOS(nil))
	assert.True(t, analytics.TotalSalesAmount(nil).IsZero())
}

func TestSalesCountByStatusAndItems(t *testing.T) {
	sales := []entity.Sale{
		sale("A", "10", entity.SaleStatusCompleted),
		sale("A", "10", entity.SaleStatusCancelled),
		sale("B", "10", entity.SaleStatusCancelled),
		sale("B", "10", "desconocido"),
	}
	assert.Equal(t, analytics.StatusCounts{Completed: 1, Cancelled: 2}, analytics.SalesCountByStatus(sales))

	s := entity.Sale{Items: []entity.SaleItem{{Quantity: 2}, {Quantity: 5}}}
	assert.Equal(t, int64(7), analytics.SaleItemsCount(s))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transferencias
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferTotalsAndByProduct(t *testing.T) {
	day := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	transfers := []entity.Transfer{
		transfer(day, item("p1", "Savon", 3, "500"), item("p2", "Huile", 1, "2500")),
		transfer(day, item("p1", "Savon", 2, "500")),
	}

	tot := analytics.TransferTotals(transfers[0])
	assert.Equal(t, int64(4), tot.Quantity)
	assert.Equal(t, 2, tot.ItemsCount)
	assert.True(t, tot.Value.Equal(dec("4000")))

	byProduct := analytics.TransfersByProduct(transfers)
	require.Len(t, byProduct, 2)
	assert.Equal(t, "Savon", byProduct[0].ProductName)
	assert.Equal(t, int64(5), byProduct[0].TotalQty)
	assert.Equal(t, 2, byProduct[0].TransferCount)
	assert.True(t, byProduct[0].TotalValue.Equal(dec("2500")))
}

func TestPeriodKey(t *testing.T) {
	// miércoles 6 de marzo de 2024
	at := time.Date(2024, 3, 6, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-06", analytics.PeriodKey(at, analytics.PeriodDay))
	assert.Equal(t, "2024-03-03", analytics.PeriodKey(at, analytics.PeriodWeek))
	assert.Equal(t, "2024-03", analytics.PeriodKey(at, analytics.PeriodMonth))

	// el domingo es su propio inicio de semana; la semana puede cruzar de mes
	assert.Equal(t, "2024-03-03", analytics.PeriodKey(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), analytics.PeriodWeek))
	assert.Equal(t, "2024-02-25", analytics.PeriodKey(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), analytics.PeriodWeek))

	// la clave se calcula en UTC
	dakarPlus := time.FixedZone("UTC+2", 2*3600)
	assert.Equal(t, "2024-03-31", analytics.PeriodKey(time.Date(2024, 4, 1, 1, 0, 0, 0, dakarPlus), analytics.PeriodDay))
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, analytics.PeriodDay, analytics.ParsePeriod("day"))
	assert.Equal(t, analytics.PeriodWeek, analytics.ParsePeriod("week"))
	assert.Equal(t, analytics.PeriodMonth, analytics.ParsePeriod(""))
	assert.Equal(t, analytics.PeriodMonth, analytics.ParsePeriod("year"))
}

func TestTransfersByPeriod_OnlyNonEmptyBucketsAndChartSorted(t *testing.T) {
	transfers := []entity.Transfer{
		transfer(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), item("p1", "Savon", 1, "100")),
		transfer(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), item("p1", "Savon", 4, "100")),
		transfer(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), item("p1", "Savon", 2, "100")),
	}

	buckets := analytics.TransfersByPeriod(transfers, analytics.PeriodMonth)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-05", buckets[0].Key)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, int64(3), buckets[0].TotalQty)
	assert.True(t, buckets[0].TotalValue.Equal(dec("300")))
	assert.Len(t, buckets[0].Transfers, 2)

	chart := analytics.ChartData(buckets)
	require.Len(t, chart, 2)
	assert.Equal(t, "2024-01", chart[0].Period)
	assert.Equal(t, "2024-05", chart[1].Period)
	assert.Equal(t, chart[1].Period, chart[1].Date)
}

func TestBuildTransferReport(t *testing.T) {
	day := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	report := analytics.BuildTransferReport([]entity.Transfer{
		transfer(day, item("p1", "Savon", 3, "500")),
		transfer(day, item("p2", "Huile", 7, "100"), item("p1", "Savon", 1, "500")),
	}, analytics.PeriodDay)

	assert.Equal(t, 2, report.Summary.TotalTransfers)
	assert.Equal(t, int64(11), report.Summary.TotalQuantity)
	assert.True(t, report.Summary.TotalValue.Equal(dec("2700")))
	assert.True(t, report.Summary.AverageTransferValue.Equal(dec("1350")))
	assert.Equal(t, "Huile", report.Summary.MostTransferredProduct)
	require.Len(t, report.ByPeriod, 1)
	assert.Equal(t, "2024-03-06", report.ByPeriod[0].Key)
}

func TestBuildTransferReport_Empty(t *testing.T) {
	report := analytics.BuildTransferReport(nil, analytics.PeriodMonth)
	assert.Equal(t, "Aucun", report.Summary.MostTransferredProduct)
	assert.True(t, report.Summary.AverageTransferValue.IsZero())
	assert.Empty(t, report.ByPeriod)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock
// ──────────────────────────────────────────────────────────────────────────────

func TestClassifyStock(t *testing.T) {
	assert.Equal(t, analytics.StockOut, analytics.ClassifyStock(0, 0))
	assert.Equal(t, analytics.StockOut, analytics.ClassifyStock(-3, 0))
	assert.Equal(t, analytics.StockLow, analytics.ClassifyStock(9, 0))
	assert.Equal(t, analytics.StockOK, analytics.ClassifyStock(10, 0))
	assert.Equal(t, analytics.StockLow, analytics.ClassifyStock(10, 15))
}

func TestStockAlertsAndStats(t *testing.T) {
	lines := []analytics.StockLine{
		{ProductID: "a", Available: 0, Total: 10, Transferred: 10, Price: dec("100")},
		{ProductID: "b", Available: 3, Total: 10, Transferred: 7, Price: dec("100")},
		{ProductID: "c", Available: 8, Total: 10, Transferred: 2, Price: dec("50")},
		{ProductID: "d", Available: 40, Total: 50, Transferred: 10, Price: dec("10")},
	}

	alerts := analytics.StockAlerts(lines, 0)
	require.Len(t, alerts.OutOfStock, 1)
	require.Len(t, alerts.LowStock, 2)
	assert.Equal(t, 2, alerts.CriticalAlerts)

	stats := analytics.StockStats(lines, 0)
	assert.Equal(t, 4, stats.TotalProducts)
	assert.Equal(t, 3, stats.ProductsWithStock)
	assert.Equal(t, 1, stats.OutOfStock)
	assert.Equal(t, 2, stats.LowStockProducts)
	assert.Equal(t, int64(51), stats.TotalAvailableStock)
	assert.True(t, stats.TotalValue.Equal(dec("1100")), stats.TotalValue.String())
	// 29 / 80 = 36,25 %
	assert.Equal(t, int64(36), stats.TransferRate)
}

func TestStockTurnover(t *testing.T) {
	lines := []analytics.StockLine{
		{ProductID: "fast", Total: 100, Transferred: 80},
		{ProductID: "slow", Total: 100, Transferred: 10},
		{ProductID: "mid", Total: 100, Transferred: 50},
		{ProductID: "empty", Total: 0, Transferred: 0},
	}
	res := analytics.StockTurnover(lines)
	require.Len(t, res.FastMoving, 1)
	assert.Equal(t, "fast", res.FastMoving[0].ProductID)
	require.Len(t, res.SlowMoving, 1)
	assert.Equal(t, "slow", res.SlowMoving[0].ProductID)
	// (80 + 10 + 50 + 0) / 4 = 35
	assert.Equal(t, int64(35), res.AverageTurnover)

	assert.Equal(t, int64(0), analytics.StockTurnover(nil).AverageTurnover)
}

func TestRestockSuggestions_CriticalScenario(t *testing.T) {
	lines := analytics.FromProducts([]entity.Product{{ID: "1", AvailableStock: 3, TotalTransferred: 40}})
	got := analytics.RestockSuggestions(lines)
	require.Len(t, got, 1)
	assert.Equal(t, int64(40), got[0].SuggestedQuantity)
	assert.Equal(t, "Stock critique - Réapprovisionnement recommandé", got[0].Reason)
	assert.Equal(t, analytics.PriorityHigh, got[0].Priority)
}

func TestRestockSuggestions_Tiers(t *testing.T) {
	tests := []struct {
		name        string
		available   int64
		transferred int64
		want        int64
		reason      string
	}{
		{"agotado usa piso 50", 0, 10, 50, "Stock épuisé - Réapprovisionnement urgent"},
		{"agotado con mucho transferido", 0, 80, 80, "Stock épuisé - Réapprovisionnement urgent"},
		{"crítico usa piso 30", 4, 10, 30, "Stock critique - Réapprovisionnement recommandé"},
		{"bajo usa piso 20", 5, 30, 20, "Stock faible - Envisager le réapprovisionnement"},
		{"bajo mitad redondeada abajo", 19, 61, 30, "Stock faible - Envisager le réapprovisionnement"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analytics.RestockSuggestions([]analytics.StockLine{{Available: tt.available, Transferred: tt.transferred}})
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].SuggestedQuantity)
			assert.Equal(t, tt.reason, got[0].Reason)
		})
	}
}

func TestRestockSuggestions_ExactlyTwentyGetsNothing(t *testing.T) {
	assert.Empty(t, analytics.RestockSuggestions([]analytics.StockLine{{Available: 20, Transferred: 100}}))
}

func TestRestockSuggestions_Order(t *testing.T) {
	got := analytics.RestockSuggestions([]analytics.StockLine{
		{ProductID: "low15", Available: 15},
		{ProductID: "crit4", Available: 4},
		{ProductID: "out", Available: 0},
		{ProductID: "low6", Available: 6},
		{ProductID: "crit1", Available: 1},
	})
	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.Product.ProductID)
	}
	assert.Equal(t, []string{"out", "crit1", "crit4", "low6", "low15"}, ids)
}

// ──────────────────────────────────────────────────────────────────────────────
// Desempeño
// ──────────────────────────────────────────────────────────────────────────────

func TestSellerPerformance(t *testing.T) {
	// jueves 13 de junio de 2024, 15:00
	now := time.Date(2024, 6, 13, 15, 0, 0, 0, time.UTC)
	awa := &entity.UserRef{ID: "u1", FirstName: "Awa", LastName: "Diop"}
	moussa := &entity.UserRef{ID: "u2", FirstName: "Moussa", LastName: "Fall"}
	mk := func(u *entity.UserRef, customer, amount, status string, at time.Time) entity.Sale {
		return entity.Sale{
			UserID: u.ID, User: u, CustomerID: customer, TotalAmount: dec(amount), Status: status, SaleDate: at,
			Items: []entity.SaleItem{{Quantity: 2}},
		}
	}
	sales := []entity.Sale{
		mk(awa, "c1", "150000", entity.SaleStatusCompleted, now.Add(-2*time.Hour)),
		mk(awa, "c1", "50000", entity.SaleStatusPending, now.Add(-time.Hour)),
		mk(moussa, "c2", "250000", entity.SaleStatusCompleted, now.Add(-3*time.Hour)),
		mk(moussa, "c3", "900000", entity.SaleStatusCancelled, now.Add(-time.Hour)),
		mk(awa, "c4", "300000", entity.SaleStatusCompleted, now.AddDate(0, 0, -2)), // fuera del día
	}

	day := analytics.SellerPerformance(sales, analytics.PerformanceDay, now)
	require.Len(t, day, 2)
	assert.Equal(t, "Moussa Fall", day[0].SellerName)
	assert.True(t, day[0].Revenue.Equal(dec("250000")))
	assert.Equal(t, "Excellent", day[0].Badge)

	assert.Equal(t, "Awa Diop", day[1].SellerName)
	assert.Equal(t, 2, day[1].SalesCount)
	assert.Equal(t, int64(4), day[1].ItemsSold)
	assert.Equal(t, 1, day[1].UniqueCustomers)
	assert.True(t, day[1].AverageSale.Equal(dec("100000")))
	assert.True(t, day[1].ObjectivePct.Equal(dec("100")))
	assert.Equal(t, "Excellent", day[1].Badge)

	week := analytics.SellerPerformance(sales, analytics.PerformanceWeek, now)
	require.Len(t, week, 2)
	assert.Equal(t, "Awa Diop", week[0].SellerName)
	assert.True(t, week[0].Revenue.Equal(dec("500000")))
	assert.True(t, week[0].ObjectivePct.Equal(dec("50")))
	assert.Equal(t, "Bien", week[0].Badge)
}

func TestPerformancePeriodStart(t *testing.T) {
	now := time.Date(2024, 6, 13, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC), analytics.PerformanceDay.Start(now))
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), analytics.PerformanceWeek.Start(now))
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), analytics.PerformanceMonth.Start(now))
	assert.Equal(t, analytics.PerformanceDay, analytics.ParsePerformancePeriod("année"))
}

func TestBadgeAndReportLevel(t *testing.T) {
	assert.Equal(t, "Très bien", analytics.Badge(dec("75")))
	assert.Equal(t, "Bien", analytics.Badge(dec("74.9")))
	assert.Equal(t, "À améliorer", analytics.Badge(dec("49.9")))

	assert.Equal(t, "excellent", analytics.ReportLevel(dec("1000000")))
	assert.Equal(t, "tres-bien", analytics.ReportLevel(dec("999999")))
	assert.Equal(t, "bien", analytics.ReportLevel(dec("100000")))
	assert.Equal(t, "standard", analytics.ReportLevel(dec("99999.99")))
}
