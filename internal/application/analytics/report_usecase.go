package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/application/ports"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

const pageSize = 100 // tamaño de página al recorrer listados completos del backend

// ReportUseCase obtiene ventas, transferencias y stock del backend y los agrega.
type ReportUseCase struct {
	source       ports.ReportSource
	log          *logger.Logger
	lowThreshold int
	maxPages     int
	now          func() time.Time
}

// ReportOption configura ReportUseCase.
type ReportOption func(*ReportUseCase)

// WithReportClock fija el reloj (tests).
func WithReportClock(now func() time.Time) ReportOption {
	return func(uc *ReportUseCase) { uc.now = now }
}

// NewReportUseCase construye el caso de uso. maxPages acota el recorrido de listados paginados.
func NewReportUseCase(source ports.ReportSource, log *logger.Logger, lowThreshold, maxPages int, opts ...ReportOption) *ReportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if lowThreshold <= 0 {
		lowThreshold = DefaultLowStockThreshold
	}
	if maxPages <= 0 {
		maxPages = 1
	}
	uc := &ReportUseCase{
		source:       source,
		log:          log.Component("reports"),
		lowThreshold: lowThreshold,
		maxPages:     maxPages,
		now:          time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// SalesReport ventas agrupadas por punto de venta.
type SalesReport struct {
	TotalSales   int             `json:"totalSales"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	StatusCounts StatusCounts    `json:"statusCounts"`
	ByPOS        []POSSalesStats `json:"byPointOfSale"`
	Truncated    bool            `json:"truncated"`
}

// StockReport salud del stock de la empresa.
type StockReport struct {
	Threshold   int                 `json:"threshold"`
	Stats       StockStatsResult    `json:"stats"`
	Alerts      StockAlertsResult   `json:"alerts"`
	Turnover    StockTurnoverResult `json:"turnover"`
	Suggestions []RestockSuggestion `json:"suggestions"`
}

// PerformanceReport desempeño por vendedor.
type PerformanceReport struct {
	Period       PerformancePeriod `json:"periode"`
	From         time.Time         `json:"depuis"`
	Objective    decimal.Decimal   `json:"objectif"`
	TotalRevenue decimal.Decimal   `json:"chiffreAffairesTotal"`
	TotalSales   int               `json:"ventesTotales"`
	Sellers      []SellerStats     `json:"commerciaux"`
	Truncated    bool              `json:"truncated"`
}

// Dashboard resumen combinado para la pantalla principal.
type Dashboard struct {
	DateLabel       string           `json:"dateLabel"`
	Sales           SalesReport      `json:"sales"`
	Transfers       TransferSummary  `json:"transfers"`
	Stock           StockStatsResult `json:"stock"`
	CriticalAlerts  int              `json:"criticalAlerts"`
	RestockRequired int              `json:"restockRequired"`
}

// SalesByPOS recorre todas las ventas y las agrupa por punto de venta.
func (uc *ReportUseCase) SalesByPOS(ctx context.Context, token string) (*SalesReport, error) {
	sales, truncated, err := uc.allSales(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}
	r := buildSalesReport(sales, truncated)
	return &r, nil
}

// Transfers arma el reporte de transferencias por periodo.
func (uc *ReportUseCase) Transfers(ctx context.Context, token string, q ports.TransferQuery, p Period) (*TransferReport, error) {
	transfers, _, err := uc.allTransfers(ctx, token, q)
	if err != nil {
		return nil, fmt.Errorf("reporte de transferencias: %w", err)
	}
	r := BuildTransferReport(transfers, p)
	return &r, nil
}

// Stock arma el reporte de salud del stock a partir del stock disponible de la empresa.
func (uc *ReportUseCase) Stock(ctx context.Context, token, companyID string) (*StockReport, error) {
	stock, err := uc.source.AvailableStock(ctx, token, companyID)
	if err != nil {
		return nil, fmt.Errorf("reporte de stock: %w", err)
	}
	r := uc.buildStockReport(FromStockProducts(stock.Products))
	return &r, nil
}

// Performance desempeño por vendedor en el periodo que contiene la fecha actual.
func (uc *ReportUseCase) Performance(ctx context.Context, token string, p PerformancePeriod) (*PerformanceReport, error) {
	sales, truncated, err := uc.allSales(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("reporte de desempeño: %w", err)
	}
	now := uc.now()
	p = ParsePerformancePeriod(string(p))
	sellers := SellerPerformance(sales, p, now)
	r := &PerformanceReport{
		Period:       p,
		From:         p.Start(now),
		Objective:    p.Objective(),
		TotalRevenue: decimal.Zero,
		Sellers:      sellers,
		Truncated:    truncated,
	}
	for _, s := range sellers {
		r.TotalRevenue = r.TotalRevenue.Add(s.Revenue)
		r.TotalSales += s.SalesCount
	}
	return r, nil
}

// Dashboard lanza en paralelo ventas, transferencias y stock.
func (uc *ReportUseCase) Dashboard(ctx context.Context, token, companyID string) (*Dashboard, error) {
	type salesResult struct {
		sales     []entity.Sale
		truncated bool
		err       error
	}
	type transfersResult struct {
		transfers []entity.Transfer
		err       error
	}
	type stockResult struct {
		stock *entity.AvailableStock
		err   error
	}

	salesCh := make(chan salesResult, 1)
	transfersCh := make(chan transfersResult, 1)
	stockCh := make(chan stockResult, 1)

	go func() {
		s, tr, err := uc.allSales(ctx, token)
		salesCh <- salesResult{s, tr, err}
	}()
	go func() {
		t, _, err := uc.allTransfers(ctx, token, ports.TransferQuery{})
		transfersCh <- transfersResult{t, err}
	}()
	go func() {
		st, err := uc.source.AvailableStock(ctx, token, companyID)
		stockCh <- stockResult{st, err}
	}()

	sales := <-salesCh
	transfers := <-transfersCh
	stock := <-stockCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}
	if transfers.err != nil {
		return nil, fmt.Errorf("dashboard: transferencias: %w", transfers.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: stock: %w", stock.err)
	}

	st := uc.buildStockReport(FromStockProducts(stock.stock.Products))
	return &Dashboard{
		DateLabel:       monthLabel(uc.now()),
		Sales:           buildSalesReport(sales.sales, sales.truncated),
		Transfers:       BuildTransferReport(transfers.transfers, PeriodMonth).Summary,
		Stock:           st.Stats,
		CriticalAlerts:  st.Alerts.CriticalAlerts,
		RestockRequired: len(st.Suggestions),
	}, nil
}

func buildSalesReport(sales []entity.Sale, truncated bool) SalesReport {
	return SalesReport{
		TotalSales:   len(sales),
		TotalAmount:  TotalSalesAmount(sales),
		StatusCounts: SalesCountByStatus(sales),
		ByPOS:        SalesByPOS(sales),
		Truncated:    truncated,
	}
}

func (uc *ReportUseCase) buildStockReport(lines []StockLine) StockReport {
	return StockReport{
		Threshold:   uc.lowThreshold,
		Stats:       StockStats(lines, uc.lowThreshold),
		Alerts:      StockAlerts(lines, uc.lowThreshold),
		Turnover:    StockTurnover(lines),
		Suggestions: RestockSuggestions(lines),
	}
}

// allSales recorre las páginas hasta agotar el listado o llegar a maxPages (truncated).
func (uc *ReportUseCase) allSales(ctx context.Context, token string) ([]entity.Sale, bool, error) {
	var all []entity.Sale
	for page := 1; ; page++ {
		p, err := uc.source.ListSales(ctx, token, page, pageSize)
		if err != nil {
			return nil, false, err
		}
		all = append(all, p.Data...)
		if !p.Pagination.HasNext || len(p.Data) == 0 {
			return all, false, nil
		}
		if page >= uc.maxPages {
			uc.log.Warn().Int("pages", page).Msg("listado de ventas truncado")
			return all, true, nil
		}
	}
}

func (uc *ReportUseCase) allTransfers(ctx context.Context, token string, q ports.TransferQuery) ([]entity.Transfer, bool, error) {
	var all []entity.Transfer
	q.Limit = pageSize
	for page := 1; ; page++ {
		q.Page = page
		p, err := uc.source.ListTransfers(ctx, token, q)
		if err != nil {
			return nil, false, err
		}
		all = append(all, p.Data...)
		if !p.Pagination.HasNext || len(p.Data) == 0 {
			return all, false, nil
		}
		if page >= uc.maxPages {
			uc.log.Warn().Int("pages", page).Msg("listado de transferencias truncado")
			return all, true, nil
		}
	}
}

// monthLabel etiqueta legible del mes, ej: "Février 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
		"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
