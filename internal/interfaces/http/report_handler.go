package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// TransferReportRenderer genera el PDF del reporte de transferencias.
type TransferReportRenderer interface {
	TransferReportPDF(ctx context.Context, companyName string, report *analytics.TransferReport, generatedAt time.Time) ([]byte, error)
}

// CompanyInfoSource datos básicos de la empresa, para el encabezado del PDF.
type CompanyInfoSource interface {
	CompanyInfo(ctx context.Context, token string) (*entity.Company, error)
}

// ReportHandler reportes agregados sobre ventas, transferencias y stock (protegido).
type ReportHandler struct {
	uc      *analytics.ReportUseCase
	pdf     TransferReportRenderer
	company CompanyInfoSource
	log     *logger.Logger
	now     func() time.Time
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, pdf TransferReportRenderer, company CompanyInfoSource, log *logger.Logger) *ReportHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportHandler{uc: uc, pdf: pdf, company: company, log: log.Component("reports"), now: time.Now}
}

// SalesByPOS godoc
// @Summary      Ventas por punto de venta
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  analytics.SalesReport
// @Router       /api/reports/sales-by-pos [get]
func (h *ReportHandler) SalesByPOS(c *fiber.Ctx) error {
	out, err := h.uc.SalesByPOS(c.UserContext(), GetBackendToken(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Transfers godoc
// @Summary      Reporte de transferencias
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period         query  string  false  "day | week | month"  default(month)
// @Param        pointOfSaleId  query  string  false  "Punto de venta"
// @Param        startDate      query  string  false  "YYYY-MM-DD"
// @Param        endDate        query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  analytics.TransferReport
// @Router       /api/reports/transfers [get]
func (h *ReportHandler) Transfers(c *fiber.Ctx) error {
	report, err := h.transferReport(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// TransfersPDF godoc
// @Summary      Reporte de transferencias en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        period  query  string  false  "day | week | month"  default(month)
// @Success      200  {file}  binary
// @Router       /api/reports/transfers/pdf [get]
func (h *ReportHandler) TransfersPDF(c *fiber.Ctx) error {
	report, err := h.transferReport(c)
	if err != nil {
		return respondError(c, err)
	}
	name := ""
	if h.company != nil {
		if info, err := h.company.CompanyInfo(c.UserContext(), GetBackendToken(c)); err == nil {
			name = info.Name
		} else {
			h.log.Warn().Err(err).Msg("no se pudo obtener el nombre de la empresa para el PDF")
		}
	}
	now := h.now()
	raw, err := h.pdf.TransferReportPDF(c.UserContext(), name, report, now)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="rapport-transferts-%s-%s.pdf"`, report.Period, now.Format("20060102")))
	return c.Send(raw)
}

func (h *ReportHandler) transferReport(c *fiber.Ctx) (*analytics.TransferReport, error) {
	q, err := transferQueryFrom(c)
	if err != nil {
		return nil, err
	}
	return h.uc.Transfers(c.UserContext(), GetBackendToken(c), q, analytics.ParsePeriod(c.Query("period")))
}

// Stock godoc
// @Summary      Salud del stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  analytics.StockReport
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.Stock(c.UserContext(), GetBackendToken(c), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Performance godoc
// @Summary      Rendimiento de vendedores
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "jour | semaine | mois"  default(jour)
// @Success      200  {object}  analytics.PerformanceReport
// @Router       /api/reports/performance [get]
func (h *ReportHandler) Performance(c *fiber.Ctx) error {
	out, err := h.uc.Performance(c.UserContext(), GetBackendToken(c), analytics.ParsePerformancePeriod(c.Query("period")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Tablero del backoffice
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  analytics.Dashboard
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), GetBackendToken(c), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
