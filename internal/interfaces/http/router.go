package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/auth"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/backend"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// Backend operaciones del backend REST que se exponen como proxy tipado.
// *backend.Client lo implementa.
type Backend interface {
	CompanyBackend
	POSBackend
	ProductBackend
	SaleBackend
	TransferBackend
}

var _ Backend = (*backend.Client)(nil)

// MetricsExporter expone el registro de métricas en formato Prometheus.
type MetricsExporter interface {
	Handler() nethttp.Handler
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	Backend          Backend
	Reports          *analytics.ReportUseCase
	ReportPDF        TransferReportRenderer
	Ledger           *inventory.LedgerUseCase
	ActivityReportUC *usecase.ActivityReportUseCase
	Metrics          MetricsExporter
	Log              *logger.Logger
	JWTSecret        string
	ServiceName      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Empresa y empleados
	company := protected.Group("/company")
	companyHandler := NewCompanyHandler(deps.Backend)
	company.Get("/profile", companyHandler.Profile)
	company.Get("/info", companyHandler.Info)
	company.Get("/summary", companyHandler.Summary)
	company.Put("/", adminOnly, companyHandler.Update)
	company.Get("/employees", companyHandler.Employees)
	company.Post("/employees", adminOnly, companyHandler.AddEmployee)

	// Puntos de venta
	pos := protected.Group("/pos")
	posHandler := NewPOSHandler(deps.Backend)
	pos.Get("/", posHandler.List)
	pos.Post("/", managers, posHandler.Create)

	// Productos y stock de empresa
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Backend)
	products.Get("/", productHandler.List)
	products.Post("/", managers, productHandler.Create)
	products.Post("/add-stock", managers, productHandler.AddStock)
	products.Post("/transfer-stock", managers, productHandler.TransferStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", managers, productHandler.Update)
	products.Delete("/:id", managers, productHandler.Deactivate)
	products.Get("/:id/stock-history", productHandler.StockHistory)

	// Ventas
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Backend)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Get("/:id", saleHandler.GetByID)

	// Transferencias
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.Backend)
	transfers.Get("/", transferHandler.List)
	transfers.Post("/", managers, transferHandler.Create)
	transfers.Get("/stock", transferHandler.AvailableStock)
	transfers.Get("/:id", transferHandler.GetByID)

	// Reportes agregados
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports, deps.ReportPDF, deps.Backend, deps.Log)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/sales-by-pos", reportHandler.SalesByPOS)
	reports.Get("/transfers", reportHandler.Transfers)
	reports.Get("/transfers/pdf", reportHandler.TransfersPDF)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/performance", managers, reportHandler.Performance)

	// Ledger local de cantidades
	ledger := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.Ledger)
	ledger.Get("/items", ledgerHandler.ListItems)
	ledger.Post("/items", managers, ledgerHandler.CreateItem)
	ledger.Get("/items/:id", ledgerHandler.GetItem)
	ledger.Post("/items/:id/sale", ledgerHandler.RecordSale)
	ledger.Post("/items/:id/replenish", ledgerHandler.RecordReplenishment)
	ledger.Post("/items/:id/adjust", managers, ledgerHandler.Adjust)
	ledger.Get("/movements", ledgerHandler.ListMovements)
	ledger.Get("/health", ledgerHandler.Health)
	ledger.Get("/replenishment", managers, ledgerHandler.Replenishment)

	// Rapports d'activité
	activity := protected.Group("/activity-reports")
	activityHandler := NewActivityReportHandler(deps.ActivityReportUC)
	activity.Get("/", activityHandler.List)
	activity.Post("/", activityHandler.Create)
}
