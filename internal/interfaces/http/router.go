package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/auth"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	StationUC      *usecase.StationUseCase
	FuelTypeUC     *usecase.FuelTypeUseCase
	InvoiceUC      *usecase.InvoiceUseCase
	SaleUC         *usecase.SaleUseCase
	DashboardUC    *reporting.DashboardUseCase
	Scope          *usecase.ScopeResolver
	JWTSecret      string
	MaxUploadBytes int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	stations := protected.Group("/stations")
	stationHandler := NewStationHandler(deps.StationUC)
	stations.Get("/", stationHandler.List)
	stations.Post("/", stationHandler.Create)
	stations.Get("/:id", stationHandler.GetByID)
	stations.Put("/:id", stationHandler.Update)
	stations.Delete("/:id", stationHandler.Delete)

	fuelTypes := protected.Group("/fuel-types")
	fuelTypeHandler := NewFuelTypeHandler(deps.FuelTypeUC)
	fuelTypes.Get("/", fuelTypeHandler.List)
	fuelTypes.Post("/", fuelTypeHandler.Create)
	fuelTypes.Put("/:id", fuelTypeHandler.Update)

	// /export/csv va antes de /:id
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.MaxUploadBytes)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/export/csv", invoiceHandler.ExportCSV)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/document", invoiceHandler.UploadDocument)
	invoices.Get("/:id/document", invoiceHandler.DownloadDocument)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Get("/export/csv", saleHandler.ExportCSV)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)

	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Scope)
	dashboard.Get("/", dashboardHandler.Get)
	dashboard.Get("/report.pdf", dashboardHandler.Report)
}
