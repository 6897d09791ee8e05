package main

import (
	"log"
	"strings"

	"ajans-backend/internal/audit"
	"ajans-backend/internal/auth"
	"ajans-backend/internal/client"
	"ajans-backend/internal/config"
	"ajans-backend/internal/contract"
	"ajans-backend/internal/dashboard"
	"ajans-backend/internal/database"
	"ajans-backend/internal/deliverable"
	"ajans-backend/internal/invoice"
	"ajans-backend/internal/models"
	"ajans-backend/internal/pricing"
	"ajans-backend/internal/project"
	"ajans-backend/internal/report"
	"ajans-backend/internal/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Giriş gerektirmeyen rapor görüntüleme (paylaşım linki)
	app.Get("/public/reports/:token", report.PublicViewHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	// Kullanıcı yönetimi
	adminRoutes.Post("/account-managers", auth.CreateAccountManagerHandler())

	// Fiyat listesi yönetimi
	adminRoutes.Post("/price-items", pricing.CreatePriceItemHandler())
	adminRoutes.Put("/price-items/:id", pricing.UpdatePriceItemHandler())
	adminRoutes.Delete("/price-items/:id", pricing.DeletePriceItemHandler())

	// Müşteri yönetimi (oluşturma/arşivleme sadece super admin)
	adminRoutes.Post("/clients", client.CreateClientHandler())
	adminRoutes.Post("/clients/:id/archive", client.ArchiveClientHandler())

	// Sözleşme yönetimi
	adminRoutes.Post("/contracts", contract.CreateContractHandler())
	adminRoutes.Put("/contracts/:id", contract.UpdateContractHandler())
	adminRoutes.Delete("/contracts/:id", contract.DeleteContractHandler())

	// Fatura yönetimi
	adminRoutes.Post("/invoices", invoice.CreateInvoiceHandler())
	adminRoutes.Put("/invoices/:id", invoice.UpdateInvoiceHandler())
	adminRoutes.Delete("/invoices/:id", invoice.DeleteInvoiceHandler())
	adminRoutes.Post("/invoices/:id/mark-paid", invoice.MarkInvoicePaidHandler())
	adminRoutes.Get("/invoices/summary/monthly", invoice.MonthlyRevenueSummaryHandler())

	// Dashboard
	adminRoutes.Get("/dashboard/summary", dashboard.SummaryHandler())
	adminRoutes.Get("/dashboard/revenue-chart", dashboard.RevenueChartHandler())

	// Ortak (auth gerektiren) route'lar

	// Müşteriler
	protected.Get("/clients", client.ListClientsHandler())
	protected.Get("/clients/:id", client.GetClientHandler())
	protected.Put("/clients/:id", client.UpdateClientHandler())

	// Sözleşmeler
	protected.Get("/contracts", contract.ListContractsHandler())
	protected.Get("/contracts/:id", contract.GetContractHandler())
	protected.Get("/contracts/:id/quota-usage", contract.QuotaUsageHandler())

	// Projeler
	protected.Post("/projects", project.CreateProjectHandler())
	protected.Get("/projects", project.ListProjectsHandler())
	protected.Get("/projects/:id", project.GetProjectHandler())
	protected.Put("/projects/:id", project.UpdateProjectHandler())
	protected.Delete("/projects/:id", project.DeleteProjectHandler())

	// Teslimatlar
	protected.Post("/deliverables", deliverable.CreateDeliverableHandler())
	protected.Get("/deliverables", deliverable.ListDeliverablesHandler())
	protected.Get("/deliverables/:id", deliverable.GetDeliverableHandler())
	protected.Put("/deliverables/:id", deliverable.UpdateDeliverableHandler())
	protected.Delete("/deliverables/:id", deliverable.DeleteDeliverableHandler())
	protected.Post("/deliverables/:id/submit", deliverable.SubmitDeliverableHandler())
	protected.Post("/deliverables/:id/request-revision", deliverable.RequestRevisionHandler())
	protected.Post("/deliverables/:id/approve", deliverable.ApproveDeliverableHandler())
	protected.Post("/deliverables/:id/deliver", deliverable.DeliverDeliverableHandler())

	// Faturalar (görüntüleme)
	protected.Get("/invoices", invoice.ListInvoicesHandler())
	protected.Get("/invoices/:id", invoice.GetInvoiceHandler())

	// Fiyat listesi
	protected.Get("/price-items", pricing.ListPriceItemsHandler())

	// Raporlar
	protected.Post("/reports/build", report.BuildDocumentHandler())
	protected.Post("/reports/preview", report.PreviewHandler())
	protected.Post("/reports", report.CreateReportHandler())
	protected.Get("/reports", report.ListReportsHandler())
	protected.Get("/reports/:id", report.GetReportHandler())
	protected.Put("/reports/:id", report.UpdateReportHandler())
	protected.Delete("/reports/:id", report.DeleteReportHandler())
	protected.Get("/reports/:id/export/csv", report.ExportCSVHandler())
	protected.Get("/reports/:id/export/html", report.ExportHTMLHandler())
	protected.Get("/reports/:id/export/xlsx", report.ExportXLSXHandler())

	// Ayarlar (tema, rapor taslağı)
	protected.Get("/settings/:key", settings.GetSettingHandler())
	protected.Put("/settings/:key", settings.PutSettingHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
