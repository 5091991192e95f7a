package routes

import (
	"fiber-tms/config"
	"fiber-tms/controllers"
	"fiber-tms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupInvoiceRoutes(app *fiber.App, db *gorm.DB) {
	invoiceController := controllers.NewInvoiceController(db)

	api := app.Group(config.MAIN_ROUTES+"/invoices", middleware.AuthMiddleware)
	api.Get("/", invoiceController.GetAllInvoices)
	api.Post("/", invoiceController.CreateInvoice)
	api.Get("/:id", invoiceController.GetInvoiceByID)
	api.Post("/:id/payments", invoiceController.RecordPayment)
	api.Post("/:id/cancel", invoiceController.CancelInvoice)
	api.Delete("/:id", invoiceController.DeleteInvoice)
}
