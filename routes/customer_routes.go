package routes

import (
	"fiber-tms/config"
	"fiber-tms/controllers"
	"fiber-tms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCustomerRoutes(app *fiber.App, db *gorm.DB) {
	customerController := controllers.NewCustomerController(db)

	api := app.Group(config.MAIN_ROUTES+"/customers", middleware.AuthMiddleware)
	api.Get("/", customerController.GetAllCustomers)
	api.Post("/", customerController.CreateCustomer)
	api.Post("/upload-excel", customerController.UploadCustomers)
	api.Get("/:id", customerController.GetCustomerByID)
	api.Put("/:id", customerController.UpdateCustomer)
	api.Delete("/:id", customerController.DeleteCustomer)
}
