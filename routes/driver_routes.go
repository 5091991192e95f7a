package routes

import (
	"fiber-tms/config"
	"fiber-tms/controllers"
	"fiber-tms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDriverRoutes(app *fiber.App, db *gorm.DB) {
	driverController := controllers.NewDriverController(db)

	api := app.Group(config.MAIN_ROUTES+"/drivers", middleware.AuthMiddleware)
	api.Get("/", driverController.GetAllDrivers)
	api.Post("/", driverController.CreateDriver)
	api.Get("/:id", driverController.GetDriverByID)
	api.Put("/:id", driverController.UpdateDriver)
	api.Delete("/:id", driverController.DeleteDriver)
}
