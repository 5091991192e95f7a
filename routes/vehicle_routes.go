package routes

import (
	"fiber-tms/config"
	"fiber-tms/controllers"
	"fiber-tms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupVehicleRoutes(app *fiber.App, db *gorm.DB) {
	vehicleController := controllers.NewVehicleController(db)

	api := app.Group(config.MAIN_ROUTES+"/vehicles", middleware.AuthMiddleware)
	api.Get("/", vehicleController.GetAllVehicles)
	api.Post("/", vehicleController.CreateVehicle)
	api.Get("/types", vehicleController.GetAllVehicleTypes)
	api.Post("/types", vehicleController.CreateVehicleType)
	api.Get("/:id", vehicleController.GetVehicleByID)
	api.Put("/:id", vehicleController.UpdateVehicle)
	api.Delete("/:id", vehicleController.DeleteVehicle)
}
