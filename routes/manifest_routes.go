package routes

import (
	"fiber-tms/config"
	"fiber-tms/controllers"
	"fiber-tms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupManifestRoutes(app *fiber.App, db *gorm.DB) {
	manifestController := controllers.NewManifestController(db)

	api := app.Group(config.MAIN_ROUTES+"/manifests", middleware.AuthMiddleware)
	api.Get("/", manifestController.GetAllManifests)
	api.Post("/", manifestController.CreateManifest)
	api.Get("/available-job-orders", manifestController.GetAvailableJobOrders)
	api.Get("/:id", manifestController.GetManifestByID)
	api.Post("/:id/job-orders", manifestController.AddJobOrders)
	api.Delete("/:id/job-orders", manifestController.RemoveJobOrders)
	api.Put("/:id/resources", manifestController.SetResources)
	api.Put("/:id/status", manifestController.UpdateManifestStatus)
}
