package routes

import (
	"fiber-tms/config"
	"fiber-tms/controllers"
	"fiber-tms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDeliveryOrderRoutes(app *fiber.App, db *gorm.DB) {
	deliveryOrderController := controllers.NewDeliveryOrderController(db)

	api := app.Group(config.MAIN_ROUTES+"/delivery-orders", middleware.AuthMiddleware)
	api.Get("/", deliveryOrderController.GetAllDeliveryOrders)
	api.Post("/", deliveryOrderController.CreateDeliveryOrder)
	api.Get("/:id", deliveryOrderController.GetDeliveryOrderByID)
	api.Put("/:id/status", deliveryOrderController.UpdateDeliveryOrderStatus)
	api.Post("/:id/pod", deliveryOrderController.UploadPOD)
	api.Get("/:id/tracking", deliveryOrderController.GetTracking)
	api.Delete("/:id", deliveryOrderController.DeleteDeliveryOrder)
}
