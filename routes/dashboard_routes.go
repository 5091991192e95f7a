package routes

import (
	"fiber-tms/config"
	"fiber-tms/controllers"
	"fiber-tms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB) {
	dashboardController := controllers.NewDashboardController(db)

	api := app.Group(config.MAIN_ROUTES+"/dashboard", middleware.AuthMiddleware)
	api.Get("/summary", dashboardController.GetSummary)
	api.Get("/top-drivers", dashboardController.GetTopDrivers)
}
