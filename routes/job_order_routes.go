package routes

import (
	"fiber-tms/config"
	"fiber-tms/controllers"
	"fiber-tms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupJobOrderRoutes(app *fiber.App, db *gorm.DB) {
	jobOrderController := controllers.NewJobOrderController(db)
	assignmentController := controllers.NewAssignmentController(db)

	api := app.Group(config.MAIN_ROUTES+"/job-orders", middleware.AuthMiddleware)
	api.Get("/", jobOrderController.GetAllJobOrders)
	api.Post("/", jobOrderController.CreateJobOrder)
	api.Post("/export", jobOrderController.ExportJobOrders)
	api.Get("/:id", jobOrderController.GetJobOrderByID)
	api.Put("/:id", jobOrderController.UpdateJobOrder)
	api.Put("/:id/status", jobOrderController.UpdateJobOrderStatus)
	api.Post("/:id/cancel", jobOrderController.CancelJobOrder)
	api.Delete("/:id", jobOrderController.DeleteJobOrder)
	api.Get("/:job_order_id/assignments", assignmentController.GetAssignmentsByJobOrder)

	assignments := app.Group(config.MAIN_ROUTES+"/assignments", middleware.AuthMiddleware)
	assignments.Post("/", assignmentController.CreateAssignment)
	assignments.Post("/:id/cancel", assignmentController.CancelAssignment)
}
