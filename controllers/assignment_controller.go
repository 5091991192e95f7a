package controllers

import (
	"fiber-tms/repositories"
	"fiber-tms/services"
	"fiber-tms/types"
	"fmt"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AssignmentController struct {
	DB       *gorm.DB
	repo     *repositories.AssignmentRepository
	notifier *services.NotificationService
}

type AssignmentRequest struct {
	JobOrderID uint   `json:"job_order_id" validate:"required"`
	DriverID   uint   `json:"driver_id" validate:"required"`
	VehicleID  uint   `json:"vehicle_id" validate:"required"`
	Notes      string `json:"notes"`
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{
		DB:       db,
		repo:     repositories.NewAssignmentRepository(db),
		notifier: services.NewNotificationService(db),
	}
}

func (c *AssignmentController) CreateAssignment(ctx *fiber.Ctx) error {
	var input AssignmentRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	assignment, err := c.repo.CreateAssignment(input.JobOrderID, input.DriverID, input.VehicleID, input.Notes, actorID(ctx))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	// Notify after commit; a failed mail never rolls back the booking.
	go c.notifier.SendToDriver(assignment.DriverID, "New assignment",
		fmt.Sprintf("You have been assigned to job order %d with vehicle %s", assignment.JobOrderID, assignment.Vehicle.PlateNumber),
		map[string]string{"assignment_id": fmt.Sprintf("%d", assignment.ID)})

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Assignment created", "data": assignment})
}

func (c *AssignmentController) GetAssignmentsByJobOrder(ctx *fiber.Ctx) error {
	jobID, err := ctx.ParamsInt("job_order_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job order ID"})
	}

	assignments, err := c.repo.GetByJobOrder(uint(jobID))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Assignments found", "data": assignments})
}

func (c *AssignmentController) CancelAssignment(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := c.repo.CancelAssignment(uint(id), actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Assignment cancelled"})
}
