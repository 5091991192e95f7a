package controllers

import (
	"fiber-tms/models"
	"fiber-tms/repositories"
	"fiber-tms/services"
	"fiber-tms/types"
	"fmt"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ManifestController struct {
	DB       *gorm.DB
	repo     *repositories.ManifestRepository
	notifier *services.NotificationService
}

type ManifestRequest struct {
	OriginCity      string `json:"origin_city" validate:"required"`
	DestinationCity string `json:"destination_city" validate:"required"`
	Remarks         string `json:"remarks"`
}

type ManifestMembersRequest struct {
	JobOrderIDs []uint `json:"job_order_ids" validate:"required,min=1"`
}

type ManifestResourcesRequest struct {
	DriverID  uint `json:"driver_id" validate:"required"`
	VehicleID uint `json:"vehicle_id" validate:"required"`
}

type ManifestStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func NewManifestController(db *gorm.DB) *ManifestController {
	return &ManifestController{
		DB:       db,
		repo:     repositories.NewManifestRepository(db),
		notifier: services.NewNotificationService(db),
	}
}

func (c *ManifestController) GetAllManifests(ctx *fiber.Ctx) error {
	var manifests []models.Manifest
	query := c.DB.Preload("Driver").Preload("Vehicle").Order("id desc")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&manifests).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Manifests found", "data": manifests})
}

func (c *ManifestController) GetManifestByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	manifest, err := c.repo.GetByID(uint(id))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	var history []models.StatusHistory
	c.DB.Where("ref_no = ?", manifest.ManifestNo).Order("created_at asc").Find(&history)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Manifest found",
		"data":    fiber.Map{"manifest": manifest, "history": history},
	})
}

func (c *ManifestController) CreateManifest(ctx *fiber.Ctx) error {
	var input ManifestRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	manifest, err := c.repo.Create(input.OriginCity, input.DestinationCity, input.Remarks, actorID(ctx))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Manifest created", "data": manifest})
}

func (c *ManifestController) AddJobOrders(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input ManifestMembersRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.repo.AddJobOrders(uint(id), input.JobOrderIDs, actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	manifest, err := c.repo.GetByID(uint(id))
	if err != nil {
		return types.WriteError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Job orders added", "data": manifest})
}

func (c *ManifestController) RemoveJobOrders(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input ManifestMembersRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.repo.RemoveJobOrders(uint(id), input.JobOrderIDs, actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	manifest, err := c.repo.GetByID(uint(id))
	if err != nil {
		return types.WriteError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Job orders removed", "data": manifest})
}

func (c *ManifestController) GetAvailableJobOrders(ctx *fiber.Ctx) error {
	jobs, err := c.repo.GetAvailableJobOrders()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Available job orders found", "data": jobs})
}

func (c *ManifestController) SetResources(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input ManifestResourcesRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.repo.SetResources(uint(id), input.DriverID, input.VehicleID, actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	manifest, err := c.repo.GetByID(uint(id))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	go c.notifier.SendToDriver(input.DriverID, "Manifest assignment",
		fmt.Sprintf("You have been assigned to manifest %s (%s to %s)",
			manifest.ManifestNo, manifest.OriginCity, manifest.DestinationCity),
		map[string]string{"manifest_no": manifest.ManifestNo})

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Resources assigned", "data": manifest})
}

func (c *ManifestController) UpdateManifestStatus(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input ManifestStatusRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.repo.UpdateStatus(uint(id), models.ManifestStatus(input.Status), actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	manifest, err := c.repo.GetByID(uint(id))
	if err != nil {
		return types.WriteError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Status updated", "data": manifest})
}
