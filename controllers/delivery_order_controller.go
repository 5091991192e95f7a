package controllers

import (
	"fiber-tms/models"
	"fiber-tms/repositories"
	"fiber-tms/types"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DeliveryOrderController struct {
	DB   *gorm.DB
	repo *repositories.DeliveryOrderRepository
}

type DeliveryOrderRequest struct {
	SourceType         string `json:"source_type" validate:"required,oneof=JO MF"`
	SourceNo           string `json:"source_no" validate:"required"`
	SelectedJobOrderID *uint  `json:"selected_job_order_id"`
	Priority           string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Temperature        string `json:"temperature"`
	Eta                string `json:"eta"`
	Remarks            string `json:"remarks"`
}

type DeliveryOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func NewDeliveryOrderController(db *gorm.DB) *DeliveryOrderController {
	return &DeliveryOrderController{DB: db, repo: repositories.NewDeliveryOrderRepository(db)}
}

func (c *DeliveryOrderController) GetAllDeliveryOrders(ctx *fiber.Ctx) error {
	var orders []models.DeliveryOrder
	query := c.DB.Preload("Customer").Order("id desc")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if sourceNo := ctx.Query("source_no"); sourceNo != "" {
		query = query.Where("source_no = ?", sourceNo)
	}
	if err := query.Find(&orders).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Delivery orders found", "data": orders})
}

func (c *DeliveryOrderController) GetDeliveryOrderByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	do, err := c.repo.GetByID(uint(id))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	var pods []models.ProofOfDelivery
	c.DB.Where("delivery_order_id = ?", do.ID).Order("created_at asc").Find(&pods)

	var history []models.StatusHistory
	c.DB.Where("ref_no = ?", do.DoNo).Order("created_at asc").Find(&history)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Delivery order found",
		"data":    fiber.Map{"delivery_order": do, "pods": pods, "history": history},
	})
}

func (c *DeliveryOrderController) CreateDeliveryOrder(ctx *fiber.Ctx) error {
	var input DeliveryOrderRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var eta *time.Time
	if input.Eta != "" {
		t, err := time.Parse(time.RFC3339, input.Eta)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "eta must be RFC3339"})
		}
		eta = &t
	}

	do, err := c.repo.Create(models.SourceType(input.SourceType), strings.ToUpper(input.SourceNo),
		input.SelectedJobOrderID, input.Priority, input.Temperature, input.Remarks, eta, actorID(ctx))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Delivery order created", "data": do})
}

func (c *DeliveryOrderController) UpdateDeliveryOrderStatus(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input DeliveryOrderStatusRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.repo.UpdateStatus(uint(id), models.DeliveryOrderStatus(input.Status), actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	do, err := c.repo.GetByID(uint(id))
	if err != nil {
		return types.WriteError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Status updated", "data": do})
}

// UploadPOD stores the signed proof-of-delivery document and records it
// against the delivery order.
func (c *DeliveryOrderController) UploadPOD(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".pdf":
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only JPG, PNG and PDF files are allowed"})
	}

	uploadDir := "./uploads/pod"
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to prepare upload directory"})
	}

	fileName := fmt.Sprintf("pod_%d_%d%s", id, time.Now().UnixNano(), ext)
	if err := ctx.SaveFile(file, filepath.Join(uploadDir, fileName)); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save file"})
	}

	receivedBy := ctx.FormValue("received_by")
	notes := ctx.FormValue("notes")

	if err := c.repo.AddPOD(uint(id), fileName, receivedBy, notes, actorID(ctx)); err != nil {
		os.Remove(filepath.Join(uploadDir, fileName))
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Proof of delivery uploaded",
		"data":    fiber.Map{"file_name": fileName},
	})
}

func (c *DeliveryOrderController) DeleteDeliveryOrder(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := c.repo.Delete(uint(id), actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Delivery order deleted"})
}

func (c *DeliveryOrderController) GetTracking(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	points, err := c.repo.GetTracking(uint(id), ctx.QueryInt("limit", 0))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Tracking points found", "data": points})
}
