package controllers

import (
	"fiber-tms/models"
	"fiber-tms/repositories"
	"fiber-tms/types"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InvoiceController struct {
	DB   *gorm.DB
	repo *repositories.InvoiceRepository
}

type InvoiceRequest struct {
	SourceType  string  `json:"source_type" validate:"required,oneof=JO MF DO"`
	SourceNo    string  `json:"source_no" validate:"required"`
	InvoiceDate string  `json:"invoice_date"`
	DueDate     string  `json:"due_date"`
	Subtotal    float64 `json:"subtotal" validate:"gt=0"`
	Tax         float64 `json:"tax" validate:"gte=0"`
	Notes       string  `json:"notes"`
}

type PaymentRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate string  `json:"payment_date"`
	Method      string  `json:"method" validate:"required,oneof=transfer cash check giro"`
	Notes       string  `json:"notes"`
}

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db, repo: repositories.NewInvoiceRepository(db)}
}

func (c *InvoiceController) GetAllInvoices(ctx *fiber.Ctx) error {
	// Sweep pending invoices past their due date before listing so the
	// overdue filter reflects today. Partially paid invoices stay partial.
	if err := c.repo.RefreshOverdue(); err != nil {
		log.Printf("overdue refresh failed: %v", err)
	}

	var invoices []models.Invoice
	query := c.DB.Preload("Customer").Order("id desc")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := ctx.QueryInt("customer_id", 0); customerID > 0 {
		query = query.Where("customer_id = ?", customerID)
	}
	if err := query.Find(&invoices).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Invoices found", "data": invoices})
}

func (c *InvoiceController) GetInvoiceByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	invoice, err := c.repo.GetByID(uint(id))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	var history []models.StatusHistory
	c.DB.Where("ref_no = ?", invoice.InvoiceNo).Order("created_at asc").Find(&history)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Invoice found",
		"data":    fiber.Map{"invoice": invoice, "history": history},
	})
}

func (c *InvoiceController) CreateInvoice(ctx *fiber.Ctx) error {
	var input InvoiceRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	invoice, err := c.repo.Create(models.SourceType(input.SourceType), strings.ToUpper(input.SourceNo),
		parseDate(input.InvoiceDate), parseDate(input.DueDate), input.Subtotal, input.Tax, input.Notes, actorID(ctx))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Invoice created", "data": invoice})
}

func (c *InvoiceController) RecordPayment(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input PaymentRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	paymentDate := time.Now()
	if d := parseDate(input.PaymentDate); d != nil {
		paymentDate = *d
	}

	invoice, err := c.repo.RecordPayment(uint(id), input.Amount, paymentDate, input.Method, input.Notes, actorID(ctx))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Payment recorded", "data": invoice})
}

func (c *InvoiceController) CancelInvoice(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input CancelRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.repo.Cancel(uint(id), input.Reason, actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Invoice cancelled"})
}

func (c *InvoiceController) DeleteInvoice(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := c.repo.Delete(uint(id), actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Invoice deleted"})
}
