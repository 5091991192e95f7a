package controllers

import (
	"fiber-tms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

func (c *DashboardController) countByStatus(model interface{}) ([]statusCount, error) {
	var counts []statusCount
	err := c.DB.Model(model).Select("status, count(*) as count").Group("status").Scan(&counts).Error
	return counts, err
}

// GetSummary returns the operations overview: per-status counts for each
// document type plus the receivables position.
func (c *DashboardController) GetSummary(ctx *fiber.Ctx) error {
	jobOrders, err := c.countByStatus(&models.JobOrder{})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	manifests, err := c.countByStatus(&models.Manifest{})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	deliveryOrders, err := c.countByStatus(&models.DeliveryOrder{})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	invoices, err := c.countByStatus(&models.Invoice{})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var receivables struct {
		TotalBilled      float64 `json:"total_billed"`
		TotalPaid        float64 `json:"total_paid"`
		TotalOutstanding float64 `json:"total_outstanding"`
	}
	err = c.DB.Model(&models.Invoice{}).
		Where("status NOT IN ?", []models.InvoiceStatus{models.InvoiceCancelled}).
		Select("COALESCE(SUM(total_amount),0) as total_billed, COALESCE(SUM(paid_amount),0) as total_paid, COALESCE(SUM(total_amount - paid_amount),0) as total_outstanding").
		Scan(&receivables).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var activeDrivers, activeVehicles int64
	c.DB.Model(&models.Driver{}).Where("is_active = ?", true).Count(&activeDrivers)
	c.DB.Model(&models.Vehicle{}).Where("is_active = ?", true).Count(&activeVehicles)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"job_orders":      jobOrders,
			"manifests":       manifests,
			"delivery_orders": deliveryOrders,
			"invoices":        invoices,
			"receivables":     receivables,
			"active_drivers":  activeDrivers,
			"active_vehicles": activeVehicles,
		},
	})
}

// GetTopDrivers lists drivers ranked by completed deliveries.
func (c *DashboardController) GetTopDrivers(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 10)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var drivers []models.Driver
	if err := c.DB.Where("is_active = ?", true).
		Order("total_deliveries desc").Limit(limit).Find(&drivers).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": drivers})
}
