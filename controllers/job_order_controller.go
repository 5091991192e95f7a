package controllers

import (
	"fiber-tms/models"
	"fiber-tms/repositories"
	"fiber-tms/types"
	"fmt"
	"time"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type JobOrderController struct {
	DB   *gorm.DB
	repo *repositories.JobOrderRepository
}

type JobOrderRequest struct {
	CustomerID      uint    `json:"customer_id" validate:"required"`
	OrderType       string  `json:"order_type" validate:"required,oneof=FTL LTL"`
	PickupCity      string  `json:"pickup_city" validate:"required"`
	PickupAddress   string  `json:"pickup_address"`
	DeliveryCity    string  `json:"delivery_city" validate:"required"`
	DeliveryAddress string  `json:"delivery_address"`
	GoodsDesc       string  `json:"goods_desc" validate:"required"`
	GoodsQty        int     `json:"goods_qty" validate:"gt=0"`
	GoodsWeight     float64 `json:"goods_weight" validate:"gt=0"`
	GoodsVolume     float64 `json:"goods_volume" validate:"gte=0"`
	OrderValue      float64 `json:"order_value" validate:"gte=0"`
	PickupDate      string  `json:"pickup_date"`
	DeliveryDate    string  `json:"delivery_date"`
	Remarks         string  `json:"remarks"`
}

type JobOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

func NewJobOrderController(db *gorm.DB) *JobOrderController {
	return &JobOrderController{DB: db, repo: repositories.NewJobOrderRepository(db)}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func (c *JobOrderController) GetAllJobOrders(ctx *fiber.Ctx) error {
	var jobs []models.JobOrder
	query := c.DB.Preload("Customer").Order("id desc")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := ctx.QueryInt("customer_id", 0); customerID > 0 {
		query = query.Where("customer_id = ?", customerID)
	}
	if from := ctx.Query("date_from"); from != "" {
		query = query.Where("created_at >= ?", from)
	}
	if to := ctx.Query("date_to"); to != "" {
		query = query.Where("created_at < ?", to)
	}

	if err := query.Find(&jobs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Job orders found", "data": jobs})
}

func (c *JobOrderController) GetJobOrderByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	job, err := c.repo.GetByID(uint(id))
	if err != nil {
		return types.WriteError(ctx, err)
	}

	var history []models.StatusHistory
	c.DB.Where("ref_no = ?", job.OrderNo).Order("created_at asc").Find(&history)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Job order found",
		"data":    fiber.Map{"job_order": job, "history": history},
	})
}

func (c *JobOrderController) CreateJobOrder(ctx *fiber.Ctx) error {
	var input JobOrderRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	job := models.JobOrder{
		CustomerID:      input.CustomerID,
		OrderType:       models.OrderType(input.OrderType),
		PickupCity:      input.PickupCity,
		PickupAddress:   input.PickupAddress,
		DeliveryCity:    input.DeliveryCity,
		DeliveryAddress: input.DeliveryAddress,
		GoodsDesc:       input.GoodsDesc,
		GoodsQty:        input.GoodsQty,
		GoodsWeight:     input.GoodsWeight,
		GoodsVolume:     input.GoodsVolume,
		OrderValue:      input.OrderValue,
		PickupDate:      parseDate(input.PickupDate),
		DeliveryDate:    parseDate(input.DeliveryDate),
		Remarks:         input.Remarks,
	}

	if err := c.repo.Create(&job, actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Job order created", "data": job})
}

func (c *JobOrderController) UpdateJobOrder(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var updates map[string]interface{}
	if err := ctx.BodyParser(&updates); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.repo.Update(uint(id), updates, actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	job, err := c.repo.GetByID(uint(id))
	if err != nil {
		return types.WriteError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Job order updated", "data": job})
}

func (c *JobOrderController) UpdateJobOrderStatus(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input JobOrderStatusRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.repo.UpdateStatus(uint(id), models.JobOrderStatus(input.Status), actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Status updated"})
}

func (c *JobOrderController) CancelJobOrder(ctx *fiber.Ctx) error {
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

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Job order cancelled"})
}

func (c *JobOrderController) DeleteJobOrder(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := c.repo.Delete(uint(id), actorID(ctx)); err != nil {
		return types.WriteError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Job order deleted"})
}

// ExportJobOrders streams the filtered order list as an Excel workbook.
func (c *JobOrderController) ExportJobOrders(ctx *fiber.Ctx) error {
	var jobs []models.JobOrder
	query := c.DB.Preload("Customer").Order("id desc")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&jobs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Job Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order No", "Customer", "Type", "Pickup", "Delivery", "Goods", "Qty", "Weight (kg)", "Volume (m3)", "Order Value", "Status", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, job := range jobs {
		values := []interface{}{
			job.OrderNo,
			job.Customer.CustomerName,
			string(job.OrderType),
			job.PickupCity,
			job.DeliveryCity,
			job.GoodsDesc,
			job.GoodsQty,
			job.GoodsWeight,
			job.GoodsVolume,
			job.OrderValue,
			string(job.Status),
			job.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	filename := fmt.Sprintf("job_orders_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Send(buf.Bytes())
}
