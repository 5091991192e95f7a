package controllers

import (
	"errors"
	"fiber-tms/models"
	"fiber-tms/repositories"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DriverController struct {
	DB           *gorm.DB
	availability *repositories.AvailabilityRepository
}

type DriverRequest struct {
	DriverCode  string `json:"driver_code" validate:"required,min=3"`
	DriverName  string `json:"driver_name" validate:"required,min=3"`
	LicenseNo   string `json:"license_no" validate:"required"`
	LicenseType string `json:"license_type"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address"`
	IsActive    *bool  `json:"is_active"`
}

func NewDriverController(db *gorm.DB) *DriverController {
	return &DriverController{DB: db, availability: repositories.NewAvailabilityRepository(db)}
}

func (c *DriverController) GetAllDrivers(ctx *fiber.Ctx) error {
	var drivers []models.Driver
	query := c.DB
	if ctx.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&drivers).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// available=true narrows to drivers with no live commitment.
	if ctx.Query("available") == "true" {
		free := make([]models.Driver, 0, len(drivers))
		for _, d := range drivers {
			ok, err := c.availability.IsDriverFree(d.ID, 0)
			if err != nil {
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
			}
			if ok {
				free = append(free, d)
			}
		}
		drivers = free
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Drivers found", "data": drivers})
}

func (c *DriverController) GetDriverByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var driver models.Driver
	if err := c.DB.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Driver not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Driver found", "data": driver})
}

func (c *DriverController) CreateDriver(ctx *fiber.Ctx) error {
	var input DriverRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	driver := models.Driver{
		DriverCode:  strings.ToUpper(input.DriverCode),
		DriverName:  input.DriverName,
		LicenseNo:   input.LicenseNo,
		LicenseType: input.LicenseType,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		IsActive:    true,
		CreatedBy:   actorID(ctx),
	}

	if err := c.DB.Create(&driver).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Driver created", "data": driver})
}

func (c *DriverController) UpdateDriver(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var driver models.Driver
	if err := c.DB.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Driver not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input DriverRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	driver.DriverCode = strings.ToUpper(input.DriverCode)
	driver.DriverName = input.DriverName
	driver.LicenseNo = input.LicenseNo
	driver.LicenseType = input.LicenseType
	driver.Phone = input.Phone
	driver.Email = input.Email
	driver.Address = input.Address
	if input.IsActive != nil {
		driver.IsActive = *input.IsActive
	}
	driver.UpdatedBy = actorID(ctx)

	if err := c.DB.Save(&driver).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Driver updated", "data": driver})
}

func (c *DriverController) DeleteDriver(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var count int64
	if err := c.DB.Model(&models.Assignment{}).
		Where("driver_id = ? AND status = ?", id, models.AssignmentActive).
		Count(&count).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if count > 0 {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Driver has active assignments and cannot be deleted"})
	}

	if err := c.DB.Delete(&models.Driver{}, id).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Driver deleted"})
}
