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

type VehicleController struct {
	DB           *gorm.DB
	availability *repositories.AvailabilityRepository
}

type VehicleRequest struct {
	PlateNumber   string `json:"plate_number" validate:"required,min=4"`
	VehicleTypeID uint   `json:"vehicle_type_id" validate:"required"`
	Brand         string `json:"brand"`
	ModelName     string `json:"model_name"`
	Year          int    `json:"year"`
	IsActive      *bool  `json:"is_active"`
}

type VehicleTypeRequest struct {
	TypeName      string  `json:"type_name" validate:"required"`
	Description   string  `json:"description"`
	CapacityMaxKg float64 `json:"capacity_max_kg" validate:"gte=0"`
	CapacityM3    float64 `json:"capacity_m3" validate:"gte=0"`
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{DB: db, availability: repositories.NewAvailabilityRepository(db)}
}

func (c *VehicleController) GetAllVehicles(ctx *fiber.Ctx) error {
	var vehicles []models.Vehicle
	query := c.DB.Preload("VehicleType")
	if ctx.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	// min_weight filters to vehicle types whose rated capacity covers the
	// requested cargo weight. The capacity is advisory, dispatch may still
	// pick any vehicle.
	if minWeight := ctx.QueryFloat("min_weight", 0); minWeight > 0 {
		query = query.Joins("JOIN vehicle_types ON vehicle_types.id = vehicles.vehicle_type_id").
			Where("vehicle_types.capacity_max_kg >= ?", minWeight)
	}

	if err := query.Find(&vehicles).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// available=true narrows to vehicles with no live commitment.
	if ctx.Query("available") == "true" {
		free := make([]models.Vehicle, 0, len(vehicles))
		for _, v := range vehicles {
			ok, err := c.availability.IsVehicleFree(v.ID, 0)
			if err != nil {
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
			}
			if ok {
				free = append(free, v)
			}
		}
		vehicles = free
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vehicles found", "data": vehicles})
}

func (c *VehicleController) GetVehicleByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var vehicle models.Vehicle
	if err := c.DB.Preload("VehicleType").First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vehicle found", "data": vehicle})
}

func (c *VehicleController) CreateVehicle(ctx *fiber.Ctx) error {
	var input VehicleRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var vt models.VehicleType
	if err := c.DB.First(&vt, input.VehicleTypeID).Error; err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Vehicle type not found"})
	}

	vehicle := models.Vehicle{
		PlateNumber:   strings.ToUpper(strings.ReplaceAll(input.PlateNumber, " ", "")),
		VehicleTypeID: input.VehicleTypeID,
		Brand:         input.Brand,
		ModelName:     input.ModelName,
		Year:          input.Year,
		IsActive:      true,
		CreatedBy:     actorID(ctx),
	}

	if err := c.DB.Create(&vehicle).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Vehicle created", "data": vehicle})
}

func (c *VehicleController) UpdateVehicle(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var vehicle models.Vehicle
	if err := c.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input VehicleRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	vehicle.PlateNumber = strings.ToUpper(strings.ReplaceAll(input.PlateNumber, " ", ""))
	vehicle.VehicleTypeID = input.VehicleTypeID
	vehicle.Brand = input.Brand
	vehicle.ModelName = input.ModelName
	vehicle.Year = input.Year
	if input.IsActive != nil {
		vehicle.IsActive = *input.IsActive
	}
	vehicle.UpdatedBy = actorID(ctx)

	if err := c.DB.Save(&vehicle).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vehicle updated", "data": vehicle})
}

func (c *VehicleController) DeleteVehicle(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var count int64
	if err := c.DB.Model(&models.Assignment{}).
		Where("vehicle_id = ? AND status = ?", id, models.AssignmentActive).
		Count(&count).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if count > 0 {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Vehicle has active assignments and cannot be deleted"})
	}

	if err := c.DB.Delete(&models.Vehicle{}, id).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vehicle deleted"})
}

func (c *VehicleController) GetAllVehicleTypes(ctx *fiber.Ctx) error {
	var types []models.VehicleType
	if err := c.DB.Order("capacity_max_kg asc").Find(&types).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Vehicle types found", "data": types})
}

func (c *VehicleController) CreateVehicleType(ctx *fiber.Ctx) error {
	var input VehicleTypeRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	vt := models.VehicleType{
		TypeName:      input.TypeName,
		Description:   input.Description,
		CapacityMaxKg: input.CapacityMaxKg,
		CapacityM3:    input.CapacityM3,
		CreatedBy:     actorID(ctx),
	}

	if err := c.DB.Create(&vt).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Vehicle type created", "data": vt})
}
