package models

import "gorm.io/gorm"

type VehicleType struct {
	gorm.Model
	TypeName      string  `json:"type_name" gorm:"unique"`
	Description   string  `json:"description"`
	CapacityMaxKg float64 `json:"capacity_max_kg"`
	CapacityM3    float64 `json:"capacity_m3"`
	CreatedBy     int
	UpdatedBy     int
	DeletedBy     int
}

type Vehicle struct {
	gorm.Model
	PlateNumber   string `json:"plate_number" gorm:"unique"`
	VehicleTypeID uint   `json:"vehicle_type_id"`
	Brand         string `json:"brand"`
	ModelName     string `json:"model_name"`
	Year          int    `json:"year"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`
	CreatedBy     int
	UpdatedBy     int
	DeletedBy     int

	VehicleType VehicleType `json:"vehicle_type" gorm:"foreignKey:VehicleTypeID;references:ID"`
}
