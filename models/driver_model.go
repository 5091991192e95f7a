package models

import "gorm.io/gorm"

type Driver struct {
	gorm.Model
	DriverCode      string `json:"driver_code" gorm:"unique"`
	DriverName      string `json:"driver_name"`
	LicenseNo       string `json:"license_no"`
	LicenseType     string `json:"license_type"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	IsActive        bool   `json:"is_active" gorm:"default:true"`
	TotalDeliveries int    `json:"total_deliveries" gorm:"default:0"`
	CreatedBy       int
	UpdatedBy       int
	DeletedBy       int
}
