package database

import (
	"errors"
	"fiber-tms/models"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
	SeedVehicleTypes(db)
}

func SeedUserMaster(db *gorm.DB) {
	var existing models.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Seed user check failed: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash seed password: %v", err)
		return
	}

	admin := models.User{
		Username: "admin",
		Name:     "Administrator",
		Email:    "admin@localhost",
		Password: string(hashed),
		Role:     "admin",
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
	}
}

func SeedVehicleTypes(db *gorm.DB) {
	types := []models.VehicleType{
		{TypeName: "CDE", Description: "Colt Diesel Engkel", CapacityMaxKg: 2500, CapacityM3: 10},
		{TypeName: "CDD", Description: "Colt Diesel Double", CapacityMaxKg: 5000, CapacityM3: 16},
		{TypeName: "Fuso", Description: "Medium truck", CapacityMaxKg: 8000, CapacityM3: 26},
		{TypeName: "Tronton", Description: "Heavy truck", CapacityMaxKg: 18000, CapacityM3: 40},
		{TypeName: "Trailer", Description: "Trailer 40ft", CapacityMaxKg: 30000, CapacityM3: 60},
	}

	for _, vt := range types {
		var existing models.VehicleType
		err := db.Where("type_name = ?", vt.TypeName).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&vt).Error; err != nil {
				log.Printf("Failed to seed vehicle type %s: %v", vt.TypeName, err)
			}
		}
	}
}
