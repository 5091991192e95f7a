package database

import (
	"fiber-tms/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Driver{},
		&models.VehicleType{},
		&models.Vehicle{},
		&models.JobOrder{},
		&models.Assignment{},
		&models.Manifest{},
		&models.ManifestJobOrder{},
		&models.DeliveryOrder{},
		&models.ProofOfDelivery{},
		&models.TrackingPoint{},
		&models.Invoice{},
		&models.Payment{},
		&models.StatusHistory{},
	)
}
