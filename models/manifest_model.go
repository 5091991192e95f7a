package models

import (
	"time"

	"gorm.io/gorm"
)

type Manifest struct {
	gorm.Model
	ManifestNo      string         `json:"manifest_no" gorm:"unique"`
	OriginCity      string         `json:"origin_city"`
	DestinationCity string         `json:"destination_city"`
	DriverID        *uint          `json:"driver_id"`
	VehicleID       *uint          `json:"vehicle_id"`
	DepartureDate   *time.Time     `json:"departure_date"`
	ArrivalDate     *time.Time     `json:"arrival_date"`
	Status          ManifestStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`

	// Derived aggregates, recomputed on every membership or member-status
	// change. CargoWeight/CargoSummary cover every linked job order for
	// audit; the Active pair only counts non-cancelled members.
	CargoWeight        float64 `json:"cargo_weight"`
	CargoSummary       string  `json:"cargo_summary"`
	ActiveCargoWeight  float64 `json:"active_cargo_weight"`
	ActiveCargoSummary string  `json:"active_cargo_summary"`

	Remarks   string `json:"remarks"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int

	Driver   *Driver           `json:"driver" gorm:"foreignKey:DriverID;references:ID"`
	Vehicle  *Vehicle          `json:"vehicle" gorm:"foreignKey:VehicleID;references:ID"`
	JobLinks []ManifestJobOrder `json:"job_links" gorm:"foreignKey:ManifestID;references:ID"`
}

// ManifestJobOrder links a job order onto a manifest. Rows are append-only:
// an operator removal sets Removed instead of deleting, and a cancelled job
// order stays linked so the audit aggregates keep seeing it.
type ManifestJobOrder struct {
	gorm.Model
	ManifestID uint       `json:"manifest_id" gorm:"index"`
	JobOrderID uint       `json:"job_order_id" gorm:"index"`
	AddedAt    time.Time  `json:"added_at"`
	Removed    bool       `json:"removed" gorm:"default:false"`
	RemovedAt  *time.Time `json:"removed_at"`
	CreatedBy  int
	UpdatedBy  int

	JobOrder JobOrder `json:"job_order" gorm:"foreignKey:JobOrderID;references:ID"`
}
