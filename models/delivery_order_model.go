package models

import (
	"time"

	"gorm.io/gorm"
)

type DeliveryOrder struct {
	gorm.Model
	DoNo       string     `json:"do_no" gorm:"unique"`
	SourceType SourceType `json:"source_type" gorm:"type:varchar(5)"`
	SourceNo   string     `json:"source_no" gorm:"index"`

	// Set when one LTL job order riding inside a multi-order manifest is
	// being dispatched on its own.
	SelectedJobOrderID *uint `json:"selected_job_order_id"`

	CustomerID   uint                `json:"customer_id"`
	Status       DeliveryOrderStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	DoDate       *time.Time          `json:"do_date"`
	DepartureAt  *time.Time          `json:"departure_at"`
	Eta          *time.Time          `json:"eta"`
	DeliveredAt  *time.Time          `json:"delivered_at"`
	CompletedAt  *time.Time          `json:"completed_at"`
	GoodsSummary string              `json:"goods_summary"`
	Priority     string              `json:"priority" gorm:"default:'normal'"`
	Temperature  string              `json:"temperature"`
	CancelReason string              `json:"cancel_reason"`
	Remarks      string              `json:"remarks"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int

	Customer         Customer  `json:"customer" gorm:"foreignKey:CustomerID;references:ID"`
	SelectedJobOrder *JobOrder `json:"selected_job_order" gorm:"foreignKey:SelectedJobOrderID;references:ID"`
}

// ProofOfDelivery is written by the POD upload endpoint. Its existence is
// what allows a delivery order to move from delivered to completed.
type ProofOfDelivery struct {
	gorm.Model
	DeliveryOrderID uint      `json:"delivery_order_id" gorm:"index"`
	FileName        string    `json:"file_name"`
	ReceivedBy      string    `json:"received_by"`
	ReceivedAt      time.Time `json:"received_at"`
	Notes           string    `json:"notes"`
	CreatedBy       int
}

// TrackingPoint rows come from the GPS ingester and are read-only here,
// served out for the live-tracking display.
type TrackingPoint struct {
	ID              int64     `json:"ID" gorm:"primaryKey"`
	DeliveryOrderID uint      `json:"delivery_order_id" gorm:"index"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	SpeedKph        float64   `json:"speed_kph"`
	RecordedAt      time.Time `json:"recorded_at"`
}
