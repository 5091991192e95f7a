package models

import (
	"time"

	"gorm.io/gorm"
)

type JobOrder struct {
	gorm.Model
	OrderNo         string         `json:"order_no" gorm:"unique"`
	CustomerID      uint           `json:"customer_id"`
	OrderType       OrderType      `json:"order_type" gorm:"type:varchar(10)"`
	PickupCity      string         `json:"pickup_city"`
	PickupAddress   string         `json:"pickup_address"`
	DeliveryCity    string         `json:"delivery_city"`
	DeliveryAddress string         `json:"delivery_address"`
	GoodsDesc       string         `json:"goods_desc"`
	GoodsQty        int            `json:"goods_qty"`
	GoodsWeight     float64        `json:"goods_weight"`
	GoodsVolume     float64        `json:"goods_volume"`
	OrderValue      float64        `json:"order_value"`
	PickupDate      *time.Time     `json:"pickup_date"`
	DeliveryDate    *time.Time     `json:"delivery_date"`
	Status          JobOrderStatus `json:"status" gorm:"type:varchar(20);default:'created'"`
	CancelReason    string         `json:"cancel_reason"`
	CancelledAt     *time.Time     `json:"cancelled_at"`
	Remarks         string         `json:"remarks"`
	CreatedBy       int
	UpdatedBy       int
	DeletedBy       int

	Customer    Customer     `json:"customer" gorm:"foreignKey:CustomerID;references:ID"`
	Assignments []Assignment `json:"assignments" gorm:"foreignKey:JobOrderID;references:ID;constraint:OnDelete:CASCADE"`
}

type Assignment struct {
	gorm.Model
	JobOrderID uint             `json:"job_order_id"`
	DriverID   uint             `json:"driver_id"`
	VehicleID  uint             `json:"vehicle_id"`
	Status     AssignmentStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	AssignedAt time.Time        `json:"assigned_at"`
	Notes      string           `json:"notes"`
	CreatedBy  int
	UpdatedBy  int

	Driver  Driver  `json:"driver" gorm:"foreignKey:DriverID;references:ID"`
	Vehicle Vehicle `json:"vehicle" gorm:"foreignKey:VehicleID;references:ID"`
}
