package models

import (
	"fiber-tms/controllers/idgen"
	"time"

	"gorm.io/gorm"
)

// StatusHistory is the append-only audit trail. Every status transition
// writes one row; the detail endpoints read them back per document.
type StatusHistory struct {
	ID         int64  `json:"ID" gorm:"primaryKey"`
	RefNo      string `json:"ref_no" gorm:"index"`
	EntityType string `json:"entity_type"`
	OldStatus  string `json:"old_status"`
	NewStatus  string `json:"new_status"`
	Trigger    string `json:"trigger"`
	Notes      string `json:"notes"`
	CreatedAt  time.Time
	CreatedBy  int
}

func (h *StatusHistory) BeforeCreate(tx *gorm.DB) (err error) {
	h.ID = idgen.GenerateID()
	return
}
