package helpers

import (
	"fiber-tms/models"
	"time"

	"gorm.io/gorm"
)

// AppendHistory writes one audit row for an entity status transition. It is
// called inside the same transaction as the transition so the history order
// always matches the order the transitions committed in.
func AppendHistory(db *gorm.DB, refNo, entityType, oldStatus, newStatus, trigger, notes string, actor int) error {
	history := models.StatusHistory{
		RefNo:      refNo,
		EntityType: entityType,
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		Trigger:    trigger,
		Notes:      notes,
		CreatedAt:  time.Now(),
		CreatedBy:  actor,
	}

	if err := db.Create(&history).Error; err != nil {
		return err
	}

	return nil
}
