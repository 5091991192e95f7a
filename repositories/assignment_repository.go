package repositories

import (
	"errors"
	"fiber-tms/controllers/helpers"
	"fiber-tms/models"
	"fiber-tms/types"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	db           *gorm.DB
	availability *AvailabilityRepository
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{
		db:           db,
		availability: NewAvailabilityRepository(db),
	}
}

// CreateAssignment binds a driver and vehicle to a job order. The whole
// operation runs in one transaction with the driver and vehicle rows locked
// for its duration, so two concurrent requests cannot both pass the
// availability check and double-book the same resource.
//
// A prior active assignment for the job is superseded, not deleted: it is
// flipped to cancelled and stays in the history.
func (r *AssignmentRepository) CreateAssignment(jobID, driverID, vehicleID uint, notes string, actor int) (*models.Assignment, error) {
	var assignment models.Assignment

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var job models.JobOrder
		if err := tx.First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("job order %d not found", jobID)
			}
			return err
		}
		if job.Status.IsTerminal() {
			return types.InvalidState("job order %s is %s and can no longer be assigned", job.OrderNo, job.Status)
		}

		// Row locks on the contended resources keep the check-then-act
		// below atomic across concurrent assignment requests.
		var driver models.Driver
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&driver, driverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("driver %d not found", driverID)
			}
			return err
		}
		if !driver.IsActive {
			return types.ValidationFailed("driver %s is not active", driver.DriverName)
		}

		var vehicle models.Vehicle
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&vehicle, vehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("vehicle %d not found", vehicleID)
			}
			return err
		}
		if !vehicle.IsActive {
			return types.ValidationFailed("vehicle %s is not active", vehicle.PlateNumber)
		}

		if ref, err := r.availability.FirstDriverConflict(tx, driverID, jobID); err != nil {
			return err
		} else if ref != "" {
			return types.Conflict("driver %s is already committed to %s", driver.DriverName, ref)
		}

		if ref, err := r.availability.FirstVehicleConflict(tx, vehicleID, jobID); err != nil {
			return err
		} else if ref != "" {
			return types.Conflict("vehicle %s is already committed to %s", vehicle.PlateNumber, ref)
		}

		// Supersede any prior active assignment for this job.
		if err := tx.Model(&models.Assignment{}).
			Where("job_order_id = ? AND status = ?", jobID, models.AssignmentActive).
			Updates(map[string]interface{}{"status": models.AssignmentCancelled, "updated_by": actor}).Error; err != nil {
			return err
		}

		assignment = models.Assignment{
			JobOrderID: jobID,
			DriverID:   driverID,
			VehicleID:  vehicleID,
			Status:     models.AssignmentActive,
			AssignedAt: time.Now(),
			Notes:      notes,
			CreatedBy:  actor,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		// An order already assigned or past assignment keeps its status;
		// only a fresh order is promoted to assigned.
		if job.Status.PastAssignment() || job.Status == models.JobOrderAssigned {
			if err := helpers.AppendHistory(tx, job.OrderNo, "assignment",
				"", string(models.AssignmentActive),
				"assignment", "Driver and vehicle reassigned", actor); err != nil {
				return err
			}
		} else {
			if err := tx.Model(&job).Updates(map[string]interface{}{
				"status":     models.JobOrderAssigned,
				"updated_by": actor,
			}).Error; err != nil {
				return err
			}
			if err := helpers.AppendHistory(tx, job.OrderNo, "job_order",
				string(models.JobOrderCreated), string(models.JobOrderAssigned),
				"assignment", "Driver and vehicle assigned", actor); err != nil {
				return err
			}
		}

		return tx.Preload("Driver").Preload("Vehicle").First(&assignment, assignment.ID).Error
	})

	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CancelAssignment marks one assignment cancelled without touching the job
// order status.
func (r *AssignmentRepository) CancelAssignment(assignmentID uint, actor int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var assignment models.Assignment
		if err := tx.First(&assignment, assignmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("assignment %d not found", assignmentID)
			}
			return err
		}
		if assignment.Status == models.AssignmentCancelled {
			return types.InvalidState("assignment %d is already cancelled", assignmentID)
		}

		oldStatus := assignment.Status
		if err := tx.Model(&assignment).Updates(map[string]interface{}{
			"status":     models.AssignmentCancelled,
			"updated_by": actor,
		}).Error; err != nil {
			return err
		}

		var job models.JobOrder
		if err := tx.First(&job, assignment.JobOrderID).Error; err == nil {
			return helpers.AppendHistory(tx, job.OrderNo, "assignment",
				string(oldStatus), string(models.AssignmentCancelled),
				"assignment", "Assignment cancelled", actor)
		}
		return nil
	})
}

// GetByJobOrder lists a job order's assignment history, newest first.
func (r *AssignmentRepository) GetByJobOrder(jobID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Preload("Driver").Preload("Vehicle").
		Where("job_order_id = ?", jobID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}
