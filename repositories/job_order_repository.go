package repositories

import (
	"errors"
	"fiber-tms/controllers/helpers"
	"fiber-tms/controllers/idgen"
	"fiber-tms/models"
	"fiber-tms/types"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobOrderRepository struct {
	db *gorm.DB
}

func NewJobOrderRepository(db *gorm.DB) *JobOrderRepository {
	return &JobOrderRepository{db: db}
}

// JobOrderCompleted is the domain event emitted when an order reaches
// completed. Lifetime statistics hang off this event instead of being
// buried inside the status transition itself.
type JobOrderCompleted struct {
	JobOrderID uint
	OrderNo    string
	DriverID   uint
}

func applyJobOrderCompleted(tx *gorm.DB, ev JobOrderCompleted) error {
	if ev.DriverID == 0 {
		return nil
	}
	return tx.Model(&models.Driver{}).Where("id = ?", ev.DriverID).
		Update("total_deliveries", gorm.Expr("total_deliveries + ?", 1)).Error
}

func validateJobOrder(orderType models.OrderType, goodsWeight, goodsVolume float64) error {
	if !orderType.IsValid() {
		return types.ValidationFailed("order type must be FTL or LTL, got %q", orderType)
	}
	if goodsWeight <= 0 {
		return types.ValidationFailed("goods weight must be positive")
	}
	if orderType == models.OrderTypeLTL && goodsVolume <= 0 {
		return types.ValidationFailed("goods volume is required for LTL orders")
	}
	return nil
}

func (r *JobOrderRepository) Create(job *models.JobOrder, actor int) error {
	if err := validateJobOrder(job.OrderType, job.GoodsWeight, job.GoodsVolume); err != nil {
		return err
	}

	var customer models.Customer
	if err := r.db.First(&customer, job.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFound("customer %d not found", job.CustomerID)
		}
		return err
	}

	job.Status = models.JobOrderCreated
	job.CreatedBy = actor

	return r.db.Transaction(func(tx *gorm.DB) error {
		orderNo, err := idgen.GenerateDocNo(tx, idgen.PrefixJobOrder, "job_orders", "order_no")
		if err != nil {
			return err
		}
		job.OrderNo = orderNo

		if err := tx.Create(job).Error; err != nil {
			return err
		}
		return helpers.AppendHistory(tx, job.OrderNo, "job_order",
			"", string(models.JobOrderCreated), "job_order", "Order created", actor)
	})
}

// Update edits operator-facing fields without touching the status. The
// history records the edit so status lines and field edits interleave in
// the order they happened.
func (r *JobOrderRepository) Update(jobID uint, updates map[string]interface{}, actor int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var job models.JobOrder
		if err := tx.First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("job order %d not found", jobID)
			}
			return err
		}
		if job.Status.IsTerminal() {
			return types.InvalidState("job order %s is %s and can no longer be edited", job.OrderNo, job.Status)
		}

		if orderType, ok := updates["order_type"]; ok {
			weight := job.GoodsWeight
			if w, ok := updates["goods_weight"].(float64); ok {
				weight = w
			}
			volume := job.GoodsVolume
			if v, ok := updates["goods_volume"].(float64); ok {
				volume = v
			}
			if err := validateJobOrder(models.OrderType(orderType.(string)), weight, volume); err != nil {
				return err
			}
		}

		delete(updates, "status")
		delete(updates, "order_no")
		updates["updated_by"] = actor

		if err := tx.Model(&job).Updates(updates).Error; err != nil {
			return err
		}
		return helpers.AppendHistory(tx, job.OrderNo, "job_order",
			string(job.Status), string(job.Status), "job_order", "Order updated", actor)
	})
}

// UpdateStatus performs an explicit admin status move. Cancellation goes
// through Cancel so the cascade always runs.
func (r *JobOrderRepository) UpdateStatus(jobID uint, next models.JobOrderStatus, actor int) error {
	if !next.IsValid() {
		return types.ValidationFailed("unknown status %q", next)
	}
	if next == models.JobOrderCancelled {
		return types.ValidationFailed("use the cancel endpoint to cancel a job order")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var job models.JobOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("job order %d not found", jobID)
			}
			return err
		}
		if job.Status == next {
			return nil
		}
		if job.Status.IsTerminal() {
			return types.InvalidState("job order %s is already %s", job.OrderNo, job.Status)
		}

		oldStatus := job.Status
		if err := tx.Model(&job).Updates(map[string]interface{}{
			"status": next, "updated_by": actor,
		}).Error; err != nil {
			return err
		}
		if err := helpers.AppendHistory(tx, job.OrderNo, "job_order",
			string(oldStatus), string(next), "job_order", "Status updated", actor); err != nil {
			return err
		}

		if next == models.JobOrderCompleted {
			var assignment models.Assignment
			err := tx.Where("job_order_id = ? AND status = ?", jobID, models.AssignmentActive).
				First(&assignment).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return applyJobOrderCompleted(tx, JobOrderCompleted{
				JobOrderID: jobID,
				OrderNo:    job.OrderNo,
				DriverID:   assignment.DriverID,
			})
		}
		return nil
	})
}

// Cancel runs the cancellation cascade. All four steps commit or none do:
// the job order itself, its delivery orders, the carrying manifests'
// aggregates and possibly their own cancellation, and the job's active
// assignments.
func (r *JobOrderRepository) Cancel(jobID uint, reason string, actor int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var job models.JobOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("job order %d not found", jobID)
			}
			return err
		}
		if job.Status == models.JobOrderCancelled {
			return types.InvalidState("job order %s is already cancelled", job.OrderNo)
		}
		if job.Status == models.JobOrderCompleted {
			return types.InvalidState("job order %s is already completed", job.OrderNo)
		}

		// A job already moving on a truck cannot be cancelled; the return
		// flow on the delivery order handles that case.
		var carrying []models.ManifestJobOrder
		if err := tx.Where("job_order_id = ? AND removed = ?", jobID, false).Find(&carrying).Error; err != nil {
			return err
		}
		for _, link := range carrying {
			var manifest models.Manifest
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&manifest, link.ManifestID).Error; err != nil {
				return err
			}
			if manifest.Status == models.ManifestInTransit {
				return types.Conflict("manifest %s is in transit, use the return flow instead", manifest.ManifestNo)
			}
		}

		// Step 1: cancel the job order itself.
		now := time.Now()
		oldStatus := job.Status
		if err := tx.Model(&job).Updates(map[string]interface{}{
			"status":        models.JobOrderCancelled,
			"cancel_reason": reason,
			"cancelled_at":  now,
			"updated_by":    actor,
		}).Error; err != nil {
			return err
		}
		if err := helpers.AppendHistory(tx, job.OrderNo, "job_order",
			string(oldStatus), string(models.JobOrderCancelled), "cancel", reason, actor); err != nil {
			return err
		}

		// Step 2: cancel delivery orders dispatched for this job, either
		// directly or as the selected order inside a manifest. Delivery
		// orders for other jobs on a shared manifest stay untouched.
		var deliveryOrders []models.DeliveryOrder
		if err := tx.Where("status <> ?", models.DeliveryOrderCancelled).
			Where(tx.Where("source_type = ? AND source_no = ?", models.SourceJobOrder, job.OrderNo).
				Or("selected_job_order_id = ?", jobID)).
			Find(&deliveryOrders).Error; err != nil {
			return err
		}
		for _, do := range deliveryOrders {
			doOldStatus := do.Status
			if err := tx.Model(&do).Updates(map[string]interface{}{
				"status":        models.DeliveryOrderCancelled,
				"cancel_reason": "Job order " + job.OrderNo + " cancelled",
				"updated_by":    actor,
			}).Error; err != nil {
				return err
			}
			if err := helpers.AppendHistory(tx, do.DoNo, "delivery_order",
				string(doOldStatus), string(models.DeliveryOrderCancelled), "cascade",
				"Job order "+job.OrderNo+" cancelled", actor); err != nil {
				return err
			}
		}

		// Step 3: refresh every carrying manifest. Membership stays on
		// file; a manifest left with no active member is cancelled and its
		// resources released.
		for _, link := range carrying {
			if err := recomputeAggregates(tx, link.ManifestID, actor); err != nil {
				return err
			}

			members, err := linkedMembers(tx, link.ManifestID)
			if err != nil {
				return err
			}
			var manifest models.Manifest
			if err := tx.First(&manifest, link.ManifestID).Error; err != nil {
				return err
			}

			plan := planManifestCascade(members, manifest.Status, actor)
			if !plan.Cancel {
				continue
			}
			manifestOldStatus := manifest.Status
			if err := tx.Model(&manifest).Updates(plan.Updates).Error; err != nil {
				return err
			}
			if err := helpers.AppendHistory(tx, manifest.ManifestNo, "manifest",
				string(manifestOldStatus), string(models.ManifestCancelled), "cascade",
				"No active job orders left", actor); err != nil {
				return err
			}
		}

		// Step 4: cancel the job's active assignments. Other jobs'
		// assignments are untouched, and a job that never had an active
		// assignment gets no history row here.
		res := tx.Model(&models.Assignment{}).
			Where("job_order_id = ? AND status = ?", jobID, models.AssignmentActive).
			Updates(map[string]interface{}{"status": models.AssignmentCancelled, "updated_by": actor})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return helpers.AppendHistory(tx, job.OrderNo, "assignment",
			string(models.AssignmentActive), string(models.AssignmentCancelled), "cascade",
			"Job order cancelled", actor)
	})
}

// Delete hard-removes an order that never progressed; its assignments go
// with it via the FK cascade.
func (r *JobOrderRepository) Delete(jobID uint, actor int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var job models.JobOrder
		if err := tx.First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("job order %d not found", jobID)
			}
			return err
		}
		if job.Status != models.JobOrderCreated && job.Status != models.JobOrderCancelled {
			return types.InvalidState("job order %s is %s and cannot be deleted", job.OrderNo, job.Status)
		}

		if err := tx.Model(&job).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})
}

func (r *JobOrderRepository) GetByID(jobID uint) (*models.JobOrder, error) {
	var job models.JobOrder
	err := r.db.Preload("Customer").Preload("Assignments").
		Preload("Assignments.Driver").Preload("Assignments.Vehicle").
		First(&job, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("job order %d not found", jobID)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobOrderRepository) GetByOrderNo(orderNo string) (*models.JobOrder, error) {
	var job models.JobOrder
	err := r.db.Preload("Customer").Where("order_no = ?", orderNo).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("job order %s not found", orderNo)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}
