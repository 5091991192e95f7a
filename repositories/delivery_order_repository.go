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

type DeliveryOrderRepository struct {
	db *gorm.DB
}

func NewDeliveryOrderRepository(db *gorm.DB) *DeliveryOrderRepository {
	return &DeliveryOrderRepository{db: db}
}

// SourceFacts are the shipment facts copied from the source record onto the
// dispatch record at creation time. They have to be fully resolvable or the
// creation fails.
type SourceFacts struct {
	CustomerID   uint
	GoodsSummary string
}

func resolveJobOrderSource(job *models.JobOrder) (SourceFacts, error) {
	if job.Status == models.JobOrderCancelled {
		return SourceFacts{}, types.InvalidState("job order %s is cancelled", job.OrderNo)
	}
	if job.CustomerID == 0 || job.GoodsDesc == "" {
		return SourceFacts{}, types.ValidationFailed("job order %s has no customer or goods description", job.OrderNo)
	}
	return SourceFacts{CustomerID: job.CustomerID, GoodsSummary: job.GoodsDesc}, nil
}

// resolveManifestSource derives the facts for a manifest-sourced dispatch.
// With a selected job order (one LTL order riding the shared truck) the
// facts come from that order. Without one, the manifest must have a single
// customer across its active members, otherwise the caller has to pick.
func resolveManifestSource(manifest *models.Manifest, members []models.JobOrder, selected *models.JobOrder) (SourceFacts, error) {
	if manifest.Status == models.ManifestCancelled {
		return SourceFacts{}, types.InvalidState("manifest %s is cancelled", manifest.ManifestNo)
	}
	if len(members) == 0 {
		return SourceFacts{}, types.ValidationFailed("manifest %s has no active job orders", manifest.ManifestNo)
	}

	if selected != nil {
		if selected.OrderType != models.OrderTypeLTL {
			return SourceFacts{}, types.ValidationFailed("selected job order %s is not LTL", selected.OrderNo)
		}
		found := false
		for _, m := range members {
			if m.ID == selected.ID {
				found = true
				break
			}
		}
		if !found {
			return SourceFacts{}, types.ValidationFailed("job order %s is not an active member of manifest %s", selected.OrderNo, manifest.ManifestNo)
		}
		return SourceFacts{CustomerID: selected.CustomerID, GoodsSummary: selected.GoodsDesc}, nil
	}

	customerID := members[0].CustomerID
	for _, m := range members[1:] {
		if m.CustomerID != customerID {
			return SourceFacts{}, types.ValidationFailed("manifest %s carries multiple customers, a selected job order is required", manifest.ManifestNo)
		}
	}
	return SourceFacts{CustomerID: customerID, GoodsSummary: manifest.ActiveCargoSummary}, nil
}

// activeManifestJobOrders loads the non-cancelled member job orders.
func activeManifestJobOrders(tx *gorm.DB, manifestID uint) ([]models.JobOrder, error) {
	var jobs []models.JobOrder
	err := tx.
		Joins("INNER JOIN manifest_job_orders ON manifest_job_orders.job_order_id = job_orders.id").
		Where("manifest_job_orders.manifest_id = ? AND manifest_job_orders.removed = ?", manifestID, false).
		Where("manifest_job_orders.deleted_at IS NULL").
		Where("job_orders.status <> ?", models.JobOrderCancelled).
		Find(&jobs).Error
	return jobs, err
}

// Create derives a dispatch record from a job order or a manifest.
func (r *DeliveryOrderRepository) Create(sourceType models.SourceType, sourceNo string, selectedJobOrderID *uint, priority, temperature, remarks string, eta *time.Time, actor int) (*models.DeliveryOrder, error) {
	if sourceType != models.SourceJobOrder && sourceType != models.SourceManifest {
		return nil, types.ValidationFailed("source type must be JO or MF, got %q", sourceType)
	}

	var created models.DeliveryOrder
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var facts SourceFacts

		switch sourceType {
		case models.SourceJobOrder:
			var job models.JobOrder
			err := tx.Where("order_no = ?", sourceNo).First(&job).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("job order %s not found", sourceNo)
			}
			if err != nil {
				return err
			}
			if facts, err = resolveJobOrderSource(&job); err != nil {
				return err
			}
			if selectedJobOrderID != nil && *selectedJobOrderID != job.ID {
				return types.ValidationFailed("selected job order only applies to manifest-sourced delivery orders")
			}

		case models.SourceManifest:
			var manifest models.Manifest
			err := tx.Where("manifest_no = ?", sourceNo).First(&manifest).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("manifest %s not found", sourceNo)
			}
			if err != nil {
				return err
			}

			members, err := activeManifestJobOrders(tx, manifest.ID)
			if err != nil {
				return err
			}

			var selected *models.JobOrder
			if selectedJobOrderID != nil {
				var job models.JobOrder
				err := tx.First(&job, *selectedJobOrderID).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return types.NotFound("job order %d not found", *selectedJobOrderID)
				}
				if err != nil {
					return err
				}
				selected = &job
			}

			if facts, err = resolveManifestSource(&manifest, members, selected); err != nil {
				return err
			}
		}

		doNo, err := idgen.GenerateDocNo(tx, idgen.PrefixDeliveryOrder, "delivery_orders", "do_no")
		if err != nil {
			return err
		}

		now := time.Now()
		created = models.DeliveryOrder{
			DoNo:               doNo,
			SourceType:         sourceType,
			SourceNo:           sourceNo,
			SelectedJobOrderID: selectedJobOrderID,
			CustomerID:         facts.CustomerID,
			Status:             models.DeliveryOrderPending,
			DoDate:             &now,
			Eta:                eta,
			GoodsSummary:       facts.GoodsSummary,
			Priority:           priority,
			Temperature:        temperature,
			Remarks:            remarks,
			CreatedBy:          actor,
		}
		if created.Priority == "" {
			created.Priority = "normal"
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		return helpers.AppendHistory(tx, doNo, "delivery_order",
			"", string(models.DeliveryOrderPending), "delivery_order", "Delivery order created from "+sourceNo, actor)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// HasPOD reports whether at least one proof of delivery exists.
func (r *DeliveryOrderRepository) HasPOD(doID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProofOfDelivery{}).Where("delivery_order_id = ?", doID).Count(&count).Error
	return count > 0, err
}

// UpdateStatus advances the dispatch record, stamping the matching dates.
// Delivered can only move on to completed once a POD has been uploaded.
func (r *DeliveryOrderRepository) UpdateStatus(doID uint, next models.DeliveryOrderStatus, actor int) error {
	if !next.IsValid() {
		return types.ValidationFailed("unknown delivery order status %q", next)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var do models.DeliveryOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&do, doID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("delivery order %d not found", doID)
			}
			return err
		}
		if do.Status == next {
			return nil
		}
		if !do.Status.NextAllowed(next) {
			return types.InvalidState("delivery order %s cannot move from %s to %s", do.DoNo, do.Status, next)
		}

		if next == models.DeliveryOrderCompleted {
			var count int64
			if err := tx.Model(&models.ProofOfDelivery{}).Where("delivery_order_id = ?", doID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return types.InvalidState("delivery order %s has no proof of delivery yet", do.DoNo)
			}
		}

		now := time.Now()
		oldStatus := do.Status
		updates := map[string]interface{}{"status": next, "updated_by": actor}
		switch next {
		case models.DeliveryOrderInTransit:
			updates["departure_at"] = now
		case models.DeliveryOrderDelivered:
			updates["delivered_at"] = now
		case models.DeliveryOrderCompleted:
			updates["completed_at"] = now
		}

		if err := tx.Model(&do).Updates(updates).Error; err != nil {
			return err
		}
		return helpers.AppendHistory(tx, do.DoNo, "delivery_order",
			string(oldStatus), string(next), "delivery_order", "Status updated", actor)
	})
}

// AddPOD stores a proof-of-delivery record for a delivered order.
func (r *DeliveryOrderRepository) AddPOD(doID uint, fileName, receivedBy, notes string, actor int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var do models.DeliveryOrder
		if err := tx.First(&do, doID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("delivery order %d not found", doID)
			}
			return err
		}
		if do.Status != models.DeliveryOrderDelivered && do.Status != models.DeliveryOrderCompleted {
			return types.InvalidState("delivery order %s is %s, POD can only be added after delivery", do.DoNo, do.Status)
		}

		pod := models.ProofOfDelivery{
			DeliveryOrderID: doID,
			FileName:        fileName,
			ReceivedBy:      receivedBy,
			ReceivedAt:      time.Now(),
			Notes:           notes,
			CreatedBy:       actor,
		}
		return tx.Create(&pod).Error
	})
}

// Delete refuses once the truck has left.
func (r *DeliveryOrderRepository) Delete(doID uint, actor int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var do models.DeliveryOrder
		if err := tx.First(&do, doID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("delivery order %d not found", doID)
			}
			return err
		}
		if !do.Status.CanDelete() {
			return types.InvalidState("delivery order %s is %s and cannot be deleted", do.DoNo, do.Status)
		}

		if err := tx.Model(&do).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&do).Error
	})
}

func (r *DeliveryOrderRepository) GetByID(doID uint) (*models.DeliveryOrder, error) {
	var do models.DeliveryOrder
	err := r.db.Preload("Customer").Preload("SelectedJobOrder").First(&do, doID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("delivery order %d not found", doID)
	}
	if err != nil {
		return nil, err
	}
	return &do, nil
}

// GetTracking serves the GPS breadcrumbs for the live-tracking display.
// The points are written by the ingestion collaborator, never by us.
func (r *DeliveryOrderRepository) GetTracking(doID uint, limit int) ([]models.TrackingPoint, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var points []models.TrackingPoint
	err := r.db.Where("delivery_order_id = ?", doID).
		Order("recorded_at DESC").Limit(limit).
		Find(&points).Error
	return points, err
}
