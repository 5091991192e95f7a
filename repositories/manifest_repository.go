package repositories

import (
	"errors"
	"fiber-tms/controllers/helpers"
	"fiber-tms/controllers/idgen"
	"fiber-tms/models"
	"fiber-tms/types"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ManifestRepository struct {
	db           *gorm.DB
	availability *AvailabilityRepository
}

func NewManifestRepository(db *gorm.DB) *ManifestRepository {
	return &ManifestRepository{
		db:           db,
		availability: NewAvailabilityRepository(db),
	}
}

// MemberCargo is one linked job order's cargo contribution, as fetched for
// the aggregate recomputation.
type MemberCargo struct {
	OrderNo     string                `json:"order_no"`
	GoodsDesc   string                `json:"goods_desc"`
	GoodsQty    int                   `json:"goods_qty"`
	GoodsWeight float64               `json:"goods_weight"`
	Status      models.JobOrderStatus `json:"status"`
}

// CargoAggregate is the derived weight plus human-readable summary.
type CargoAggregate struct {
	Weight  float64
	Summary string
}

// buildCargoAggregate folds member rows into one aggregate. Which members
// go in is the caller's choice: the audit aggregate gets every linked
// member, the active aggregate only non-cancelled ones.
func buildCargoAggregate(members []MemberCargo) CargoAggregate {
	if len(members) == 0 {
		return CargoAggregate{}
	}

	var weight float64
	parts := make([]string, 0, len(members))
	for _, m := range members {
		weight += m.GoodsWeight
		parts = append(parts, fmt.Sprintf("%s %s x%d (%.1f kg)", m.OrderNo, m.GoodsDesc, m.GoodsQty, m.GoodsWeight))
	}

	return CargoAggregate{
		Weight:  weight,
		Summary: fmt.Sprintf("%d order(s), %.1f kg: %s", len(members), weight, strings.Join(parts, "; ")),
	}
}

// activeMembers filters out cancelled job orders.
func activeMembers(members []MemberCargo) []MemberCargo {
	active := make([]MemberCargo, 0, len(members))
	for _, m := range members {
		if m.Status != models.JobOrderCancelled {
			active = append(active, m)
		}
	}
	return active
}

// manifestCascadePlan is what the cancellation cascade does to one
// carrying manifest: whether the manifest itself cancels, and the field
// updates to apply when it does.
type manifestCascadePlan struct {
	Cancel  bool
	Updates map[string]interface{}
}

// planManifestCascade decides the fate of a carrying manifest after one of
// its job orders is cancelled. A manifest with at least one active member
// left rides on unchanged; one with none is cancelled, its driver and
// vehicle released and its aggregates zeroed. An already cancelled
// manifest is left alone so the cascade can re-run safely.
func planManifestCascade(members []MemberCargo, status models.ManifestStatus, actor int) manifestCascadePlan {
	if status == models.ManifestCancelled || len(activeMembers(members)) > 0 {
		return manifestCascadePlan{}
	}
	return manifestCascadePlan{
		Cancel: true,
		Updates: map[string]interface{}{
			"status":               models.ManifestCancelled,
			"driver_id":            nil,
			"vehicle_id":           nil,
			"cargo_weight":         0,
			"cargo_summary":        "",
			"active_cargo_weight":  0,
			"active_cargo_summary": "",
			"updated_by":           actor,
		},
	}
}

// linkedMembers fetches the cargo rows of every non-removed membership.
func linkedMembers(tx *gorm.DB, manifestID uint) ([]MemberCargo, error) {
	var members []MemberCargo
	err := tx.Table("manifest_job_orders").
		Select("job_orders.order_no, job_orders.goods_desc, job_orders.goods_qty, job_orders.goods_weight, job_orders.status").
		Joins("INNER JOIN job_orders ON job_orders.id = manifest_job_orders.job_order_id").
		Where("manifest_job_orders.manifest_id = ?", manifestID).
		Where("manifest_job_orders.removed = ?", false).
		Where("manifest_job_orders.deleted_at IS NULL AND job_orders.deleted_at IS NULL").
		Scan(&members).Error
	return members, err
}

// recomputeAggregates refreshes both derived aggregate pairs on the
// manifest row. Safe to re-run; the result only depends on current members.
func recomputeAggregates(tx *gorm.DB, manifestID uint, actor int) error {
	members, err := linkedMembers(tx, manifestID)
	if err != nil {
		return err
	}

	all := buildCargoAggregate(members)
	active := buildCargoAggregate(activeMembers(members))

	return tx.Model(&models.Manifest{}).Where("id = ?", manifestID).
		Updates(map[string]interface{}{
			"cargo_weight":         all.Weight,
			"cargo_summary":        all.Summary,
			"active_cargo_weight":  active.Weight,
			"active_cargo_summary": active.Summary,
			"updated_by":           actor,
		}).Error
}

func (r *ManifestRepository) Create(originCity, destinationCity, remarks string, actor int) (*models.Manifest, error) {
	manifest := models.Manifest{
		OriginCity:      originCity,
		DestinationCity: destinationCity,
		Status:          models.ManifestPending,
		Remarks:         remarks,
		CreatedBy:       actor,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		manifestNo, err := idgen.GenerateDocNo(tx, idgen.PrefixManifest, "manifests", "manifest_no")
		if err != nil {
			return err
		}
		manifest.ManifestNo = manifestNo

		if err := tx.Create(&manifest).Error; err != nil {
			return err
		}
		return helpers.AppendHistory(tx, manifestNo, "manifest",
			"", string(models.ManifestPending), "manifest", "Manifest created", actor)
	})
	if err != nil {
		return nil, err
	}
	return &manifest, nil
}

// AddJobOrders links job orders onto a pending manifest. The call is
// all-or-nothing: every id is validated before anything is written. Re-adding
// a job already on this manifest is a no-op; a job actively riding a
// different manifest is a conflict.
func (r *ManifestRepository) AddJobOrders(manifestID uint, jobIDs []uint, actor int) error {
	if len(jobIDs) == 0 {
		return types.ValidationFailed("no job orders given")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var manifest models.Manifest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&manifest, manifestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("manifest %d not found", manifestID)
			}
			return err
		}
		if manifest.Status != models.ManifestPending {
			return types.InvalidState("manifest %s is %s, job orders can only be added while pending", manifest.ManifestNo, manifest.Status)
		}

		type pendingLink struct {
			job      models.JobOrder
			existing *models.ManifestJobOrder
		}
		links := make([]pendingLink, 0, len(jobIDs))

		// Validate everything up front so a single bad id leaves no
		// partial effect.
		for _, jobID := range jobIDs {
			var job models.JobOrder
			if err := tx.First(&job, jobID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return types.NotFound("job order %d not found", jobID)
				}
				return err
			}
			if job.Status == models.JobOrderCancelled {
				return types.InvalidState("job order %s is cancelled", job.OrderNo)
			}

			var link models.ManifestJobOrder
			err := tx.Where("job_order_id = ? AND removed = ?", jobID, false).First(&link).Error
			switch {
			case err == nil && link.ManifestID == manifestID:
				// Idempotent re-add.
				continue
			case err == nil:
				var other models.Manifest
				if err := tx.First(&other, link.ManifestID).Error; err == nil {
					return types.Conflict("job order %s already belongs to manifest %s", job.OrderNo, other.ManifestNo)
				}
				return types.Conflict("job order %s already belongs to another manifest", job.OrderNo)
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}

			if !(job.Status == models.JobOrderCreated || job.Status == models.JobOrderAssigned) {
				return types.InvalidState("job order %s is %s and cannot join a manifest", job.OrderNo, job.Status)
			}

			// A removed link for this pair gets reactivated instead of
			// inserting a second row.
			var removed models.ManifestJobOrder
			err = tx.Where("manifest_id = ? AND job_order_id = ? AND removed = ?", manifestID, jobID, true).First(&removed).Error
			if err == nil {
				links = append(links, pendingLink{job: job, existing: &removed})
			} else if errors.Is(err, gorm.ErrRecordNotFound) {
				links = append(links, pendingLink{job: job})
			} else {
				return err
			}
		}

		for _, l := range links {
			if l.existing != nil {
				if err := tx.Model(l.existing).Updates(map[string]interface{}{
					"removed":    false,
					"removed_at": nil,
					"added_at":   time.Now(),
					"updated_by": actor,
				}).Error; err != nil {
					return err
				}
			} else {
				link := models.ManifestJobOrder{
					ManifestID: manifestID,
					JobOrderID: l.job.ID,
					AddedAt:    time.Now(),
					CreatedBy:  actor,
				}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}

			oldStatus := l.job.Status
			if err := tx.Model(&models.JobOrder{}).Where("id = ?", l.job.ID).
				Updates(map[string]interface{}{"status": models.JobOrderInManifest, "updated_by": actor}).Error; err != nil {
				return err
			}
			if err := helpers.AppendHistory(tx, l.job.OrderNo, "job_order",
				string(oldStatus), string(models.JobOrderInManifest),
				"manifest", "Added to manifest "+manifest.ManifestNo, actor); err != nil {
				return err
			}
		}

		return recomputeAggregates(tx, manifestID, actor)
	})
}

// RemoveJobOrders flags memberships removed and hands the job orders back to
// the assigned pool. The membership rows stay on file.
func (r *ManifestRepository) RemoveJobOrders(manifestID uint, jobIDs []uint, actor int) error {
	if len(jobIDs) == 0 {
		return types.ValidationFailed("no job orders given")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var manifest models.Manifest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&manifest, manifestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("manifest %d not found", manifestID)
			}
			return err
		}
		if manifest.Status != models.ManifestPending {
			return types.InvalidState("manifest %s is %s, job orders can only be removed while pending", manifest.ManifestNo, manifest.Status)
		}

		now := time.Now()
		for _, jobID := range jobIDs {
			var link models.ManifestJobOrder
			err := tx.Where("manifest_id = ? AND job_order_id = ? AND removed = ?", manifestID, jobID, false).First(&link).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("job order %d is not on manifest %s", jobID, manifest.ManifestNo)
			}
			if err != nil {
				return err
			}

			if err := tx.Model(&link).Updates(map[string]interface{}{
				"removed":    true,
				"removed_at": now,
				"updated_by": actor,
			}).Error; err != nil {
				return err
			}

			var job models.JobOrder
			if err := tx.First(&job, jobID).Error; err != nil {
				return err
			}
			if job.Status == models.JobOrderInManifest {
				if err := tx.Model(&job).Updates(map[string]interface{}{
					"status": models.JobOrderAssigned, "updated_by": actor,
				}).Error; err != nil {
					return err
				}
				if err := helpers.AppendHistory(tx, job.OrderNo, "job_order",
					string(models.JobOrderInManifest), string(models.JobOrderAssigned),
					"manifest", "Removed from manifest "+manifest.ManifestNo, actor); err != nil {
					return err
				}
			}
		}

		return recomputeAggregates(tx, manifestID, actor)
	})
}

// GetAvailableJobOrders lists consolidation candidates: job orders still in
// created or assigned with no live membership on any manifest.
func (r *ManifestRepository) GetAvailableJobOrders() ([]models.JobOrder, error) {
	var jobs []models.JobOrder
	err := r.db.Preload("Customer").
		Where("status IN ?", []models.JobOrderStatus{models.JobOrderCreated, models.JobOrderAssigned}).
		Where("id NOT IN (?)", r.db.Table("manifest_job_orders").
			Select("job_order_id").
			Where("removed = ? AND deleted_at IS NULL", false)).
		Order("created_at ASC").
		Find(&jobs).Error
	return jobs, err
}

// SetResources staffs the manifest with a driver and vehicle, subject to
// the same availability rules as job assignments.
func (r *ManifestRepository) SetResources(manifestID, driverID, vehicleID uint, actor int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var manifest models.Manifest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&manifest, manifestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("manifest %d not found", manifestID)
			}
			return err
		}
		if manifest.Status != models.ManifestPending {
			return types.InvalidState("manifest %s is %s and can no longer be staffed", manifest.ManifestNo, manifest.Status)
		}

		var driver models.Driver
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&driver, driverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("driver %d not found", driverID)
			}
			return err
		}
		var vehicle models.Vehicle
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&vehicle, vehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("vehicle %d not found", vehicleID)
			}
			return err
		}

		if ref, err := r.availability.FirstDriverConflictForManifest(tx, driverID, manifestID); err != nil {
			return err
		} else if ref != "" {
			return types.Conflict("driver %s is already committed to %s", driver.DriverName, ref)
		}
		if ref, err := r.availability.FirstVehicleConflictForManifest(tx, vehicleID, manifestID); err != nil {
			return err
		} else if ref != "" {
			return types.Conflict("vehicle %s is already committed to %s", vehicle.PlateNumber, ref)
		}

		if err := tx.Model(&manifest).Updates(map[string]interface{}{
			"driver_id":  driverID,
			"vehicle_id": vehicleID,
			"updated_by": actor,
		}).Error; err != nil {
			return err
		}

		return helpers.AppendHistory(tx, manifest.ManifestNo, "manifest",
			string(manifest.Status), string(manifest.Status),
			"manifest", fmt.Sprintf("Staffed with driver %s and vehicle %s", driver.DriverName, vehicle.PlateNumber), actor)
	})
}

// UpdateStatus moves the manifest through its lifecycle and mirrors the
// movement onto the active member job orders.
func (r *ManifestRepository) UpdateStatus(manifestID uint, next models.ManifestStatus, actor int) error {
	if !next.IsValid() {
		return types.ValidationFailed("unknown manifest status %q", next)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var manifest models.Manifest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&manifest, manifestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("manifest %d not found", manifestID)
			}
			return err
		}
		if manifest.Status == next {
			return nil
		}
		if manifest.Status == models.ManifestCompleted || manifest.Status == models.ManifestCancelled {
			return types.InvalidState("manifest %s is already %s", manifest.ManifestNo, manifest.Status)
		}

		oldStatus := manifest.Status
		updates := map[string]interface{}{"status": next, "updated_by": actor}
		var memberStatus models.JobOrderStatus
		now := time.Now()

		switch next {
		case models.ManifestInTransit:
			if manifest.DriverID == nil || manifest.VehicleID == nil {
				return types.InvalidState("manifest %s has no driver/vehicle staffed", manifest.ManifestNo)
			}
			updates["departure_date"] = now
			memberStatus = models.JobOrderInTransit
		case models.ManifestArrived:
			updates["arrival_date"] = now
			memberStatus = models.JobOrderDelivered
		}

		if err := tx.Model(&manifest).Updates(updates).Error; err != nil {
			return err
		}
		if err := helpers.AppendHistory(tx, manifest.ManifestNo, "manifest",
			string(oldStatus), string(next), "manifest", "Manifest status updated", actor); err != nil {
			return err
		}

		if memberStatus == "" {
			return nil
		}

		members, err := linkedMembers(tx, manifestID)
		if err != nil {
			return err
		}
		for _, m := range activeMembers(members) {
			if err := tx.Model(&models.JobOrder{}).Where("order_no = ?", m.OrderNo).
				Updates(map[string]interface{}{"status": memberStatus, "updated_by": actor}).Error; err != nil {
				return err
			}
			if err := helpers.AppendHistory(tx, m.OrderNo, "job_order",
				string(m.Status), string(memberStatus),
				"manifest", "Manifest "+manifest.ManifestNo+" "+string(next), actor); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ManifestRepository) GetByID(manifestID uint) (*models.Manifest, error) {
	var manifest models.Manifest
	err := r.db.Preload("Driver").Preload("Vehicle").
		Preload("JobLinks").Preload("JobLinks.JobOrder").Preload("JobLinks.JobOrder.Customer").
		First(&manifest, manifestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("manifest %d not found", manifestID)
	}
	if err != nil {
		return nil, err
	}
	return &manifest, nil
}
