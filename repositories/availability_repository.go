package repositories

import (
	"fiber-tms/models"

	"gorm.io/gorm"
)

// AvailabilityRepository answers whether a driver or vehicle is free to take
// a new job. It only reads; callers run it inside the transaction that will
// write the assignment so the check and the write cannot be interleaved by
// a concurrent request.
type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// BookedAssignment is one candidate assignment row fetched for the conflict
// decision, joined with its job order status.
type BookedAssignment struct {
	JobOrderID uint                  `json:"job_order_id"`
	OrderNo    string                `json:"order_no"`
	JobStatus  models.JobOrderStatus `json:"job_status"`
}

// BookedManifest is one manifest currently binding the driver or vehicle.
type BookedManifest struct {
	ManifestID uint                  `json:"manifest_id"`
	ManifestNo string                `json:"manifest_no"`
	Status     models.ManifestStatus `json:"status"`
}

// firstBusyRef applies the busy rule over fetched rows: an active assignment
// on a non-terminal job other than the one being (re-)assigned wins, then
// any manifest that still occupies the resource. excludeManifestID exempts
// the manifest currently being (re-)staffed. Returns the blocking document
// number, or "" when free.
func firstBusyRef(assignments []BookedAssignment, manifests []BookedManifest, excludeJobID, excludeManifestID uint) string {
	for _, a := range assignments {
		if a.JobOrderID == excludeJobID {
			continue
		}
		if a.JobStatus.IsTerminal() {
			continue
		}
		return a.OrderNo
	}
	for _, m := range manifests {
		if m.ManifestID == excludeManifestID {
			continue
		}
		if !m.Status.OccupiesResources() {
			continue
		}
		return m.ManifestNo
	}
	return ""
}

func (r *AvailabilityRepository) bookedAssignments(tx *gorm.DB, column string, id uint) ([]BookedAssignment, error) {
	var rows []BookedAssignment
	err := tx.Table("assignments").
		Select("assignments.job_order_id, job_orders.order_no, job_orders.status as job_status").
		Joins("INNER JOIN job_orders ON job_orders.id = assignments.job_order_id").
		Where("assignments."+column+" = ?", id).
		Where("assignments.status = ?", models.AssignmentActive).
		Where("assignments.deleted_at IS NULL AND job_orders.deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

func (r *AvailabilityRepository) bookedManifests(tx *gorm.DB, column string, id uint) ([]BookedManifest, error) {
	var rows []BookedManifest
	err := tx.Table("manifests").
		Select("manifests.id as manifest_id, manifests.manifest_no, manifests.status").
		Where("manifests."+column+" = ?", id).
		Where("manifests.deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

func (r *AvailabilityRepository) firstConflict(tx *gorm.DB, column string, id, excludeJobID, excludeManifestID uint) (string, error) {
	assignments, err := r.bookedAssignments(tx, column, id)
	if err != nil {
		return "", err
	}
	manifests, err := r.bookedManifests(tx, column, id)
	if err != nil {
		return "", err
	}
	return firstBusyRef(assignments, manifests, excludeJobID, excludeManifestID), nil
}

// FirstDriverConflict returns the document number blocking the driver, or ""
// when the driver is free for excludeJobID.
func (r *AvailabilityRepository) FirstDriverConflict(tx *gorm.DB, driverID, excludeJobID uint) (string, error) {
	return r.firstConflict(tx, "driver_id", driverID, excludeJobID, 0)
}

// FirstVehicleConflict is the vehicle counterpart of FirstDriverConflict.
func (r *AvailabilityRepository) FirstVehicleConflict(tx *gorm.DB, vehicleID, excludeJobID uint) (string, error) {
	return r.firstConflict(tx, "vehicle_id", vehicleID, excludeJobID, 0)
}

// FirstDriverConflictForManifest checks driver availability when staffing a
// manifest, ignoring the manifest's own current binding.
func (r *AvailabilityRepository) FirstDriverConflictForManifest(tx *gorm.DB, driverID, manifestID uint) (string, error) {
	return r.firstConflict(tx, "driver_id", driverID, 0, manifestID)
}

// FirstVehicleConflictForManifest is the vehicle counterpart.
func (r *AvailabilityRepository) FirstVehicleConflictForManifest(tx *gorm.DB, vehicleID, manifestID uint) (string, error) {
	return r.firstConflict(tx, "vehicle_id", vehicleID, 0, manifestID)
}

// IsDriverFree is a convenience wrapper used by the vehicle/driver lookup
// endpoints outside of an assignment transaction.
func (r *AvailabilityRepository) IsDriverFree(driverID, excludeJobID uint) (bool, error) {
	ref, err := r.FirstDriverConflict(r.db, driverID, excludeJobID)
	return ref == "", err
}

func (r *AvailabilityRepository) IsVehicleFree(vehicleID, excludeJobID uint) (bool, error) {
	ref, err := r.FirstVehicleConflict(r.db, vehicleID, excludeJobID)
	return ref == "", err
}
