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

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// deriveInvoiceStatus is the single place the paid/partial/pending rule
// lives. The status is a pure function of the amounts and the due date.
func deriveInvoiceStatus(paid, total float64, dueDate *time.Time, now time.Time) models.InvoiceStatus {
	switch {
	case total > 0 && paid >= total:
		return models.InvoicePaid
	case paid > 0:
		return models.InvoicePartial
	case dueDate != nil && now.After(*dueDate):
		return models.InvoiceOverdue
	default:
		return models.InvoicePending
	}
}

// validatePayment checks one payment against the current ledger state and
// reports the exact outstanding balance on overpayment.
func validatePayment(currentPaid, total, amount float64) error {
	if amount <= 0 {
		return types.ValidationFailed("payment amount must be positive")
	}
	outstanding := total - currentPaid
	if currentPaid+amount > total {
		return types.Overpayment("payment of %.2f exceeds outstanding balance of %.2f by %.2f",
			amount, outstanding, currentPaid+amount-total)
	}
	return nil
}

// resolveInvoiceSource checks the source record exists and returns the
// customer to bill. The source row is read under a row lock so concurrent
// invoice creates for the same source serialize on the duplicate check.
func (r *InvoiceRepository) resolveInvoiceSource(tx *gorm.DB, sourceType models.SourceType, sourceNo string) (uint, error) {
	switch sourceType {
	case models.SourceJobOrder:
		var job models.JobOrder
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("order_no = ?", sourceNo).First(&job).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, types.NotFound("job order %s not found", sourceNo)
		}
		if err != nil {
			return 0, err
		}
		if job.Status == models.JobOrderCancelled {
			return 0, types.InvalidState("job order %s is cancelled", sourceNo)
		}
		return job.CustomerID, nil

	case models.SourceManifest:
		var manifest models.Manifest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("manifest_no = ?", sourceNo).First(&manifest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, types.NotFound("manifest %s not found", sourceNo)
		}
		if err != nil {
			return 0, err
		}
		if manifest.Status == models.ManifestCancelled {
			return 0, types.InvalidState("manifest %s is cancelled", sourceNo)
		}
		members, err := activeManifestJobOrders(tx, manifest.ID)
		if err != nil {
			return 0, err
		}
		if len(members) == 0 {
			return 0, types.ValidationFailed("manifest %s has no active job orders to bill", sourceNo)
		}
		customerID := members[0].CustomerID
		for _, m := range members[1:] {
			if m.CustomerID != customerID {
				return 0, types.ValidationFailed("manifest %s carries multiple customers, bill the job orders individually", sourceNo)
			}
		}
		return customerID, nil

	case models.SourceDeliveryOrder:
		var do models.DeliveryOrder
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("do_no = ?", sourceNo).First(&do).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, types.NotFound("delivery order %s not found", sourceNo)
		}
		if err != nil {
			return 0, err
		}
		if do.Status == models.DeliveryOrderCancelled {
			return 0, types.InvalidState("delivery order %s is cancelled", sourceNo)
		}
		return do.CustomerID, nil

	default:
		return 0, types.ValidationFailed("source type must be JO, MF or DO, got %q", sourceType)
	}
}

// Create issues one invoice for a source record. At most one invoice may
// ever exist per (source type, source number); a second attempt fails
// Duplicate regardless of status.
func (r *InvoiceRepository) Create(sourceType models.SourceType, sourceNo string, invoiceDate, dueDate *time.Time, subtotal, tax float64, notes string, actor int) (*models.Invoice, error) {
	if subtotal < 0 || tax < 0 {
		return nil, types.ValidationFailed("subtotal and tax cannot be negative")
	}

	var invoice models.Invoice
	err := r.db.Transaction(func(tx *gorm.DB) error {
		customerID, err := r.resolveInvoiceSource(tx, sourceType, sourceNo)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Invoice{}).
			Where("source_type = ? AND source_no = ?", sourceType, sourceNo).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return types.Duplicate("an invoice already exists for %s %s", sourceType, sourceNo)
		}

		invoiceNo, err := idgen.GenerateDocNo(tx, idgen.PrefixInvoice, "invoices", "invoice_no")
		if err != nil {
			return err
		}

		invoice = models.Invoice{
			InvoiceNo:   invoiceNo,
			SourceType:  sourceType,
			SourceNo:    sourceNo,
			CustomerID:  customerID,
			InvoiceDate: invoiceDate,
			DueDate:     dueDate,
			Subtotal:    subtotal,
			Tax:         tax,
			TotalAmount: subtotal + tax,
			Status:      deriveInvoiceStatus(0, subtotal+tax, dueDate, time.Now()),
			Notes:       notes,
			CreatedBy:   actor,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		return helpers.AppendHistory(tx, invoiceNo, "invoice",
			"", string(invoice.Status), "invoice", "Invoice created for "+string(sourceType)+" "+sourceNo, actor)
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// RecordPayment appends one payment and rolls the running paid amount
// forward. Each call is validated against the paid amount at that moment,
// under a row lock, so concurrent payments cannot push past the total.
func (r *InvoiceRepository) RecordPayment(invoiceID uint, amount float64, paymentDate time.Time, method, notes string, actor int) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("invoice %d not found", invoiceID)
			}
			return err
		}
		if invoice.Status == models.InvoicePaid {
			return types.InvalidState("invoice %s is already fully paid", invoice.InvoiceNo)
		}
		if invoice.Status == models.InvoiceCancelled {
			return types.InvalidState("invoice %s is cancelled", invoice.InvoiceNo)
		}

		if err := validatePayment(invoice.PaidAmount, invoice.TotalAmount, amount); err != nil {
			return err
		}

		payment := models.Payment{
			InvoiceID:   invoiceID,
			Amount:      amount,
			PaymentDate: paymentDate,
			Method:      method,
			Notes:       notes,
			CreatedBy:   actor,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		oldStatus := invoice.Status
		newPaid := invoice.PaidAmount + amount
		newStatus := deriveInvoiceStatus(newPaid, invoice.TotalAmount, invoice.DueDate, time.Now())

		if err := tx.Model(&invoice).Updates(map[string]interface{}{
			"paid_amount":  newPaid,
			"payment_date": paymentDate,
			"status":       newStatus,
			"updated_by":   actor,
		}).Error; err != nil {
			return err
		}

		if oldStatus != newStatus {
			return helpers.AppendHistory(tx, invoice.InvoiceNo, "invoice",
				string(oldStatus), string(newStatus), "payment", "Payment recorded", actor)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Cancel voids an unpaid invoice.
func (r *InvoiceRepository) Cancel(invoiceID uint, reason string, actor int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("invoice %d not found", invoiceID)
			}
			return err
		}
		if invoice.Status == models.InvoicePaid {
			return types.InvalidState("invoice %s is fully paid and cannot be cancelled", invoice.InvoiceNo)
		}
		if invoice.Status == models.InvoiceCancelled {
			return types.InvalidState("invoice %s is already cancelled", invoice.InvoiceNo)
		}

		oldStatus := invoice.Status
		if err := tx.Model(&invoice).Updates(map[string]interface{}{
			"status":        models.InvoiceCancelled,
			"cancel_reason": reason,
			"updated_by":    actor,
		}).Error; err != nil {
			return err
		}
		return helpers.AppendHistory(tx, invoice.InvoiceNo, "invoice",
			string(oldStatus), string(models.InvoiceCancelled), "invoice", reason, actor)
	})
}

// Delete soft-deletes an unpaid invoice.
func (r *InvoiceRepository) Delete(invoiceID uint, actor int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("invoice %d not found", invoiceID)
			}
			return err
		}
		if invoice.Status == models.InvoicePaid {
			return types.InvalidState("invoice %s is fully paid and cannot be deleted", invoice.InvoiceNo)
		}

		if err := tx.Model(&invoice).Update("deleted_by", actor).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
}

// RefreshOverdue flips pending invoices past their due date to overdue.
// Idempotent; run before listing.
func (r *InvoiceRepository) RefreshOverdue() error {
	return r.db.Model(&models.Invoice{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", models.InvoicePending, time.Now()).
		Update("status", models.InvoiceOverdue).Error
}

func (r *InvoiceRepository) GetByID(invoiceID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Preload("Customer").Preload("Payments").First(&invoice, invoiceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("invoice %d not found", invoiceID)
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
