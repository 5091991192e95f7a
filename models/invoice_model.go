package models

import (
	"fiber-tms/controllers/idgen"
	"time"

	"gorm.io/gorm"
)

type Invoice struct {
	gorm.Model
	InvoiceNo string `json:"invoice_no" gorm:"unique"`

	// One invoice per (source_type, source_no) pair. Enforced inside the
	// create transaction rather than by a DB unique index, because soft
	// deleted invoices must stop blocking recreation.
	SourceType SourceType `json:"source_type" gorm:"type:varchar(5);index:idx_invoice_source"`
	SourceNo   string     `json:"source_no" gorm:"index:idx_invoice_source"`
	CustomerID uint       `json:"customer_id"`

	InvoiceDate *time.Time `json:"invoice_date"`
	DueDate     *time.Time `json:"due_date"`
	Subtotal    float64    `json:"subtotal"`
	Tax         float64    `json:"tax"`
	TotalAmount float64    `json:"total_amount"`
	PaidAmount  float64    `json:"paid_amount" gorm:"default:0"`
	PaymentDate *time.Time `json:"payment_date"`

	Status       InvoiceStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CancelReason string        `json:"cancel_reason"`
	Notes        string        `json:"notes"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int

	Customer Customer  `json:"customer" gorm:"foreignKey:CustomerID;references:ID"`
	Payments []Payment `json:"payments" gorm:"foreignKey:InvoiceID;references:ID"`
}

// Payment rows are append-only. No update or delete endpoint exists for
// them; a wrong payment is handled by cancelling the invoice and issuing a
// new one.
type Payment struct {
	ID          int64     `json:"ID" gorm:"primaryKey"`
	InvoiceID   uint      `json:"invoice_id" gorm:"index"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Method      string    `json:"method"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time
	CreatedBy   int
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = idgen.GenerateID()
	return
}
