package models

// Status enums for the fulfillment entities. Values are stored as-is in the
// status columns, so keep them stable.

type JobOrderStatus string

const (
	JobOrderCreated    JobOrderStatus = "created"
	JobOrderAssigned   JobOrderStatus = "assigned"
	JobOrderInManifest JobOrderStatus = "in_manifest"
	JobOrderInTransit  JobOrderStatus = "in_transit"
	JobOrderDelivered  JobOrderStatus = "delivered"
	JobOrderCompleted  JobOrderStatus = "completed"
	JobOrderCancelled  JobOrderStatus = "cancelled"
)

func (s JobOrderStatus) String() string {
	return string(s)
}

func (s JobOrderStatus) IsValid() bool {
	switch s {
	case JobOrderCreated, JobOrderAssigned, JobOrderInManifest, JobOrderInTransit,
		JobOrderDelivered, JobOrderCompleted, JobOrderCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the job order can never change status again.
func (s JobOrderStatus) IsTerminal() bool {
	return s == JobOrderCompleted || s == JobOrderCancelled
}

// PastAssignment reports whether the order already moved beyond the
// assignment stage, in which case creating a new assignment must not pull
// the status back to "assigned".
func (s JobOrderStatus) PastAssignment() bool {
	switch s {
	case JobOrderInManifest, JobOrderInTransit, JobOrderDelivered, JobOrderCompleted:
		return true
	default:
		return false
	}
}

type OrderType string

const (
	OrderTypeFTL OrderType = "FTL"
	OrderTypeLTL OrderType = "LTL"
)

func (t OrderType) IsValid() bool {
	return t == OrderTypeFTL || t == OrderTypeLTL
}

type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "active"
	AssignmentStandby   AssignmentStatus = "standby"
	AssignmentCancelled AssignmentStatus = "cancelled"
	AssignmentInactive  AssignmentStatus = "inactive"
)

type ManifestStatus string

const (
	ManifestPending   ManifestStatus = "pending"
	ManifestInTransit ManifestStatus = "in_transit"
	ManifestArrived   ManifestStatus = "arrived"
	ManifestCompleted ManifestStatus = "completed"
	ManifestCancelled ManifestStatus = "cancelled"
)

func (s ManifestStatus) IsValid() bool {
	switch s {
	case ManifestPending, ManifestInTransit, ManifestArrived, ManifestCompleted, ManifestCancelled:
		return true
	default:
		return false
	}
}

// OccupiesResources reports whether a manifest in this status still holds on
// to its driver and vehicle. Once the truck has arrived the pair can be
// booked again.
func (s ManifestStatus) OccupiesResources() bool {
	switch s {
	case ManifestCompleted, ManifestCancelled, ManifestArrived:
		return false
	default:
		return true
	}
}

type DeliveryOrderStatus string

const (
	DeliveryOrderPending   DeliveryOrderStatus = "pending"
	DeliveryOrderInTransit DeliveryOrderStatus = "in_transit"
	DeliveryOrderDelivered DeliveryOrderStatus = "delivered"
	DeliveryOrderReturned  DeliveryOrderStatus = "returned"
	DeliveryOrderCompleted DeliveryOrderStatus = "completed"
	DeliveryOrderCancelled DeliveryOrderStatus = "cancelled"
)

func (s DeliveryOrderStatus) IsValid() bool {
	switch s {
	case DeliveryOrderPending, DeliveryOrderInTransit, DeliveryOrderDelivered,
		DeliveryOrderReturned, DeliveryOrderCompleted, DeliveryOrderCancelled:
		return true
	default:
		return false
	}
}

// CanDelete reports whether the dispatch record may still be destroyed.
// Anything that already left the dock stays on file.
func (s DeliveryOrderStatus) CanDelete() bool {
	return s == DeliveryOrderPending || s == DeliveryOrderCancelled
}

// NextAllowed reports whether a manual status move from s to next is legal.
func (s DeliveryOrderStatus) NextAllowed(next DeliveryOrderStatus) bool {
	switch s {
	case DeliveryOrderPending:
		return next == DeliveryOrderInTransit || next == DeliveryOrderCancelled
	case DeliveryOrderInTransit:
		return next == DeliveryOrderDelivered || next == DeliveryOrderReturned
	case DeliveryOrderDelivered:
		return next == DeliveryOrderCompleted || next == DeliveryOrderReturned
	case DeliveryOrderReturned:
		return next == DeliveryOrderInTransit
	default:
		return false
	}
}

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePartial   InvoiceStatus = "partial"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// SourceType tags the record an invoice or delivery order was derived from.
type SourceType string

const (
	SourceJobOrder      SourceType = "JO"
	SourceManifest      SourceType = "MF"
	SourceDeliveryOrder SourceType = "DO"
)

func (t SourceType) IsValid() bool {
	return t == SourceJobOrder || t == SourceManifest || t == SourceDeliveryOrder
}
