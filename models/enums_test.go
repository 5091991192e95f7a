package models

import "testing"

func TestJobOrderStatusIsValid(t *testing.T) {
	valid := []JobOrderStatus{
		JobOrderCreated, JobOrderAssigned, JobOrderInManifest,
		JobOrderInTransit, JobOrderDelivered, JobOrderCompleted, JobOrderCancelled,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []JobOrderStatus{"", "Created", "done", "CANCELLED"} {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestJobOrderStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   JobOrderStatus
		terminal bool
	}{
		{JobOrderCreated, false},
		{JobOrderAssigned, false},
		{JobOrderInManifest, false},
		{JobOrderInTransit, false},
		{JobOrderDelivered, false},
		{JobOrderCompleted, true},
		{JobOrderCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.terminal {
			t.Errorf("%s: IsTerminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestJobOrderStatusPastAssignment(t *testing.T) {
	past := []JobOrderStatus{JobOrderInManifest, JobOrderInTransit, JobOrderDelivered, JobOrderCompleted}
	for _, s := range past {
		if !s.PastAssignment() {
			t.Errorf("expected %q to be past assignment", s)
		}
	}
	notPast := []JobOrderStatus{JobOrderCreated, JobOrderAssigned, JobOrderCancelled}
	for _, s := range notPast {
		if s.PastAssignment() {
			t.Errorf("expected %q to not be past assignment", s)
		}
	}
}

func TestManifestStatusOccupiesResources(t *testing.T) {
	tests := []struct {
		status   ManifestStatus
		occupies bool
	}{
		{ManifestPending, true},
		{ManifestInTransit, true},
		{ManifestArrived, false},
		{ManifestCompleted, false},
		{ManifestCancelled, false},
	}
	for _, tt := range tests {
		if got := tt.status.OccupiesResources(); got != tt.occupies {
			t.Errorf("%s: OccupiesResources() = %v, want %v", tt.status, got, tt.occupies)
		}
	}
}

func TestDeliveryOrderStatusNextAllowed(t *testing.T) {
	tests := []struct {
		from    DeliveryOrderStatus
		to      DeliveryOrderStatus
		allowed bool
	}{
		{DeliveryOrderPending, DeliveryOrderInTransit, true},
		{DeliveryOrderPending, DeliveryOrderCancelled, true},
		{DeliveryOrderPending, DeliveryOrderDelivered, false},
		{DeliveryOrderPending, DeliveryOrderCompleted, false},
		{DeliveryOrderInTransit, DeliveryOrderDelivered, true},
		{DeliveryOrderInTransit, DeliveryOrderReturned, true},
		{DeliveryOrderInTransit, DeliveryOrderCancelled, false},
		{DeliveryOrderInTransit, DeliveryOrderPending, false},
		{DeliveryOrderDelivered, DeliveryOrderCompleted, true},
		{DeliveryOrderDelivered, DeliveryOrderReturned, true},
		{DeliveryOrderDelivered, DeliveryOrderInTransit, false},
		{DeliveryOrderReturned, DeliveryOrderInTransit, true},
		{DeliveryOrderReturned, DeliveryOrderDelivered, false},
		{DeliveryOrderCompleted, DeliveryOrderInTransit, false},
		{DeliveryOrderCancelled, DeliveryOrderInTransit, false},
	}
	for _, tt := range tests {
		if got := tt.from.NextAllowed(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: NextAllowed() = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestDeliveryOrderStatusCanDelete(t *testing.T) {
	deletable := []DeliveryOrderStatus{DeliveryOrderPending, DeliveryOrderCancelled}
	for _, s := range deletable {
		if !s.CanDelete() {
			t.Errorf("expected %q to be deletable", s)
		}
	}
	kept := []DeliveryOrderStatus{DeliveryOrderInTransit, DeliveryOrderDelivered, DeliveryOrderReturned, DeliveryOrderCompleted}
	for _, s := range kept {
		if s.CanDelete() {
			t.Errorf("expected %q to not be deletable", s)
		}
	}
}

func TestOrderTypeIsValid(t *testing.T) {
	if !OrderTypeFTL.IsValid() || !OrderTypeLTL.IsValid() {
		t.Error("expected FTL and LTL to be valid")
	}
	if OrderType("ftl").IsValid() || OrderType("").IsValid() {
		t.Error("expected lowercase and empty order types to be invalid")
	}
}

func TestSourceTypeIsValid(t *testing.T) {
	for _, s := range []SourceType{SourceJobOrder, SourceManifest, SourceDeliveryOrder} {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if SourceType("XX").IsValid() {
		t.Error("expected XX to be invalid")
	}
}
