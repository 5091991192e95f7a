package repositories

import (
	"errors"
	"fiber-tms/models"
	"fiber-tms/types"
	"testing"

	"gorm.io/gorm"
)

func idModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

func kindOf(t *testing.T, err error) types.ErrKind {
	t.Helper()
	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	return appErr.Kind
}

func TestResolveJobOrderSource(t *testing.T) {
	job := &models.JobOrder{
		OrderNo:    "JO2508310001",
		CustomerID: 3,
		GoodsDesc:  "frozen seafood",
		Status:     models.JobOrderAssigned,
	}

	facts, err := resolveJobOrderSource(job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facts.CustomerID != 3 || facts.GoodsSummary != "frozen seafood" {
		t.Errorf("facts = %+v", facts)
	}
}

func TestResolveJobOrderSourceCancelled(t *testing.T) {
	job := &models.JobOrder{OrderNo: "JO-1", CustomerID: 3, GoodsDesc: "x", Status: models.JobOrderCancelled}
	_, err := resolveJobOrderSource(job)
	if kindOf(t, err) != types.ErrInvalidState {
		t.Errorf("expected invalid_state, got %v", err)
	}
}

func TestResolveManifestSourceSelectedLTL(t *testing.T) {
	manifest := &models.Manifest{ManifestNo: "MF-1", Status: models.ManifestPending}
	members := []models.JobOrder{
		{Model: idModel(1), OrderNo: "JO-1", CustomerID: 1, GoodsDesc: "electronics", OrderType: models.OrderTypeLTL},
		{Model: idModel(2), OrderNo: "JO-2", CustomerID: 2, GoodsDesc: "textiles", OrderType: models.OrderTypeLTL},
	}

	facts, err := resolveManifestSource(manifest, members, &members[1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facts.CustomerID != 2 || facts.GoodsSummary != "textiles" {
		t.Errorf("facts = %+v", facts)
	}
}

func TestResolveManifestSourceSelectedNotMember(t *testing.T) {
	manifest := &models.Manifest{ManifestNo: "MF-1", Status: models.ManifestPending}
	members := []models.JobOrder{
		{Model: idModel(1), OrderNo: "JO-1", CustomerID: 1, GoodsDesc: "electronics", OrderType: models.OrderTypeLTL},
	}
	outsider := models.JobOrder{Model: idModel(9), OrderNo: "JO-9", CustomerID: 9, OrderType: models.OrderTypeLTL}

	_, err := resolveManifestSource(manifest, members, &outsider)
	if kindOf(t, err) != types.ErrValidation {
		t.Errorf("expected validation_failed, got %v", err)
	}
}

func TestResolveManifestSourceSelectedFTLRejected(t *testing.T) {
	manifest := &models.Manifest{ManifestNo: "MF-1", Status: models.ManifestPending}
	members := []models.JobOrder{
		{Model: idModel(1), OrderNo: "JO-1", CustomerID: 1, GoodsDesc: "steel", OrderType: models.OrderTypeFTL},
	}

	_, err := resolveManifestSource(manifest, members, &members[0])
	if kindOf(t, err) != types.ErrValidation {
		t.Errorf("expected validation_failed for FTL selection, got %v", err)
	}
}

func TestResolveManifestSourceSingleCustomer(t *testing.T) {
	manifest := &models.Manifest{ManifestNo: "MF-1", Status: models.ManifestPending, ActiveCargoSummary: "2 order(s), 350.0 kg: ..."}
	members := []models.JobOrder{
		{Model: idModel(1), OrderNo: "JO-1", CustomerID: 7, GoodsDesc: "a", OrderType: models.OrderTypeLTL},
		{Model: idModel(2), OrderNo: "JO-2", CustomerID: 7, GoodsDesc: "b", OrderType: models.OrderTypeLTL},
	}

	facts, err := resolveManifestSource(manifest, members, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facts.CustomerID != 7 {
		t.Errorf("customer = %d, want 7", facts.CustomerID)
	}
	if facts.GoodsSummary != manifest.ActiveCargoSummary {
		t.Errorf("goods summary should come from the active aggregate, got %q", facts.GoodsSummary)
	}
}

func TestResolveManifestSourceMixedCustomersNeedsSelection(t *testing.T) {
	manifest := &models.Manifest{ManifestNo: "MF-1", Status: models.ManifestPending}
	members := []models.JobOrder{
		{Model: idModel(1), OrderNo: "JO-1", CustomerID: 1, GoodsDesc: "a", OrderType: models.OrderTypeLTL},
		{Model: idModel(2), OrderNo: "JO-2", CustomerID: 2, GoodsDesc: "b", OrderType: models.OrderTypeLTL},
	}

	_, err := resolveManifestSource(manifest, members, nil)
	if kindOf(t, err) != types.ErrValidation {
		t.Errorf("expected validation_failed, got %v", err)
	}
}

func TestResolveManifestSourceNoActiveMembers(t *testing.T) {
	manifest := &models.Manifest{ManifestNo: "MF-1", Status: models.ManifestPending}
	_, err := resolveManifestSource(manifest, nil, nil)
	if kindOf(t, err) != types.ErrValidation {
		t.Errorf("expected validation_failed, got %v", err)
	}
}
