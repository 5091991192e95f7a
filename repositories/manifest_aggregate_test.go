package repositories

import (
	"fiber-tms/models"
	"strings"
	"testing"
)

func TestBuildCargoAggregateEmpty(t *testing.T) {
	agg := buildCargoAggregate(nil)
	if agg.Weight != 0 {
		t.Errorf("empty aggregate weight = %f, want 0", agg.Weight)
	}
	if agg.Summary != "" {
		t.Errorf("empty aggregate summary = %q, want empty", agg.Summary)
	}
}

func TestBuildCargoAggregateSumsWeights(t *testing.T) {
	members := []MemberCargo{
		{OrderNo: "JO-1", GoodsDesc: "electronics", GoodsQty: 10, GoodsWeight: 100, Status: models.JobOrderInManifest},
		{OrderNo: "JO-2", GoodsDesc: "textiles", GoodsQty: 5, GoodsWeight: 250, Status: models.JobOrderInManifest},
	}

	agg := buildCargoAggregate(members)
	if agg.Weight != 350 {
		t.Errorf("weight = %f, want 350", agg.Weight)
	}
	if !strings.Contains(agg.Summary, "2 order(s), 350.0 kg") {
		t.Errorf("summary missing header: %q", agg.Summary)
	}
	if !strings.Contains(agg.Summary, "JO-1 electronics x10") || !strings.Contains(agg.Summary, "JO-2 textiles x5") {
		t.Errorf("summary missing members: %q", agg.Summary)
	}
}

// Cancelling one member shrinks the active aggregate but leaves the audit
// aggregate covering every linked member.
func TestActiveVersusAuditAggregates(t *testing.T) {
	members := []MemberCargo{
		{OrderNo: "JO-1", GoodsDesc: "electronics", GoodsQty: 1, GoodsWeight: 100, Status: models.JobOrderCancelled},
		{OrderNo: "JO-2", GoodsDesc: "textiles", GoodsQty: 1, GoodsWeight: 250, Status: models.JobOrderInManifest},
	}

	all := buildCargoAggregate(members)
	active := buildCargoAggregate(activeMembers(members))

	if all.Weight != 350 {
		t.Errorf("audit weight = %f, want 350 (cancelled member still counted)", all.Weight)
	}
	if active.Weight != 250 {
		t.Errorf("active weight = %f, want 250", active.Weight)
	}
	if strings.Contains(active.Summary, "JO-1") {
		t.Errorf("active summary should not list cancelled member: %q", active.Summary)
	}
	if !strings.Contains(all.Summary, "JO-1") {
		t.Errorf("audit summary must keep cancelled member: %q", all.Summary)
	}
}

func TestActiveMembersAllCancelled(t *testing.T) {
	members := []MemberCargo{
		{OrderNo: "JO-1", GoodsWeight: 100, Status: models.JobOrderCancelled},
	}

	active := activeMembers(members)
	if len(active) != 0 {
		t.Fatalf("expected no active members, got %d", len(active))
	}

	agg := buildCargoAggregate(active)
	if agg.Weight != 0 || agg.Summary != "" {
		t.Errorf("aggregate over no members should be zeroed, got %+v", agg)
	}
}

// Cancelling the only job on a manifest cancels the manifest and releases
// its driver and vehicle.
func TestPlanManifestCascadeLastMember(t *testing.T) {
	members := []MemberCargo{
		{OrderNo: "JO-1", GoodsWeight: 100, Status: models.JobOrderCancelled},
	}

	plan := planManifestCascade(members, models.ManifestPending, 1)
	if !plan.Cancel {
		t.Fatal("manifest with no active members left should cancel")
	}
	if plan.Updates["status"] != models.ManifestCancelled {
		t.Errorf("status = %v, want cancelled", plan.Updates["status"])
	}
	if plan.Updates["driver_id"] != nil || plan.Updates["vehicle_id"] != nil {
		t.Error("driver and vehicle must be released")
	}
	if plan.Updates["active_cargo_weight"] != 0 || plan.Updates["cargo_weight"] != 0 {
		t.Errorf("cargo weights must be zeroed, got %v / %v",
			plan.Updates["cargo_weight"], plan.Updates["active_cargo_weight"])
	}
}

// Cancelling one of two jobs leaves the manifest riding on with the other.
func TestPlanManifestCascadeRemainingMember(t *testing.T) {
	members := []MemberCargo{
		{OrderNo: "JO-1", GoodsWeight: 100, Status: models.JobOrderCancelled},
		{OrderNo: "JO-2", GoodsWeight: 250, Status: models.JobOrderInManifest},
	}

	plan := planManifestCascade(members, models.ManifestPending, 1)
	if plan.Cancel {
		t.Error("manifest with an active member left should not cancel")
	}
}

func TestPlanManifestCascadeAlreadyCancelled(t *testing.T) {
	plan := planManifestCascade(nil, models.ManifestCancelled, 1)
	if plan.Cancel {
		t.Error("re-running the cascade on a cancelled manifest must be a no-op")
	}
}

func TestPlanManifestCascadeRemovedMembershipsOnly(t *testing.T) {
	plan := planManifestCascade(nil, models.ManifestPending, 1)
	if !plan.Cancel {
		t.Error("manifest with no linked members should cancel")
	}
}
