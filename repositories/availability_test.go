package repositories

import (
	"fiber-tms/models"
	"testing"
)

func TestFirstBusyRefActiveAssignmentBlocks(t *testing.T) {
	assignments := []BookedAssignment{
		{JobOrderID: 1, OrderNo: "JO2508310001", JobStatus: models.JobOrderAssigned},
	}

	ref := firstBusyRef(assignments, nil, 2, 0)
	if ref != "JO2508310001" {
		t.Errorf("expected blocking job JO2508310001, got %q", ref)
	}
}

func TestFirstBusyRefExcludesOwnJob(t *testing.T) {
	assignments := []BookedAssignment{
		{JobOrderID: 1, OrderNo: "JO2508310001", JobStatus: models.JobOrderAssigned},
	}

	// Reassigning the same pair to the same job must not conflict with
	// itself.
	if ref := firstBusyRef(assignments, nil, 1, 0); ref != "" {
		t.Errorf("own job should be excluded, got blocking ref %q", ref)
	}
}

func TestFirstBusyRefTerminalJobsDoNotBlock(t *testing.T) {
	assignments := []BookedAssignment{
		{JobOrderID: 1, OrderNo: "JO2508310001", JobStatus: models.JobOrderCompleted},
		{JobOrderID: 2, OrderNo: "JO2508310002", JobStatus: models.JobOrderCancelled},
	}

	if ref := firstBusyRef(assignments, nil, 99, 0); ref != "" {
		t.Errorf("terminal jobs should not block, got %q", ref)
	}
}

func TestFirstBusyRefManifestOccupancy(t *testing.T) {
	tests := []struct {
		status models.ManifestStatus
		want   string
	}{
		{models.ManifestPending, "MF2508310001"},
		{models.ManifestInTransit, "MF2508310001"},
		{models.ManifestArrived, ""},
		{models.ManifestCompleted, ""},
		{models.ManifestCancelled, ""},
	}

	for _, tt := range tests {
		manifests := []BookedManifest{
			{ManifestID: 1, ManifestNo: "MF2508310001", Status: tt.status},
		}
		if got := firstBusyRef(nil, manifests, 0, 0); got != tt.want {
			t.Errorf("manifest status %s: got %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestFirstBusyRefExcludesOwnManifest(t *testing.T) {
	manifests := []BookedManifest{
		{ManifestID: 7, ManifestNo: "MF2508310007", Status: models.ManifestPending},
	}

	if ref := firstBusyRef(nil, manifests, 0, 7); ref != "" {
		t.Errorf("restaffing the same manifest should not self-conflict, got %q", ref)
	}
	if ref := firstBusyRef(nil, manifests, 0, 8); ref != "MF2508310007" {
		t.Errorf("other manifests must still block, got %q", ref)
	}
}

func TestFirstBusyRefAssignmentWinsOverManifest(t *testing.T) {
	assignments := []BookedAssignment{
		{JobOrderID: 5, OrderNo: "JO2508310005", JobStatus: models.JobOrderInTransit},
	}
	manifests := []BookedManifest{
		{ManifestID: 1, ManifestNo: "MF2508310001", Status: models.ManifestPending},
	}

	if got := firstBusyRef(assignments, manifests, 0, 0); got != "JO2508310005" {
		t.Errorf("assignment conflict should be reported first, got %q", got)
	}
}
