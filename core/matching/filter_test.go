package matching

import (
	"testing"

	"github.com/freightops/loadmatch/core/model"
)

func TestHardEligibilityFilter_Exclusions(t *testing.T) {
	load := model.Load{ID: 1, EquipmentType: "Dry Van"}
	pool := []model.Carrier{
		{ID: 1, Active: true, EquipmentTypes: []string{"Dry Van"}},
		{ID: 2, Active: false, EquipmentTypes: []string{"Dry Van"}},
		{ID: 3, Active: true, Blocked: true, EquipmentTypes: []string{"Dry Van"}},
		{ID: 4, Active: true, Disqualified: true, EquipmentTypes: []string{"Dry Van"}},
		{ID: 5, Active: true, Authorization: model.AuthNotAuthorized, EquipmentTypes: []string{"Dry Van"}},
		{ID: 6, Active: true, EquipmentTypes: []string{"Reefer"}},
	}
	got := HardEligibilityFilter{}.Filter(pool, load)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only carrier 1 eligible, got %v", got)
	}
}

func TestHardEligibilityFilter_UnknownAuthorizationIsEligible(t *testing.T) {
	load := model.Load{ID: 1, EquipmentType: "Reefer"}
	pool := []model.Carrier{
		{ID: 9, Active: true, Authorization: model.AuthUnknown, EquipmentTypes: []string{"Reefer"}},
	}
	got := HardEligibilityFilter{}.Filter(pool, load)
	if len(got) != 1 {
		t.Fatalf("unknown authorization must not exclude, got %v", got)
	}
}

func TestHardEligibilityFilter_Deduplicates(t *testing.T) {
	load := model.Load{ID: 1, EquipmentType: "Dry Van"}
	c := model.Carrier{ID: 7, Active: true, EquipmentTypes: []string{"Dry Van"}}
	got := HardEligibilityFilter{}.Filter([]model.Carrier{c, c, c}, load)
	if len(got) != 1 {
		t.Fatalf("expected carrier deduplicated, got %d entries", len(got))
	}
}

func TestHardEligibilityFilter_Scenario(t *testing.T) {
	// One blocked, one without the required equipment, one fully eligible.
	load := model.Load{ID: 42, EquipmentType: "Dry Van"}
	pool := []model.Carrier{
		{ID: 10, Active: true, Blocked: true, EquipmentTypes: []string{"Dry Van"}},
		{ID: 11, Active: true, EquipmentTypes: []string{"Flatbed"}},
		{ID: 12, Active: true, EquipmentTypes: []string{"Dry Van", "Reefer"}},
	}
	got := HardEligibilityFilter{}.Filter(pool, load)
	if len(got) != 1 {
		t.Fatalf("expected eligible set of size 1, got %d", len(got))
	}
	if got[0].ID != 12 {
		t.Fatalf("expected carrier 12, got %d", got[0].ID)
	}
}
