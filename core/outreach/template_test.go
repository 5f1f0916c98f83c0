package outreach

import (
	"strings"
	"testing"

	"github.com/freightops/loadmatch/core/model"
)

func TestDefaultBody(t *testing.T) {
	weight := 42000
	load := vanLoad()
	load.Reference = "LD-1007"
	load.WeightLbs = &weight

	body := DefaultBody(load)
	for _, want := range []string{
		"Lane: Dallas, TX to Atlanta, GA",
		"Equipment: Van",
		"Weight: 42000 lbs",
		"Reference: LD-1007",
		"Please call or reply if interested.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestDefaultBodyUnknownFields(t *testing.T) {
	body := DefaultBody(model.Load{ID: 1, EquipmentType: ""})
	if !strings.Contains(body, "Lane: ?, ? to ?, ?") {
		t.Errorf("body = %q, want placeholder lane", body)
	}
	if !strings.Contains(body, "Equipment: Dry Van") {
		t.Errorf("body = %q, want default equipment", body)
	}
	if strings.Contains(body, "Weight:") {
		t.Errorf("body = %q, must omit unknown weight", body)
	}
}

func TestDefaultSubject(t *testing.T) {
	if got := DefaultSubject(vanLoad()); got != "Load Available: Dallas, TX to Atlanta, GA" {
		t.Errorf("subject = %q", got)
	}
	if got := DefaultSubject(model.Load{}); got != "Load Available" {
		t.Errorf("laneless subject = %q", got)
	}
}
