package matching

import "testing"

// The reason vocabulary is an external contract: these exact strings are
// rendered and parsed by consumers. Any wording change must fail here.
func TestReasonStringsArePinned(t *testing.T) {
	want := map[string]string{
		"preferred lane": "Preferred lane match (carrier)",
		"shipper bonus":  "Shipper bonus applied",
		"high on-time":   "High on-time performance",
		"capacity":       "Capacity suitable",
	}
	got := map[string]string{
		"preferred lane": ReasonPreferredLane,
		"shipper bonus":  ReasonShipperBonus,
		"high on-time":   ReasonHighOnTime,
		"capacity":       ReasonCapacity,
	}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("%s reason changed: %q != %q", k, got[k], w)
		}
	}
	if len(Reasons()) != 4 {
		t.Errorf("reason vocabulary size changed: %d", len(Reasons()))
	}
}
