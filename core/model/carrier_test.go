package model

import (
	"encoding/json"
	"testing"
)

func TestCarrier_HasEquipment(t *testing.T) {
	c := Carrier{ID: 1, EquipmentTypes: []string{"Dry Van", "Reefer "}}
	if !c.HasEquipment("dry van") {
		t.Errorf("expected case-insensitive equipment match")
	}
	if !c.HasEquipment("Reefer") {
		t.Errorf("expected trimmed equipment match")
	}
	if c.HasEquipment("Flatbed") {
		t.Errorf("did not expect Flatbed to match")
	}
}

func TestCarrier_NeutralAccessors(t *testing.T) {
	c := Carrier{ID: 2}
	if c.OnTime() != 0 || c.Units() != 0 || c.Recent() != 0 {
		t.Fatalf("missing stats must contribute zero, got %v %v %v", c.OnTime(), c.Units(), c.Recent())
	}
	if c.HasOnTime() {
		t.Fatalf("HasOnTime must be false without data")
	}
	pct := 92.5
	units := 12
	c.OnTimePct = &pct
	c.PowerUnits = &units
	if c.OnTime() != 92.5 || c.Units() != 12 {
		t.Fatalf("unexpected accessor values: %v %v", c.OnTime(), c.Units())
	}
}

func TestCarrier_AddressFor(t *testing.T) {
	c := Carrier{ID: 3, Email: "ops@acme.test", Phone: "+15550001111"}
	if got := c.AddressFor(ChannelEmail); got != "ops@acme.test" {
		t.Errorf("email address: got %q", got)
	}
	if got := c.AddressFor(ChannelSMS); got != "+15550001111" {
		t.Errorf("sms address: got %q", got)
	}
	if got := (Carrier{}).AddressFor(ChannelSMS); got != "" {
		t.Errorf("expected empty address, got %q", got)
	}
}

func TestChannel_JSONRoundTrip(t *testing.T) {
	for _, ch := range []Channel{ChannelEmail, ChannelSMS} {
		b, err := json.Marshal(ch)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got Channel
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got != ch {
			t.Errorf("round trip changed channel: %v != %v", got, ch)
		}
	}
	var ch Channel
	if err := json.Unmarshal([]byte(`"fax"`), &ch); err == nil {
		t.Errorf("expected error for unknown channel")
	}
}

func TestAuthorizationStatus_String(t *testing.T) {
	if AuthUnknown.String() != "unknown" || AuthNotAuthorized.String() != "not-authorized" {
		t.Fatalf("unexpected status strings: %s %s", AuthUnknown, AuthNotAuthorized)
	}
}
