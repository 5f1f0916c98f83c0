package model

import "fmt"

// Lane identifies an origin/destination pair used for preference lookups.
// Matching on a lane is exact on city and state, never fuzzy.
type Lane struct {
	OriginCity  string `json:"origin_city"`
	OriginState string `json:"origin_state"`
	DestCity    string `json:"dest_city"`
	DestState   string `json:"dest_state"`
}

// String returns a human-readable representation such as
// "Dallas, TX -> Atlanta, GA".
func (l Lane) String() string {
	return fmt.Sprintf("%s, %s -> %s, %s", l.OriginCity, l.OriginState, l.DestCity, l.DestState)
}

// Load represents a shipment needing carrier coverage. Loads are read-only
// input for matching: nothing in the engine mutates them.
type Load struct {
	ID            int64    `json:"id"`
	Reference     string   `json:"reference"`
	VentureID     int64    `json:"venture_id"`
	ShipperID     *int64   `json:"shipper_id,omitempty"`
	Lane          Lane     `json:"lane"`
	Miles         *float64 `json:"miles,omitempty"`
	EquipmentType string   `json:"equipment_type"`
	WeightLbs     *int     `json:"weight_lbs,omitempty"`
}

// Validate checks that the load carries the fields matching depends on.
func (l Load) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("load id must be positive")
	}
	if l.EquipmentType == "" {
		return fmt.Errorf("load %d has no equipment type", l.ID)
	}
	return nil
}
