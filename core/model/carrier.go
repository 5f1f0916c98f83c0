package model

import (
	"fmt"
	"strings"
)

// AuthorizationStatus is the regulatory-authorization state of a carrier.
// The zero value is AuthUnknown: absence of data is not a disqualification,
// only an explicit AuthNotAuthorized excludes a carrier from matching.
type AuthorizationStatus int

const (
	AuthUnknown AuthorizationStatus = iota
	AuthAuthorized
	AuthNotAuthorized
)

// String returns a human-readable representation of the status.
func (s AuthorizationStatus) String() string {
	switch s {
	case AuthAuthorized:
		return "authorized"
	case AuthNotAuthorized:
		return "not-authorized"
	default:
		return "unknown"
	}
}

// ParseAuthorizationStatus maps a stored string back to a status. Anything
// unrecognized parses as AuthUnknown.
func ParseAuthorizationStatus(s string) AuthorizationStatus {
	switch s {
	case "authorized":
		return AuthAuthorized
	case "not-authorized":
		return AuthNotAuthorized
	default:
		return AuthUnknown
	}
}

// Carrier represents a transport provider. Carriers are long-lived reference
// data; the engine only reads them. Optional statistics are pointers so a
// missing value is distinguishable from zero; the accessor methods implement
// the neutral-contribution policy for scoring.
type Carrier struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Active        bool                `json:"active"`
	Blocked       bool                `json:"blocked"`
	Disqualified  bool                `json:"disqualified"`
	Authorization AuthorizationStatus `json:"authorization"`

	// EquipmentTypes lists the equipment the carrier can haul, e.g.
	// "Dry Van", "Reefer". Comparison is case-insensitive.
	EquipmentTypes []string `json:"equipment_types"`

	OnTimePct   *float64 `json:"on_time_pct,omitempty"`
	PowerUnits  *int     `json:"power_units,omitempty"`
	RecentLoads *int     `json:"recent_loads,omitempty"`

	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Validate checks that the carrier record is sound.
func (c Carrier) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("carrier id must be positive")
	}
	return nil
}

// HasEquipment reports whether the carrier supports the given equipment type.
func (c Carrier) HasEquipment(equipment string) bool {
	for _, e := range c.EquipmentTypes {
		if strings.EqualFold(strings.TrimSpace(e), strings.TrimSpace(equipment)) {
			return true
		}
	}
	return false
}

// OnTime returns the on-time percentage, or 0 when unknown.
func (c Carrier) OnTime() float64 {
	if c.OnTimePct == nil {
		return 0
	}
	return *c.OnTimePct
}

// HasOnTime reports whether on-time statistics exist for the carrier.
func (c Carrier) HasOnTime() bool { return c.OnTimePct != nil }

// Units returns the fleet size in power units, or 0 when unknown.
func (c Carrier) Units() float64 {
	if c.PowerUnits == nil {
		return 0
	}
	return float64(*c.PowerUnits)
}

// Recent returns the recent completed-load count, or 0 when unknown.
func (c Carrier) Recent() float64 {
	if c.RecentLoads == nil {
		return 0
	}
	return float64(*c.RecentLoads)
}

// AddressFor returns the destination address for the given channel, or an
// empty string if the carrier is not contactable on it.
func (c Carrier) AddressFor(ch Channel) string {
	switch ch {
	case ChannelEmail:
		return c.Email
	case ChannelSMS:
		return c.Phone
	default:
		return ""
	}
}
