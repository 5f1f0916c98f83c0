package matching

import "github.com/freightops/loadmatch/core/model"

// Breakdown holds the per-component contributions of a match score.
type Breakdown struct {
	Lane         float64 `json:"lane"`
	ShipperBonus float64 `json:"shipper_bonus"`
	Reliability  float64 `json:"reliability"`
	Capacity     float64 `json:"capacity"`
}

// Match is the scoring output for a single eligible carrier.
type Match struct {
	CarrierID   int64     `json:"carrier_id"`
	CarrierName string    `json:"carrier_name"`
	Total       float64   `json:"total"`
	Components  Breakdown `json:"components"`
	Reasons     []string  `json:"reasons"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
}

// Scorer computes a weighted multi-component score for an eligible carrier.
// Weights are tunable via configuration; the defaults below are the
// documented policy. Missing optional carrier statistics contribute zero
// through the model accessors, never an error.
type Scorer struct {
	// LaneBonus is the flat contribution for an exact preferred-lane match.
	LaneBonus float64 `json:"lane_bonus"`
	// ReliabilityWeight scales the on-time percentage (0..100).
	ReliabilityWeight float64 `json:"reliability_weight"`
	// HighOnTimeThreshold is the exact on-time percentage at which the
	// "High on-time performance" reason fires (inclusive).
	HighOnTimeThreshold float64 `json:"high_on_time_threshold"`
	// UnitWeight and UnitCap bound the fleet-size contribution.
	UnitWeight float64 `json:"unit_weight"`
	UnitCap    float64 `json:"unit_cap"`
	// RecentWeight and RecentCap bound the recent-deliveries contribution.
	RecentWeight float64 `json:"recent_weight"`
	RecentCap    float64 `json:"recent_cap"`
	// CapacityReasonMin is the capacity component value at which the
	// "Capacity suitable" reason fires (inclusive).
	CapacityReasonMin float64 `json:"capacity_reason_min"`
}

// NewScorer returns a scorer with the default weights.
func NewScorer() Scorer {
	return Scorer{
		LaneBonus:           40,
		ReliabilityWeight:   0.5,
		HighOnTimeThreshold: 90,
		UnitWeight:          1.5,
		UnitCap:             30,
		RecentWeight:        1,
		RecentCap:           20,
		CapacityReasonMin:   20,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Score computes the total score, component breakdown and reasons for one
// carrier. laneMatch and shipperBonus are the lane-preference lookups for
// the load being scored; a nil shipperBonus means no bonus is declared.
// The reason list order is fixed so repeated runs produce identical output.
func (s Scorer) Score(c model.Carrier, laneMatch bool, shipperBonus *float64) Match {
	var b Breakdown
	reasons := make([]string, 0, 4)

	if laneMatch {
		b.Lane = s.LaneBonus
		reasons = append(reasons, ReasonPreferredLane)
	}
	if shipperBonus != nil && *shipperBonus > 0 {
		b.ShipperBonus = *shipperBonus
		reasons = append(reasons, ReasonShipperBonus)
	}

	onTime := clamp(c.OnTime(), 0, 100)
	b.Reliability = onTime * s.ReliabilityWeight
	if c.HasOnTime() && onTime >= s.HighOnTimeThreshold {
		reasons = append(reasons, ReasonHighOnTime)
	}

	b.Capacity = clamp(c.Units()*s.UnitWeight, 0, s.UnitCap) +
		clamp(c.Recent()*s.RecentWeight, 0, s.RecentCap)
	if b.Capacity >= s.CapacityReasonMin {
		reasons = append(reasons, ReasonCapacity)
	}

	total := b.Lane + b.ShipperBonus + b.Reliability + b.Capacity
	if total < 0 {
		total = 0
	}
	return Match{
		CarrierID:   c.ID,
		CarrierName: c.Name,
		Total:       total,
		Components:  b,
		Reasons:     reasons,
		Email:       c.Email,
		Phone:       c.Phone,
	}
}
