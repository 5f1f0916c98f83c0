package matching

import (
	"context"

	"github.com/freightops/loadmatch/core/model"
)

// CarrierSource retrieves the carrier pool considered for a load. The pool
// may be pre-narrowed by tenant; hard eligibility is applied on top by the
// engine, never assumed from the source.
type CarrierSource interface {
	CarrierPool(ctx context.Context, load model.Load) ([]model.Carrier, error)
}

// LaneSource answers lane-preference lookups.
type LaneSource interface {
	// HasPreferredLane reports whether the carrier declared a preference
	// for the exact lane.
	HasPreferredLane(ctx context.Context, carrierID int64, lane model.Lane) (bool, error)
	// ShipperBonus returns the configured bonus for the shipper on the
	// exact lane, or nil when none is declared.
	ShipperBonus(ctx context.Context, shipperID int64, lane model.Lane) (*float64, error)
}

// CarrierFilter reduces a carrier pool to the subset allowed to haul a load.
type CarrierFilter interface {
	Filter(carriers []model.Carrier, load model.Load) []model.Carrier
}
