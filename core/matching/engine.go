package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/freightops/loadmatch/core/events"
	"github.com/freightops/loadmatch/core/model"
	"github.com/freightops/loadmatch/infra/logger"
	"github.com/freightops/loadmatch/internal/eventbus"
)

// MatchResult is the outcome of one scoring pass over a carrier pool.
type MatchResult struct {
	LoadID          int64        `json:"load_id"`
	Matches         []Match      `json:"matches"`
	TotalCandidates int          `json:"total_candidates"`
	Summary         ScoreSummary `json:"summary"`
}

// Engine runs the eligibility filter and scorer over a carrier pool and
// produces a deterministically ranked list. A single pass is computed
// sequentially so tie-breaking order is reproducible; independent loads may
// be matched concurrently.
type Engine struct {
	carriers CarrierSource
	lanes    LaneSource
	filter   CarrierFilter
	scorer   Scorer
	log      logger.Logger
	bus      eventbus.EventBus
}

// NewEngine creates a matching engine. bus may be nil; when set, every
// completed pass is published as an events.MatchEvent for bus subscribers
// (the metrics event collector among them) to consume.
func NewEngine(carriers CarrierSource, lanes LaneSource, filter CarrierFilter, scorer Scorer, log logger.Logger, bus eventbus.EventBus) (*Engine, error) {
	if carriers == nil || lanes == nil || filter == nil {
		return nil, fmt.Errorf("matching: nil parameter provided to NewEngine")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Engine{
		carriers: carriers,
		lanes:    lanes,
		filter:   filter,
		scorer:   scorer,
		log:      log,
		bus:      bus,
	}, nil
}

// Eligible returns the hard-eligible subset of the carrier pool for a load.
func (e *Engine) Eligible(ctx context.Context, load model.Load) ([]model.Carrier, error) {
	pool, err := e.carriers.CarrierPool(ctx, load)
	if err != nil {
		return nil, fmt.Errorf("carrier pool for load %d: %w", load.ID, err)
	}
	return e.filter.Filter(pool, load), nil
}

// Match scores the eligible carriers for the load and returns them ranked by
// total score descending, ties broken by carrier id ascending. limit > 0
// truncates the ranked list to the top N; TotalCandidates always reflects
// the full eligible set.
func (e *Engine) Match(ctx context.Context, load model.Load, limit int) (MatchResult, error) {
	if err := load.Validate(); err != nil {
		return MatchResult{}, err
	}
	pool, err := e.carriers.CarrierPool(ctx, load)
	if err != nil {
		return MatchResult{}, fmt.Errorf("carrier pool for load %d: %w", load.ID, err)
	}
	eligible := e.filter.Filter(pool, load)

	matches := make([]Match, 0, len(eligible))
	for _, c := range eligible {
		laneMatch, err := e.lanes.HasPreferredLane(ctx, c.ID, load.Lane)
		if err != nil {
			// A failed preference lookup degrades to a neutral signal.
			e.log.Warnf("preferred lane lookup for carrier %d: %v", c.ID, err)
			laneMatch = false
		}
		var bonus *float64
		if load.ShipperID != nil {
			bonus, err = e.lanes.ShipperBonus(ctx, *load.ShipperID, load.Lane)
			if err != nil {
				e.log.Warnf("shipper bonus lookup for shipper %d: %v", *load.ShipperID, err)
				bonus = nil
			}
		}
		matches = append(matches, e.scorer.Score(c, laneMatch, bonus))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Total != matches[j].Total {
			return matches[i].Total > matches[j].Total
		}
		return matches[i].CarrierID < matches[j].CarrierID
	})

	total := len(matches)
	summary := Summarize(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	e.log.Infof("matched load %d: %d candidates from pool of %d", load.ID, total, len(pool))
	if e.bus != nil {
		e.bus.Publish(events.MatchEvent{
			LoadID:     load.ID,
			PoolSize:   len(pool),
			Candidates: total,
			TopScore:   summary.Top,
			MeanScore:  summary.Mean,
		})
	}

	return MatchResult{
		LoadID:          load.ID,
		Matches:         matches,
		TotalCandidates: total,
		Summary:         summary,
	}, nil
}
