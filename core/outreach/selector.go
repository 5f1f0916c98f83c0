package outreach

import (
	"context"
	"fmt"

	"github.com/freightops/loadmatch/core/model"
)

// EligibilitySource yields the hard-eligible carriers for a load. The
// matching engine implements it; selection always re-derives eligibility
// rather than trusting a stale scoring run.
type EligibilitySource interface {
	Eligible(ctx context.Context, load model.Load) ([]model.Carrier, error)
}

// Selector validates a caller-proposed recipient list against the
// re-derived eligible set for a load. Validation is fail-closed: any
// proposed carrier outside the eligible set rejects the whole request.
type Selector struct {
	eligible EligibilitySource
}

// NewSelector creates a recipient selector.
func NewSelector(eligible EligibilitySource) (*Selector, error) {
	if eligible == nil {
		return nil, fmt.Errorf("outreach: nil parameter provided to NewSelector")
	}
	return &Selector{eligible: eligible}, nil
}

// Select returns the carriers to address for the load on the channel.
// The proposed list is checked against the cap before anything else, then
// against the freshly derived eligible set; carriers without an address on
// the channel are dropped silently, and zero survivors is an error.
// Proposed order is preserved; duplicate ids collapse to one recipient.
func (s *Selector) Select(ctx context.Context, load model.Load, ch model.Channel, proposed []int64, cap int) ([]model.Carrier, error) {
	if len(proposed) == 0 {
		return nil, ErrNoValidRecipients
	}
	if cap > 0 && len(proposed) > cap {
		return nil, &CapExceededError{Channel: ch, Cap: cap, Requested: len(proposed)}
	}

	eligible, err := s.eligible.Eligible(ctx, load)
	if err != nil {
		return nil, fmt.Errorf("eligible carriers for load %d: %w", load.ID, err)
	}
	byID := make(map[int64]model.Carrier, len(eligible))
	for _, c := range eligible {
		byID[c.ID] = c
	}

	var invalid []int64
	seen := make(map[int64]bool, len(proposed))
	selected := make([]model.Carrier, 0, len(proposed))
	for _, id := range proposed {
		if seen[id] {
			continue
		}
		seen[id] = true
		c, ok := byID[id]
		if !ok {
			invalid = append(invalid, id)
			continue
		}
		if c.AddressFor(ch) == "" {
			continue
		}
		selected = append(selected, c)
	}
	if len(invalid) > 0 {
		return nil, &IneligibleRecipientsError{CarrierIDs: invalid}
	}
	if len(selected) == 0 {
		return nil, ErrNoValidRecipients
	}
	return selected, nil
}
