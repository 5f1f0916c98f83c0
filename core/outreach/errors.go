package outreach

import (
	"errors"
	"fmt"

	"github.com/freightops/loadmatch/core/model"
)

var (
	// ErrConfirmRequired rejects requests without the explicit confirm flag.
	// This is an anti-accidental-send guard checked before any other
	// validation.
	ErrConfirmRequired = errors.New("outreach: send requires explicit confirmation")

	// ErrNoValidRecipients rejects requests where no proposed carrier is
	// contactable on the requested channel.
	ErrNoValidRecipients = errors.New("outreach: no valid recipients")

	// ErrLoadNotFound is returned by LoadSource implementations.
	ErrLoadNotFound = errors.New("outreach: load not found")

	// ErrEmptyBody rejects requests with no message body and no load to
	// template one from.
	ErrEmptyBody = errors.New("outreach: message body is required")
)

// CapExceededError rejects a proposed recipient list larger than the
// channel cap, before any further processing.
type CapExceededError struct {
	Channel   model.Channel
	Cap       int
	Requested int
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("outreach: %d recipients exceed the %s cap of %d", e.Requested, e.Channel, e.Cap)
}

// IneligibleRecipientsError reports proposed carriers outside the eligible
// set. The whole request is rejected; there is no partial dispatch.
type IneligibleRecipientsError struct {
	CarrierIDs []int64
}

func (e *IneligibleRecipientsError) Error() string {
	return fmt.Sprintf("outreach: %d carrier(s) are not eligible for this load: %v", len(e.CarrierIDs), e.CarrierIDs)
}
