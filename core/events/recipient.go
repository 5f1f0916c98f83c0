package events

import "github.com/freightops/loadmatch/core/model"

// RecipientEvent is published for each recipient once its transport result
// is reconciled.
type RecipientEvent struct {
	MessageID int64
	CarrierID int64
	Channel   model.Channel
	Sent      bool
	Err       string
}
