package events

import "github.com/freightops/loadmatch/core/model"

// SendEvent is published once per outreach dispatch attempt, dry-run
// included.
type SendEvent struct {
	MessageID  int64
	LoadID     int64
	Channel    model.Channel
	DryRun     bool
	Sent       int
	Failed     int
	Recipients int
}
