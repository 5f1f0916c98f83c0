// Package events defines the matching and outreach events emitted on the
// event bus.
//
// Available event types:
//   - MatchEvent: a scoring pass completed for a load
//   - SendEvent: an outreach dispatch attempt finished
//   - RecipientEvent: per-recipient transport outcome
package events
