package outreach

import (
	"time"

	"github.com/freightops/loadmatch/core/model"
)

// MessageStatus is the lifecycle state of an OutreachMessage.
// QUEUED -> (DRY_RUN | SENT | PARTIAL | FAILED); all four targets are
// terminal. The final status is a pure function of the recipient outcomes
// and is persisted exactly once, after all recipient updates complete.
type MessageStatus int

const (
	StatusQueued MessageStatus = iota
	StatusDryRun
	StatusSent
	StatusPartial
	StatusFailed
)

// String returns the persisted representation of the status.
func (s MessageStatus) String() string {
	switch s {
	case StatusQueued:
		return "QUEUED"
	case StatusDryRun:
		return "DRY_RUN"
	case StatusSent:
		return "SENT"
	case StatusPartial:
		return "PARTIAL"
	case StatusFailed:
		return "FAILED"
	default:
		return "unknown"
	}
}

// ParseMessageStatus maps a stored string back to a status. Anything
// unrecognized parses as QUEUED.
func ParseMessageStatus(s string) MessageStatus {
	switch s {
	case "DRY_RUN":
		return StatusDryRun
	case "SENT":
		return StatusSent
	case "PARTIAL":
		return StatusPartial
	case "FAILED":
		return StatusFailed
	default:
		return StatusQueued
	}
}

// RecipientStatus is the per-recipient delivery state.
type RecipientStatus int

const (
	RecipientPending RecipientStatus = iota
	RecipientSent
	RecipientFailed
)

// String returns the persisted representation of the status.
func (s RecipientStatus) String() string {
	switch s {
	case RecipientPending:
		return "PENDING"
	case RecipientSent:
		return "SENT"
	case RecipientFailed:
		return "FAILED"
	default:
		return "unknown"
	}
}

// ParseRecipientStatus maps a stored string back to a status. Anything
// unrecognized parses as PENDING.
func ParseRecipientStatus(s string) RecipientStatus {
	switch s {
	case "SENT":
		return RecipientSent
	case "FAILED":
		return RecipientFailed
	default:
		return RecipientPending
	}
}

// Message is one dispatch attempt for one load over one channel.
type Message struct {
	ID        int64         `json:"id"`
	VentureID int64         `json:"venture_id"`
	LoadID    int64         `json:"load_id"`
	Channel   model.Channel `json:"channel"`
	Subject   string        `json:"subject,omitempty"`
	Body      string        `json:"body"`
	CreatedBy string        `json:"created_by"`
	Provider  string        `json:"provider"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Recipient is one addressed copy of a Message to one carrier. Exactly one
// of ToEmail/ToPhone is populated, matching the message channel.
type Recipient struct {
	ID        int64           `json:"id"`
	MessageID int64           `json:"message_id"`
	CarrierID int64           `json:"carrier_id"`
	ToEmail   string          `json:"to_email,omitempty"`
	ToPhone   string          `json:"to_phone,omitempty"`
	Status    RecipientStatus `json:"status"`
	Error     string          `json:"error,omitempty"`
}

// FinalStatus computes the terminal message status from recipient outcome
// counts: FAILED when nothing succeeded, SENT when everything did, PARTIAL
// otherwise.
func FinalStatus(sent, failed int) MessageStatus {
	switch {
	case sent == 0:
		return StatusFailed
	case failed == 0:
		return StatusSent
	default:
		return StatusPartial
	}
}
