package outreach

import (
	"context"

	"github.com/freightops/loadmatch/core/model"
)

// Result is the per-recipient outcome of a batch transport call.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BatchMessage is the channel-agnostic payload handed to a transport.
type BatchMessage struct {
	Subject  string
	Body     string
	From     string
	FromName string
}

// Transport delivers one message to a batch of addresses over a channel.
// Implementations return one Result per input address, in input order. The
// call is treated as atomic-in, array-out: the dispatcher never retries
// individual recipients within a call.
type Transport interface {
	SendBatch(ctx context.Context, ch model.Channel, msg BatchMessage, addresses []string) ([]Result, error)
}

// Store persists outreach messages and recipients. The backing store is
// responsible for row-level atomicity; no application-level locking is
// assumed or required.
type Store interface {
	// CreateMessage inserts the message and assigns its ID.
	CreateMessage(ctx context.Context, m *Message) error
	// CreateRecipients inserts all recipient rows and assigns their IDs.
	CreateRecipients(ctx context.Context, recipients []*Recipient) error
	// UpdateRecipient sets the terminal status and error text of one row.
	UpdateRecipient(ctx context.Context, id int64, status RecipientStatus, errText string) error
	// UpdateMessageStatus sets the terminal status of a message.
	UpdateMessageStatus(ctx context.Context, id int64, status MessageStatus) error
	// Message retrieves one message.
	Message(ctx context.Context, id int64) (Message, error)
	// Recipients lists the recipient rows of a message.
	Recipients(ctx context.Context, messageID int64) ([]Recipient, error)
}

// LoadSource retrieves loads for dispatch. Implementations return
// ErrLoadNotFound for unknown ids.
type LoadSource interface {
	Load(ctx context.Context, id int64) (model.Load, error)
}
