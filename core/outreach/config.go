package outreach

import (
	"fmt"

	"github.com/freightops/loadmatch/core/model"
)

// Default channel caps. A single message never addresses more recipients
// than the cap for its channel.
const (
	DefaultSMSRecipientCap   = 50
	DefaultEmailRecipientCap = 200
)

// Config defines dispatch-related settings. It is passed explicitly into
// the dispatcher constructor so tests can inject values without
// process-wide mutation.
type Config struct {
	// DryRun short-circuits real sends: validation and row creation still
	// happen, the transport is never invoked.
	DryRun bool `json:"dry_run"`

	SMSRecipientCap   int `json:"sms_recipient_cap"`
	EmailRecipientCap int `json:"email_recipient_cap"`

	// Provider names recorded on the message row.
	EmailProvider string `json:"email_provider"`
	SMSProvider   string `json:"sms_provider"`

	// Sender identity handed to the transports.
	FromEmail  string `json:"from_email"`
	FromName   string `json:"from_name"`
	FromNumber string `json:"from_number"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.SMSRecipientCap == 0 {
		c.SMSRecipientCap = DefaultSMSRecipientCap
	}
	if c.EmailRecipientCap == 0 {
		c.EmailRecipientCap = DefaultEmailRecipientCap
	}
	if c.EmailProvider == "" {
		c.EmailProvider = "sendgrid"
	}
	if c.SMSProvider == "" {
		c.SMSProvider = "twilio"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.SMSRecipientCap <= 0 || c.EmailRecipientCap <= 0 {
		return fmt.Errorf("recipient caps must be positive")
	}
	return nil
}

// Cap returns the recipient cap for the channel.
func (c Config) Cap(ch model.Channel) int {
	if ch == model.ChannelSMS {
		return c.SMSRecipientCap
	}
	return c.EmailRecipientCap
}

// Provider returns the provider name recorded for the channel.
func (c Config) Provider(ch model.Channel) string {
	if ch == model.ChannelSMS {
		return c.SMSProvider
	}
	return c.EmailProvider
}
