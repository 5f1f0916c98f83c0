package model

import (
	"encoding/json"
	"fmt"
)

// Channel is an outreach communication channel.
type Channel int

const (
	ChannelEmail Channel = iota
	ChannelSMS
)

// ParseChannel converts the wire representation ("email" or "sms").
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "email":
		return ChannelEmail, nil
	case "sms":
		return ChannelSMS, nil
	default:
		return 0, fmt.Errorf("unknown channel %q", s)
	}
}

// String returns the wire representation of the channel.
func (c Channel) String() string {
	switch c {
	case ChannelEmail:
		return "email"
	case ChannelSMS:
		return "sms"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the channel as its wire string.
func (c Channel) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes "email" or "sms".
func (c *Channel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	ch, err := ParseChannel(s)
	if err != nil {
		return err
	}
	*c = ch
	return nil
}
