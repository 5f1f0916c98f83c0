package outreach

import (
	"fmt"
	"strings"

	"github.com/freightops/loadmatch/core/model"
)

// DefaultSubject returns the email subject used when the caller supplies
// none. SMS messages carry no subject.
func DefaultSubject(load model.Load) string {
	if !hasLane(load) {
		return "Load Available"
	}
	return fmt.Sprintf("Load Available: %s", laneText(load))
}

// DefaultBody renders a coverage-request body from the load when the caller
// supplies none.
func DefaultBody(load model.Load) string {
	var b strings.Builder
	b.WriteString("Hi, we have a load available:\n\n")
	fmt.Fprintf(&b, "Lane: %s\n", laneText(load))
	equipment := load.EquipmentType
	if equipment == "" {
		equipment = "Dry Van"
	}
	fmt.Fprintf(&b, "Equipment: %s\n", equipment)
	if load.WeightLbs != nil && *load.WeightLbs > 0 {
		fmt.Fprintf(&b, "Weight: %d lbs\n", *load.WeightLbs)
	}
	if load.Miles != nil && *load.Miles > 0 {
		fmt.Fprintf(&b, "Distance: %.0f miles\n", *load.Miles)
	}
	if load.Reference != "" {
		fmt.Fprintf(&b, "Reference: %s\n", load.Reference)
	}
	b.WriteString("\nPlease call or reply if interested. Thanks!")
	return b.String()
}

func hasLane(load model.Load) bool {
	return load.Lane.OriginCity != "" || load.Lane.DestCity != ""
}

func laneText(load model.Load) string {
	l := load.Lane
	return fmt.Sprintf("%s, %s to %s, %s",
		orQuestion(l.OriginCity), orQuestion(l.OriginState),
		orQuestion(l.DestCity), orQuestion(l.DestState))
}

func orQuestion(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
