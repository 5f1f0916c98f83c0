package matching

// Reason strings are rendered verbatim by callers and parsed by downstream
// tooling. The vocabulary is a closed set: changing any wording is a
// breaking change.
const (
	ReasonPreferredLane = "Preferred lane match (carrier)"
	ReasonShipperBonus  = "Shipper bonus applied"
	ReasonHighOnTime    = "High on-time performance"
	ReasonCapacity      = "Capacity suitable"
)

// Reasons lists the full vocabulary in emission order.
func Reasons() []string {
	return []string{
		ReasonPreferredLane,
		ReasonShipperBonus,
		ReasonHighOnTime,
		ReasonCapacity,
	}
}
