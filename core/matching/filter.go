package matching

import "github.com/freightops/loadmatch/core/model"

// HardEligibilityFilter excludes carriers that are legally or operationally
// unable to haul a load: inactive, blocked, disqualified, explicitly
// not-authorized, or lacking the required equipment. An unknown
// authorization status does not exclude. The filter is pure and
// deduplicates carriers by id.
type HardEligibilityFilter struct{}

// Filter implements CarrierFilter.
func (HardEligibilityFilter) Filter(carriers []model.Carrier, load model.Load) []model.Carrier {
	var out []model.Carrier
	seen := make(map[int64]bool, len(carriers))
	for _, c := range carriers {
		if seen[c.ID] {
			continue
		}
		if !c.Active || c.Blocked || c.Disqualified {
			continue
		}
		if c.Authorization == model.AuthNotAuthorized {
			continue
		}
		if !c.HasEquipment(load.EquipmentType) {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}
