package cmd

import (
	"github.com/freightops/loadmatch/core/model"
	"github.com/freightops/loadmatch/infra/store"
)

// seedFixtures populates the store with a demo lane, load and carrier pool
// and returns the load.
func seedFixtures(st *store.MemoryStore) model.Load {
	lane := model.Lane{OriginCity: "Dallas", OriginState: "TX", DestCity: "Atlanta", DestState: "GA"}
	miles := 780.0
	onTime := 94.0
	units := 18
	recent := 25

	load := model.Load{
		ID:            1,
		Reference:     "LD-1001",
		VentureID:     1,
		Lane:          lane,
		Miles:         &miles,
		EquipmentType: "Van",
	}
	st.AddLoad(load)

	st.AddCarrier(model.Carrier{
		ID: 1, Name: "Lone Star Freight", Active: true,
		Authorization:  model.AuthAuthorized,
		EquipmentTypes: []string{"Van", "Reefer"},
		OnTimePct:      &onTime, PowerUnits: &units, RecentLoads: &recent,
		Email: "ops@lonestar.example", Phone: "+15550100001",
	})
	st.AddCarrier(model.Carrier{
		ID: 2, Name: "Peach State Logistics", Active: true,
		EquipmentTypes: []string{"Van"},
		Email:          "dispatch@peachstate.example", Phone: "+15550100002",
	})
	st.AddCarrier(model.Carrier{
		ID: 3, Name: "Blocked Carriers Co", Active: true, Blocked: true,
		EquipmentTypes: []string{"Van"},
		Email:          "no@blocked.example",
	})
	st.SetPreferredLane(2, lane)

	return load
}
