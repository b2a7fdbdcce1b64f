package strategy

import (
	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/core/sim"
)

// Combined minimises the full trip length, the drone-to-warehouse hop plus
// the warehouse-to-customer hop, over every pair that can produce a
// non-empty load.
type Combined struct{}

// NewCombined returns the shortest-combined-path strategy.
func NewCombined() Combined { return Combined{} }

func (Combined) Name() string { return "combined" }

func (Combined) Prepare(*sim.Simulation) error { return nil }

func (Combined) Plan(s *sim.Simulation, now int) error {
	for _, d := range idleDrones(s) {
		loc, err := d.Location(now)
		if err != nil {
			return err
		}
		capacity, err := capacityOf(d, now)
		if err != nil {
			return err
		}

		var (
			bestWh   *model.Node
			bestCust *model.Node
			bestLoad *model.Order
			bestDist int
		)
		for _, wh := range s.Warehouses() {
			toWh := model.Distance(loc, wh.Location())
			for _, cust := range s.Customers() {
				if cust.Done() {
					continue
				}
				avail := wh.AvailableOrder(cust.ProductsMinusBookings())
				if avail.Empty() {
					continue
				}
				load := MaximalLoad(avail, capacity)
				if load.Empty() {
					continue
				}
				total := toWh + model.Distance(wh.Location(), cust.Location())
				if bestWh == nil || total < bestDist {
					bestWh, bestCust, bestLoad, bestDist = wh, cust, load, total
				}
			}
		}
		if bestWh == nil {
			continue
		}
		if err := s.Missions().SetLoadAndDeliverMission(d, bestWh, bestCust, bestLoad, now, true); err != nil {
			return err
		}
	}
	return nil
}
