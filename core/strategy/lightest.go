package strategy

import (
	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/core/sim"
)

// Lightest serves the customer with the smallest remaining unbooked demand
// weight first, banking the cheap completions while their score is high.
type Lightest struct{}

// NewLightest returns the lightest-demand-first strategy.
func NewLightest() Lightest { return Lightest{} }

func (Lightest) Name() string { return "lightest" }

func (Lightest) Prepare(*sim.Simulation) error { return nil }

func (Lightest) Plan(s *sim.Simulation, now int) error {
	for _, d := range idleDrones(s) {
		cust := lightestPendingCustomer(s.Customers())
		if cust == nil {
			continue
		}
		wh, avail := bestStockedWarehouse(s.Warehouses(), cust)
		if wh == nil {
			continue
		}
		capacity, err := capacityOf(d, now)
		if err != nil {
			return err
		}
		load := MaximalLoad(avail, capacity)
		if load.Empty() {
			continue
		}
		if err := s.Missions().SetLoadAndDeliverMission(d, wh, cust, load, now, true); err != nil {
			return err
		}
	}
	return nil
}

func lightestPendingCustomer(customers []*model.Node) *model.Node {
	var best *model.Node
	bestW := 0
	for _, c := range customers {
		if c.Done() {
			continue
		}
		w := c.PendingWeight()
		if w <= 0 {
			continue
		}
		if best == nil || w < bestW {
			best, bestW = c, w
		}
	}
	return best
}
