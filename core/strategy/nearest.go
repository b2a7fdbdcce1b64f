package strategy

import (
	"sort"

	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/core/sim"
)

// Nearest sends each idle drone to the closest customer that some
// warehouse can still serve.
type Nearest struct{}

// NewNearest returns the nearest-customer strategy.
func NewNearest() Nearest { return Nearest{} }

func (Nearest) Name() string { return "nearest" }

func (Nearest) Prepare(*sim.Simulation) error { return nil }

func (Nearest) Plan(s *sim.Simulation, now int) error {
	for _, d := range idleDrones(s) {
		loc, err := d.Location(now)
		if err != nil {
			return err
		}
		capacity, err := capacityOf(d, now)
		if err != nil {
			return err
		}
		for _, cust := range customersByDistance(s.Customers(), loc) {
			wh, avail := closestServingWarehouse(s.Warehouses(), cust)
			if wh == nil {
				continue
			}
			load := MaximalLoad(avail, capacity)
			if load.Empty() {
				continue
			}
			if err := s.Missions().SetLoadAndDeliverMission(d, wh, cust, load, now, true); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

// customersByDistance returns the customers with outstanding unbooked
// demand, closest to loc first. The sort is stable so equidistant
// customers keep their catalog order.
func customersByDistance(customers []*model.Node, loc model.Location) []*model.Node {
	var out []*model.Node
	for _, c := range customers {
		if c.Done() || c.PendingWeight() <= 0 {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return model.Distance(loc, out[i].Location()) < model.Distance(loc, out[j].Location())
	})
	return out
}
