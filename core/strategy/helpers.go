package strategy

import (
	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/core/sim"
)

// idleDrones returns the drones without a mission, in index order.
func idleDrones(s *sim.Simulation) []*model.Drone {
	var out []*model.Drone
	for _, d := range s.Drones() {
		if !s.Missions().InMission(d) {
			out = append(out, d)
		}
	}
	return out
}

// capacityOf returns the drone's remaining payload capacity at now.
func capacityOf(d *model.Drone, now int) (int, error) {
	carried, err := d.Carried(now)
	if err != nil {
		return 0, err
	}
	return d.MaxWeight() - carried.Weight(), nil
}

// closestServingWarehouse returns the warehouse nearest to the customer
// whose unbooked stock overlaps the customer's unbooked demand, together
// with the overlap. Returns nil when no warehouse can serve anything.
func closestServingWarehouse(warehouses []*model.Node, customer *model.Node) (*model.Node, *model.Order) {
	var (
		best      *model.Node
		bestAvail *model.Order
		bestDist  int
	)
	pending := customer.ProductsMinusBookings()
	for _, wh := range warehouses {
		avail := wh.AvailableOrder(pending)
		if avail.Empty() {
			continue
		}
		d := model.Distance(wh.Location(), customer.Location())
		if best == nil || d < bestDist {
			best, bestAvail, bestDist = wh, avail, d
		}
	}
	return best, bestAvail
}

// bestStockedWarehouse prefers the warehouse closest to the customer,
// breaking distance ties by the larger available overlap.
func bestStockedWarehouse(warehouses []*model.Node, customer *model.Node) (*model.Node, *model.Order) {
	var (
		best      *model.Node
		bestAvail *model.Order
		bestDist  int
		bestW     int
	)
	pending := customer.ProductsMinusBookings()
	for _, wh := range warehouses {
		avail := wh.AvailableOrder(pending)
		if avail.Empty() {
			continue
		}
		dist := model.Distance(wh.Location(), customer.Location())
		w := avail.Weight()
		if best == nil || dist < bestDist || (dist == bestDist && w > bestW) {
			best, bestAvail, bestDist, bestW = wh, avail, dist, w
		}
	}
	return best, bestAvail
}

// nearestStockedWarehouse returns the warehouse nearest to loc that still
// has unbooked stock.
func nearestStockedWarehouse(warehouses []*model.Node, loc model.Location) *model.Node {
	var best *model.Node
	bestDist := 0
	for _, wh := range warehouses {
		if wh.ProductsMinusBookings().Empty() {
			continue
		}
		d := model.Distance(wh.Location(), loc)
		if best == nil || d < bestDist {
			best, bestDist = wh, d
		}
	}
	return best
}
