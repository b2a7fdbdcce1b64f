package strategy

import (
	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/core/sim"
)

// RoundRobin partitions customers across the fleet once at setup and lets
// each drone work through its own list in order. Customer i goes to drone
// i mod fleet size, so the assignment is independent of the run itself.
type RoundRobin struct {
	service map[*model.Drone][]*model.Node
}

// NewRoundRobin returns the round-robin strategy.
func NewRoundRobin() *RoundRobin { return &RoundRobin{} }

func (r *RoundRobin) Name() string { return "roundrobin" }

func (r *RoundRobin) Prepare(s *sim.Simulation) error {
	r.service = make(map[*model.Drone][]*model.Node)
	drones := s.Drones()
	for i, c := range s.Customers() {
		d := drones[i%len(drones)]
		r.service[d] = append(r.service[d], c)
	}
	return nil
}

func (r *RoundRobin) Plan(s *sim.Simulation, now int) error {
	for _, d := range idleDrones(s) {
		cust := r.nextCustomer(d)
		if cust == nil {
			continue
		}
		wh, avail := closestServingWarehouse(s.Warehouses(), cust)
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

// nextCustomer returns the drone's first assigned customer that still has
// an outstanding order.
func (r *RoundRobin) nextCustomer(d *model.Drone) *model.Node {
	for _, c := range r.service[d] {
		if !c.Done() {
			return c
		}
	}
	return nil
}
