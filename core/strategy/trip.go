package strategy

import (
	"fmt"

	"github.com/skyhaul/dronesim/core/mission"
	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/core/sim"
)

// tripLeg is one planned stop of a multi-customer warehouse trip.
type tripLeg struct {
	kind  mission.Kind
	node  *model.Node
	order *model.Order
}

// tripQueue holds planned but not yet issued legs per drone. Every leg of
// a trip is booked at planning time, so legs are issued one by one with
// booking disabled as the drone frees up.
type tripQueue struct {
	pending map[*model.Drone][]tripLeg
}

func newTripQueue() *tripQueue {
	return &tripQueue{pending: make(map[*model.Drone][]tripLeg)}
}

// push books every leg of the trip and appends it to the drone's queue.
// The amounts were computed from booking-adjusted availability this same
// tick, so a booking failure here is a planner bug and aborts the run.
func (q *tripQueue) push(d *model.Drone, legs []tripLeg) error {
	for _, leg := range legs {
		if err := leg.node.BookMore(leg.order); err != nil {
			return err
		}
	}
	q.pending[d] = append(q.pending[d], legs...)
	return nil
}

// issueNext pops the drone's next planned leg and turns it into a mission.
// Returns false when the queue is empty.
func (q *tripQueue) issueNext(d *model.Drone, s *sim.Simulation, now int) (bool, error) {
	legs := q.pending[d]
	if len(legs) == 0 {
		return false, nil
	}
	leg := legs[0]
	if len(legs) == 1 {
		delete(q.pending, d)
	} else {
		q.pending[d] = legs[1:]
	}
	switch leg.kind {
	case mission.Load:
		return true, s.Missions().SetLoadMission(d, leg.node, leg.order, now, false)
	case mission.Deliver:
		return true, s.Missions().SetDeliverMission(d, leg.node, leg.order, now, false)
	default:
		return true, fmt.Errorf("planned leg kind %s: %w", leg.kind, model.ErrInvalidTransition)
	}
}
