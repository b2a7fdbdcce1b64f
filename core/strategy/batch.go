package strategy

import (
	"fmt"
	"math"
	"sort"

	"github.com/skyhaul/dronesim/core/mission"
	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/core/sim"
)

// PickKey orders candidate customers during batch accumulation.
type PickKey string

const (
	// PickClosest ranks by plain distance from the warehouse.
	PickClosest PickKey = "closest"
	// PickWeighted ranks by distance times current demand weight.
	PickWeighted PickKey = "weighted"
	// PickWeighted2 ranks by distance times demand weight squared.
	PickWeighted2 PickKey = "weighted2"
	// PickRelative ranks by distance times original-over-current demand
	// weight, favouring customers already close to completion.
	PickRelative PickKey = "relative"
)

// Validate checks the key is one of the known rankings.
func (k PickKey) Validate() error {
	switch k {
	case PickClosest, PickWeighted, PickWeighted2, PickRelative:
		return nil
	}
	return fmt.Errorf("unknown picking key %q", string(k))
}

func (k PickKey) score(from model.Location, c *model.Node, origWeight int) float64 {
	d := float64(model.Distance(from, c.Location()))
	w := float64(c.PendingWeight())
	switch k {
	case PickWeighted:
		return d * w
	case PickWeighted2:
		return d * w * w
	case PickRelative:
		if w == 0 {
			return math.Inf(1)
		}
		return d * float64(origWeight) / w
	default:
		return d
	}
}

// Batch plans one warehouse trip serving several customers: a single load
// leg followed by one deliver leg per customer, all booked before the
// first leg is issued. Planning runs against scratch copies of the
// warehouse stock and the drone capacity, never against real state.
type Batch struct {
	Picking PickKey

	queue      *tripQueue
	origWeight map[*model.Node]int
}

// NewBatch returns the batch-planning strategy. An empty picking key
// defaults to plain distance.
func NewBatch(picking PickKey) *Batch {
	if picking == "" {
		picking = PickClosest
	}
	return &Batch{Picking: picking}
}

func (b *Batch) Name() string { return "batch" }

func (b *Batch) Prepare(s *sim.Simulation) error {
	if err := b.Picking.Validate(); err != nil {
		return err
	}
	b.queue = newTripQueue()
	b.origWeight = make(map[*model.Node]int)
	for _, c := range s.Customers() {
		b.origWeight[c] = c.Order().Weight()
	}
	return nil
}

func (b *Batch) Plan(s *sim.Simulation, now int) error {
	for _, d := range idleDrones(s) {
		issued, err := b.queue.issueNext(d, s, now)
		if err != nil {
			return err
		}
		if issued {
			continue
		}
		legs, err := b.planTrip(s, d, now)
		if err != nil {
			return err
		}
		if len(legs) == 0 {
			continue
		}
		if err := b.queue.push(d, legs); err != nil {
			return err
		}
		if _, err := b.queue.issueNext(d, s, now); err != nil {
			return err
		}
	}
	return nil
}

// planTrip greedily accumulates per-customer sub-orders from the warehouse
// nearest the drone, in picking-key order, until the payload is full.
func (b *Batch) planTrip(s *sim.Simulation, d *model.Drone, now int) ([]tripLeg, error) {
	loc, err := d.Location(now)
	if err != nil {
		return nil, err
	}
	wh := nearestStockedWarehouse(s.Warehouses(), loc)
	if wh == nil {
		return nil, nil
	}
	capacity, err := capacityOf(d, now)
	if err != nil {
		return nil, err
	}

	stock := wh.ProductsMinusBookings()
	total := model.NewOrder()
	var legs []tripLeg
	for _, c := range b.rankCustomers(s.Customers(), wh.Location()) {
		sub := MaximalLoad(c.AvailableOrder(stock), capacity)
		if sub.Empty() {
			continue
		}
		for _, p := range sub.Products() {
			n := sub.Count(p)
			if err := stock.Remove(p, n); err != nil {
				return nil, err
			}
			_ = total.Append(p, n)
			capacity -= p.Weight * n
		}
		legs = append(legs, tripLeg{kind: mission.Deliver, node: c, order: sub})
		if capacity <= 0 {
			break
		}
	}
	if len(legs) == 0 {
		return nil, nil
	}
	return append([]tripLeg{{kind: mission.Load, node: wh, order: total}}, legs...), nil
}

func (b *Batch) rankCustomers(customers []*model.Node, from model.Location) []*model.Node {
	var out []*model.Node
	for _, c := range customers {
		if c.Done() || c.PendingWeight() <= 0 {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return b.Picking.score(from, out[i], b.origWeight[out[i]]) <
			b.Picking.score(from, out[j], b.origWeight[out[j]])
	})
	return out
}
