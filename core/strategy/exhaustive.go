package strategy

import (
	"sort"

	"github.com/skyhaul/dronesim/core/mission"
	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/core/sim"
)

// DefaultCutoff is the locality window for subset candidates when the
// configuration does not set one.
const DefaultCutoff = 20

// Subset recursion is 2^n in the candidate count; sixteen keeps the worst
// case in the tens of thousands of branches.
const maxSubsetCandidates = 16

// Exhaustive searches customer subsets from the chosen warehouse instead
// of committing to a greedy visiting order. Candidates must lie within
// Cutoff of the warehouse and of each other, a pruning that bounds the
// recursion on large instances. The best subset by summed delivered-over-
// original weight ratio wins.
type Exhaustive struct {
	Cutoff int

	queue      *tripQueue
	origWeight map[*model.Node]int
}

// NewExhaustive returns the subset-search strategy. A non-positive cutoff
// falls back to DefaultCutoff.
func NewExhaustive(cutoff int) *Exhaustive {
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	return &Exhaustive{Cutoff: cutoff}
}

func (e *Exhaustive) Name() string { return "exhaustive" }

func (e *Exhaustive) Prepare(s *sim.Simulation) error {
	e.queue = newTripQueue()
	e.origWeight = make(map[*model.Node]int)
	for _, c := range s.Customers() {
		e.origWeight[c] = c.Order().Weight()
	}
	return nil
}

func (e *Exhaustive) Plan(s *sim.Simulation, now int) error {
	for _, d := range idleDrones(s) {
		issued, err := e.queue.issueNext(d, s, now)
		if err != nil {
			return err
		}
		if issued {
			continue
		}
		legs, err := e.planTrip(s, d, now)
		if err != nil {
			return err
		}
		if len(legs) == 0 {
			continue
		}
		if err := e.queue.push(d, legs); err != nil {
			return err
		}
		if _, err := e.queue.issueNext(d, s, now); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exhaustive) planTrip(s *sim.Simulation, d *model.Drone, now int) ([]tripLeg, error) {
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
	candidates := e.candidates(s.Customers(), wh, stock)
	if len(candidates) == 0 {
		return nil, nil
	}

	search := &subsetSearch{
		candidates: candidates,
		stock:      stock,
		capacity:   capacity,
		origWeight: e.origWeight,
		cutoff:     e.Cutoff,
	}
	search.explore(0)
	if len(search.best) == 0 {
		return nil, nil
	}

	total := model.NewOrder()
	for _, leg := range search.best {
		for _, p := range leg.order.Products() {
			_ = total.Append(p, leg.order.Count(p))
		}
	}
	return append([]tripLeg{{kind: mission.Load, node: wh, order: total}}, search.best...), nil
}

// candidates returns the servable customers within the locality window of
// the warehouse, nearest first, capped to keep the recursion bounded.
func (e *Exhaustive) candidates(customers []*model.Node, wh *model.Node, stock *model.Order) []*model.Node {
	var out []*model.Node
	for _, c := range customers {
		if c.Done() || c.PendingWeight() <= 0 {
			continue
		}
		if model.Distance(wh.Location(), c.Location()) > e.Cutoff {
			continue
		}
		if c.AvailableOrder(stock).Empty() {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return model.Distance(wh.Location(), out[i].Location()) <
			model.Distance(wh.Location(), out[j].Location())
	})
	if len(out) > maxSubsetCandidates {
		out = out[:maxSubsetCandidates]
	}
	return out
}

// subsetSearch explores include/exclude branches over the candidate list
// on shared scratch state, undoing each simulated load when the branch
// returns. The scratch stock and capacity always reflect exactly the
// current partial subset.
type subsetSearch struct {
	candidates []*model.Node
	stock      *model.Order
	capacity   int
	origWeight map[*model.Node]int
	cutoff     int

	current []tripLeg
	score   float64

	best      []tripLeg
	bestScore float64
}

func (ss *subsetSearch) explore(i int) {
	if i == len(ss.candidates) {
		if ss.score > ss.bestScore {
			ss.bestScore = ss.score
			ss.best = cloneLegs(ss.current)
		}
		return
	}
	c := ss.candidates[i]

	if ss.within(c) {
		sub := MaximalLoad(c.AvailableOrder(ss.stock), ss.capacity)
		if !sub.Empty() {
			ss.apply(c, sub)
			ss.explore(i + 1)
			ss.undo(c, sub)
		}
	}

	ss.explore(i + 1)
}

// within reports whether the customer lies inside the locality window of
// every customer already in the partial subset.
func (ss *subsetSearch) within(c *model.Node) bool {
	for _, leg := range ss.current {
		if model.Distance(leg.node.Location(), c.Location()) > ss.cutoff {
			return false
		}
	}
	return true
}

func (ss *subsetSearch) apply(c *model.Node, sub *model.Order) {
	for _, p := range sub.Products() {
		n := sub.Count(p)
		_ = ss.stock.Remove(p, n)
		ss.capacity -= p.Weight * n
	}
	ss.current = append(ss.current, tripLeg{kind: mission.Deliver, node: c, order: sub})
	if ow := ss.origWeight[c]; ow > 0 {
		ss.score += float64(sub.Weight()) / float64(ow)
	}
}

func (ss *subsetSearch) undo(c *model.Node, sub *model.Order) {
	for _, p := range sub.Products() {
		n := sub.Count(p)
		_ = ss.stock.Append(p, n)
		ss.capacity += p.Weight * n
	}
	ss.current = ss.current[:len(ss.current)-1]
	if ow := ss.origWeight[c]; ow > 0 {
		ss.score -= float64(sub.Weight()) / float64(ow)
	}
}

func cloneLegs(legs []tripLeg) []tripLeg {
	out := make([]tripLeg, len(legs))
	for i, l := range legs {
		out[i] = tripLeg{kind: l.kind, node: l.node, order: l.order.Clone()}
	}
	return out
}
