package mission

import (
	"fmt"

	"github.com/skyhaul/dronesim/core/events"
	"github.com/skyhaul/dronesim/core/logger"
	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/internal/eventbus"
)

type leg int

const (
	loadLeg leg = iota
	deliverLeg
	unloadLeg
)

// Controller owns the one-mission-per-drone invariant and drives each
// mission one tick at a time by issuing task-level commands to the drone.
// It accumulates the emitted command log for the whole run.
type Controller struct {
	active map[*model.Drone]*Mission
	cmds   []Command
	log    logger.Logger
	bus    eventbus.EventBus
}

// NewController creates an empty mission controller. The bus is optional.
func NewController(log logger.Logger, bus eventbus.EventBus) *Controller {
	return &Controller{
		active: make(map[*model.Drone]*Mission),
		log:    log,
		bus:    bus,
	}
}

// InMission reports whether the drone currently has a mission.
func (c *Controller) InMission(d *model.Drone) bool {
	_, ok := c.active[d]
	return ok
}

// Kind returns the drone's current mission kind.
func (c *Controller) Kind(d *model.Drone) (Kind, error) {
	m, ok := c.active[d]
	if !ok {
		return 0, fmt.Errorf("drone %d not on a mission: %w", d.Index(), model.ErrInvalidTransition)
	}
	return m.Kind, nil
}

// Commands returns the command log accumulated so far.
func (c *Controller) Commands() []Command { return c.cmds }

// SetLoadMission sends the drone to load the order at the warehouse. With
// book set, the order is reserved at the warehouse so no other plan
// consumes the same stock before the drone arrives.
func (c *Controller) SetLoadMission(d *model.Drone, warehouse *model.Node, order *model.Order, now int, book bool) error {
	if err := c.admit(d); err != nil {
		return err
	}
	if book {
		if err := warehouse.BookMore(order); err != nil {
			return err
		}
	}
	c.active[d] = newMission(Load, now, order, warehouse, nil)
	c.announce(d, c.active[d], now)
	return d.Resolve(now)
}

// SetDeliverMission sends the drone to deliver the order to the customer.
// With book set, the delivery is reserved at the customer so the same
// demand is not served twice.
func (c *Controller) SetDeliverMission(d *model.Drone, customer *model.Node, order *model.Order, now int, book bool) error {
	if err := c.admit(d); err != nil {
		return err
	}
	if book {
		if err := customer.BookMore(order); err != nil {
			return err
		}
	}
	c.active[d] = newMission(Deliver, now, order, nil, customer)
	c.announce(d, c.active[d], now)
	return d.Resolve(now)
}

// SetLoadAndDeliverMission sets a composite mission: a load leg at the
// warehouse followed by a deliver leg at the customer, both reserved at
// mission-set time unless the caller already booked during planning.
func (c *Controller) SetLoadAndDeliverMission(d *model.Drone, warehouse, customer *model.Node, order *model.Order, now int, book bool) error {
	if err := c.admit(d); err != nil {
		return err
	}
	if book {
		if err := warehouse.BookMore(order); err != nil {
			return err
		}
		if err := customer.BookMore(order); err != nil {
			return err
		}
	}
	c.active[d] = newMission(LoadAndDeliver, now, order, warehouse, customer)
	c.announce(d, c.active[d], now)
	return d.Resolve(now)
}

// SetUnloadMission sends the drone to return the order from its payload
// back into the warehouse's stock.
func (c *Controller) SetUnloadMission(d *model.Drone, warehouse *model.Node, order *model.Order, now int) error {
	if err := c.admit(d); err != nil {
		return err
	}
	c.active[d] = newMission(Unload, now, order, warehouse, nil)
	c.announce(d, c.active[d], now)
	return d.Resolve(now)
}

// SetWaitMission blocks the drone for the given number of ticks.
func (c *Controller) SetWaitMission(d *model.Drone, duration, now int) error {
	if duration < 0 {
		return fmt.Errorf("wait duration %d: %w", duration, model.ErrInvalidTransition)
	}
	if err := c.admit(d); err != nil {
		return err
	}
	m := newMission(Wait, now, model.NewOrder(), nil, nil)
	m.duration = duration
	c.active[d] = m
	c.announce(d, m, now)
	return d.Resolve(now)
}

func (c *Controller) admit(d *model.Drone) error {
	if _, ok := c.active[d]; ok {
		return fmt.Errorf("drone %d already on a mission: %w", d.Index(), model.ErrInvalidTransition)
	}
	return nil
}

func (c *Controller) announce(d *model.Drone, m *Mission, now int) {
	wh, cu := -1, -1
	if m.Warehouse != nil {
		wh = m.Warehouse.Index()
	}
	if m.Customer != nil {
		cu = m.Customer.Index()
	}
	c.log.Debugw("mission set", map[string]any{
		"drone": d.Index(), "kind": m.Kind.String(), "tick": now,
		"warehouse": wh, "customer": cu, "weight": m.Order.Weight(),
	})
	if c.bus != nil {
		c.bus.Publish(events.MissionEvent{
			Tick: now, Drone: d.Index(), Kind: m.Kind.String(),
			Warehouse: wh, Customer: cu, Weight: m.Order.Weight(),
		})
	}
}

// Sample advances the drone's mission by exactly one tick. The sample tick
// must equal the drone's last-resolved tick or be exactly one greater.
func (c *Controller) Sample(d *model.Drone, now int) error {
	m, ok := c.active[d]
	if !ok {
		return fmt.Errorf("drone %d not on a mission: %w", d.Index(), model.ErrInvalidTransition)
	}
	if err := c.verify(d, m, now); err != nil {
		return err
	}

	switch m.Kind {
	case Load:
		done, err := c.runLeg(d, m, loadLeg, now)
		return c.finishIfDone(d, done, err)
	case Deliver:
		done, err := c.runLeg(d, m, deliverLeg, now)
		return c.finishIfDone(d, done, err)
	case Unload:
		done, err := c.runLeg(d, m, unloadLeg, now)
		return c.finishIfDone(d, done, err)
	case Wait:
		if err := d.Resolve(now); err != nil {
			return err
		}
		if now >= m.Start+m.duration {
			delete(c.active, d)
		}
		return nil
	case LoadAndDeliver:
		if m.loadPhase {
			done, err := c.runLeg(d, m, loadLeg, now)
			if err != nil {
				return err
			}
			if !done {
				return nil
			}
			// Load leg complete: hand the record over to the deliver leg
			// within the same tick.
			m.loadPhase = false
			m.engaged = false
		}
		done, err := c.runLeg(d, m, deliverLeg, now)
		return c.finishIfDone(d, done, err)
	default:
		return fmt.Errorf("drone %d: unknown mission kind %d: %w", d.Index(), m.Kind, model.ErrInvalidTransition)
	}
}

func (c *Controller) verify(d *model.Drone, m *Mission, now int) error {
	if now < m.Start {
		return fmt.Errorf("drone %d: sample at %d before mission start %d: %w",
			d.Index(), now, m.Start, ErrOutOfOrderSample)
	}
	if now != d.Clock() && now-d.Clock() != 1 {
		return fmt.Errorf("drone %d: sample at %d, clock at %d: %w",
			d.Index(), now, d.Clock(), ErrOutOfOrderSample)
	}
	return nil
}

func (c *Controller) finishIfDone(d *model.Drone, done bool, err error) error {
	if err != nil {
		return err
	}
	if done {
		delete(c.active, d)
	}
	return nil
}

// runLeg executes one tick of a single mission leg: travel to the target
// node, then move the whole order in one batched 1-tick task. Returns true
// once the leg has fully completed.
func (c *Controller) runLeg(d *model.Drone, m *Mission, l leg, now int) (bool, error) {
	target := m.Warehouse
	if l == deliverLeg {
		target = m.Customer
	}

	if !m.engaged {
		m.engaged = true
		m.travelPhase = true
		m.transferPhase = true
		m.Start = now
		c.emit(d, m, l)
	}

	if m.travelPhase {
		if err := d.Travel(target.Location(), now); err != nil {
			return false, err
		}
		m.travelPhase = false
	}
	st, err := d.State(now)
	if err != nil {
		return false, err
	}
	if st != model.TaskIdle {
		return false, nil
	}

	if m.transferPhase {
		for _, p := range m.Order.Products() {
			n := m.Order.Count(p)
			switch l {
			case loadLeg:
				if err := d.Load(p, n, now); err != nil {
					return false, err
				}
				if err := m.Warehouse.Remove(p, n, true); err != nil {
					return false, err
				}
			case deliverLeg:
				if err := d.Unload(p, n, now); err != nil {
					return false, err
				}
				if err := m.Customer.Remove(p, n, true); err != nil {
					return false, err
				}
			case unloadLeg:
				if err := d.Unload(p, n, now); err != nil {
					return false, err
				}
				if err := m.Warehouse.Append(p, n); err != nil {
					return false, err
				}
			}
		}
		m.transferPhase = false
	}
	st, err = d.State(now)
	if err != nil {
		return false, err
	}
	return st == model.TaskIdle, nil
}

// emit appends the command lines for a starting leg, one per product in
// ascending product-index order.
func (c *Controller) emit(d *model.Drone, m *Mission, l leg) {
	var op byte
	var node int
	switch l {
	case loadLeg:
		op, node = 'L', m.Warehouse.Index()
	case deliverLeg:
		op, node = 'D', m.Customer.Index()
	default:
		return // restocking legs are not part of the grader output
	}
	for _, p := range m.Order.Products() {
		c.cmds = append(c.cmds, Command{
			Drone:    d.Index(),
			Op:       op,
			Node:     node,
			Product:  p.Index,
			Quantity: m.Order.Count(p),
		})
	}
}
