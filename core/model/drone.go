package model

import "fmt"

// Drone is a single vehicle. It keeps a private clock of the last tick it
// was resolved at, and applies the effect of its current task lazily the
// first time it is observed at or after the task's completion tick.
type Drone struct {
	location  Location
	carried   *Inventory
	maxWeight int
	task      Task
	clock     int
	index     int
}

// NewDrone returns an idle, empty drone at the given location.
func NewDrone(loc Location, maxWeight, index int) *Drone {
	d := &Drone{
		location:  loc,
		carried:   NewInventory(),
		maxWeight: maxWeight,
		index:     index,
	}
	d.task.setIdle()
	return d
}

// NewDroneWithPayload returns an idle drone already carrying an inventory.
func NewDroneWithPayload(loc Location, maxWeight int, carried *Inventory, index int) (*Drone, error) {
	if carried.Weight() > maxWeight {
		return nil, fmt.Errorf("payload %d over limit %d: %w", carried.Weight(), maxWeight, ErrCapacityExceeded)
	}
	d := &Drone{
		location:  loc,
		carried:   carried,
		maxWeight: maxWeight,
		index:     index,
	}
	d.task.setIdle()
	return d, nil
}

// Resolve advances the drone's clock to now and applies the current task's
// effect if it has completed. Resolving at a tick earlier than the clock
// fails: time never runs backwards.
func (d *Drone) Resolve(now int) error {
	if now < d.clock {
		return fmt.Errorf("drone %d resolved at %d after reaching %d: %w", d.index, now, d.clock, ErrTemporalOrder)
	}
	d.clock = now
	if !d.task.done(now) {
		return nil
	}
	switch d.task.State {
	case TaskTraveling:
		d.location = d.task.Dest
	case TaskLoading:
		for _, p := range d.task.Products.Products() {
			if err := d.carried.Append(p, d.task.Products.Count(p)); err != nil {
				return err
			}
		}
	case TaskUnloading:
		for _, p := range d.task.Products.Products() {
			if err := d.carried.Remove(p, d.task.Products.Count(p)); err != nil {
				return err
			}
		}
	}
	d.task.setIdle()
	return nil
}

// State resolves the drone and returns its task state at now.
func (d *Drone) State(now int) (TaskState, error) {
	if err := d.Resolve(now); err != nil {
		return TaskIdle, err
	}
	return d.task.State, nil
}

// CurrentState returns the task state as of the last resolution, without
// advancing the clock. Useful for progress reporting mid-tick.
func (d *Drone) CurrentState() TaskState { return d.task.State }

// Location resolves the drone and returns its position at now.
func (d *Drone) Location(now int) (Location, error) {
	if err := d.Resolve(now); err != nil {
		return Location{}, err
	}
	return d.location, nil
}

// Carried resolves the drone and returns its payload at now.
func (d *Drone) Carried(now int) (*Inventory, error) {
	if err := d.Resolve(now); err != nil {
		return nil, err
	}
	return d.carried, nil
}

// Clock returns the last tick the drone was resolved at.
func (d *Drone) Clock() int { return d.clock }

// Index returns the drone's identifier.
func (d *Drone) Index() int { return d.index }

// MaxWeight returns the payload limit.
func (d *Drone) MaxWeight() int { return d.maxWeight }

// Travel starts a flight to dest. The drone must be idle, or already
// traveling to the same destination, in which case the call is a no-op.
// A zero-distance travel completes within the same tick.
func (d *Drone) Travel(dest Location, now int) error {
	if err := d.Resolve(now); err != nil {
		return err
	}
	switch d.task.State {
	case TaskIdle:
		d.task.setTravel(now, Distance(d.location, dest), dest)
	case TaskTraveling:
		if d.task.Dest != dest {
			return fmt.Errorf("drone %d: destination change mid-flight: %w", d.index, ErrInvalidTransition)
		}
	default:
		return fmt.Errorf("drone %d: travel while %s: %w", d.index, d.task.State, ErrInvalidTransition)
	}
	return d.Resolve(now)
}

// Load queues n items of the product for pickup. Loads issued at the same
// tick merge into one task; batching across ticks is rejected. The queued
// weight counts against the payload limit.
func (d *Drone) Load(p Product, n int, now int) error {
	if err := d.Resolve(now); err != nil {
		return err
	}
	if err := d.checkWeightLimit(p, n); err != nil {
		return err
	}
	switch d.task.State {
	case TaskIdle:
		d.task.State = TaskLoading
		d.task.Start = now
		d.task.Duration = 1
		if err := d.task.Products.Append(p, n); err != nil {
			return err
		}
	case TaskLoading:
		if d.task.Start != now {
			return fmt.Errorf("drone %d: load batched across ticks %d and %d: %w", d.index, d.task.Start, now, ErrInvalidTransition)
		}
		if err := d.task.Products.Append(p, n); err != nil {
			return err
		}
	default:
		return fmt.Errorf("drone %d: load while %s: %w", d.index, d.task.State, ErrInvalidTransition)
	}
	return d.Resolve(now)
}

// Unload queues n items of the product for dropoff. The queued amount
// counts against the carried stock so a tick cannot promise more than the
// drone holds.
func (d *Drone) Unload(p Product, n int, now int) error {
	if err := d.Resolve(now); err != nil {
		return err
	}
	if err := d.checkCarried(p, n); err != nil {
		return err
	}
	switch d.task.State {
	case TaskIdle:
		d.task.State = TaskUnloading
		d.task.Start = now
		d.task.Duration = 1
		if err := d.task.Products.Append(p, n); err != nil {
			return err
		}
	case TaskUnloading:
		if d.task.Start != now {
			return fmt.Errorf("drone %d: unload batched across ticks %d and %d: %w", d.index, d.task.Start, now, ErrInvalidTransition)
		}
		if err := d.task.Products.Append(p, n); err != nil {
			return err
		}
	default:
		return fmt.Errorf("drone %d: unload while %s: %w", d.index, d.task.State, ErrInvalidTransition)
	}
	return d.Resolve(now)
}

func (d *Drone) checkWeightLimit(p Product, n int) error {
	queued := 0
	if d.task.State == TaskLoading {
		queued = d.task.Products.Weight()
	}
	if d.carried.Weight()+queued+p.Weight*n > d.maxWeight {
		return fmt.Errorf("drone %d: carrying %d, queued %d, adding %dx%s over limit %d: %w",
			d.index, d.carried.Weight(), queued, n, p, d.maxWeight, ErrCapacityExceeded)
	}
	return nil
}

func (d *Drone) checkCarried(p Product, n int) error {
	if !d.carried.Has(p) {
		return fmt.Errorf("drone %d: unload %s not carried: %w", d.index, p, ErrInsufficientInventory)
	}
	queued := 0
	if d.task.State == TaskUnloading {
		queued = d.task.Products.Count(p)
	}
	if n+queued > d.carried.Count(p) {
		return fmt.Errorf("drone %d: unload %d+%d of %s, carrying %d: %w",
			d.index, n, queued, p, d.carried.Count(p), ErrInsufficientInventory)
	}
	return nil
}

func (d *Drone) String() string {
	return fmt.Sprintf("drone %d at %s, %s", d.index, d.location, d.carried)
}
