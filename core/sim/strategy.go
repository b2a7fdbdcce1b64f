package sim

// Strategy decides, tick by tick, which idle drone serves which demand
// from which supply. Implementations inspect the simulation state and set
// missions through the mission controller; they must never mutate node or
// drone state directly outside of booking.
type Strategy interface {
	Name() string
	// Prepare runs once before the first tick.
	Prepare(s *Simulation) error
	// Plan runs in the assignment phase of every tick.
	Plan(s *Simulation, now int) error
}
