package events

// TickEvent is published once per simulation tick after all drones were
// advanced.
type TickEvent struct {
	Tick      int
	Idle      int
	Traveling int
	Loading   int
	Unloading int
	Completed int
	Score     int
}

// MissionEvent is published when a mission is assigned to a drone.
type MissionEvent struct {
	Tick      int
	Drone     int
	Kind      string
	Warehouse int
	Customer  int
	Weight    int
}

// CompletionEvent is published when a customer's order empties.
type CompletionEvent struct {
	Tick     int
	Customer int
	Points   int
}
