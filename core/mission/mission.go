package mission

import (
	"errors"

	"github.com/skyhaul/dronesim/core/model"
)

// ErrOutOfOrderSample indicates a drone on a mission was sampled at a tick
// other than its last-resolved tick or the one immediately after.
var ErrOutOfOrderSample = errors.New("out of order sample")

// Kind enumerates the high-level intents a drone can be assigned.
type Kind int

const (
	Load Kind = iota
	Deliver
	Wait
	Unload
	LoadAndDeliver
)

func (k Kind) String() string {
	switch k {
	case Load:
		return "load"
	case Deliver:
		return "deliver"
	case Wait:
		return "wait"
	case Unload:
		return "unload"
	case LoadAndDeliver:
		return "load-and-deliver"
	default:
		return "unknown"
	}
}

// Mission binds a drone to one delivery intent. A LoadAndDeliver mission
// reuses the record for both legs: the load phase flag flips once the load
// leg fully completes.
type Mission struct {
	Kind      Kind
	Start     int
	Order     *model.Order
	Warehouse *model.Node
	Customer  *model.Node

	duration int // Wait missions only

	engaged       bool // command emitted and travel issued for the current leg
	travelPhase   bool
	transferPhase bool
	loadPhase     bool // LoadAndDeliver: still on the load leg
}

func newMission(kind Kind, start int, order *model.Order, warehouse, customer *model.Node) *Mission {
	return &Mission{
		Kind:      kind,
		Start:     start,
		Order:     order,
		Warehouse: warehouse,
		Customer:  customer,
		loadPhase: true,
	}
}
