package sim

import (
	"fmt"

	"github.com/skyhaul/dronesim/core/model"
)

// Instance is one fully-built simulation problem: the grid, the fleet
// parameters and the product/warehouse/customer catalog.
type Instance struct {
	Rows       int
	Cols       int
	DroneCount int
	Turns      int
	MaxPayload int
	Products   []model.Product
	Warehouses []*model.Node
	Customers  []*model.Node
}

// Validate checks the instance for structural soundness.
func (i *Instance) Validate() error {
	if i.Rows <= 0 || i.Cols <= 0 {
		return fmt.Errorf("instance: grid %dx%d invalid", i.Rows, i.Cols)
	}
	if i.DroneCount <= 0 {
		return fmt.Errorf("instance: drone count %d invalid", i.DroneCount)
	}
	if i.Turns <= 0 {
		return fmt.Errorf("instance: turn count %d invalid", i.Turns)
	}
	if i.MaxPayload <= 0 {
		return fmt.Errorf("instance: max payload %d invalid", i.MaxPayload)
	}
	if len(i.Warehouses) == 0 {
		return fmt.Errorf("instance: at least one warehouse required")
	}
	for _, p := range i.Products {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("instance: %w", err)
		}
	}
	return nil
}
