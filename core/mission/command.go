package mission

import "fmt"

// Command is one line of the grader-readable command log: a drone loading
// at a warehouse or delivering to a customer.
type Command struct {
	Drone    int
	Op       byte // 'L' or 'D'
	Node     int  // warehouse index for L, customer index for D
	Product  int
	Quantity int
}

func (c Command) String() string {
	return fmt.Sprintf("%d %c %d %d %d", c.Drone, c.Op, c.Node, c.Product, c.Quantity)
}
