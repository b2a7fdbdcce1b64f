package model

import (
	"fmt"
	"math"
)

// Location is a cell on the simulation grid.
type Location struct {
	Col int
	Row int
}

func (l Location) String() string {
	return fmt.Sprintf("[%d %d]", l.Col, l.Row)
}

// Distance returns the travel time in ticks between two locations: the
// Euclidean distance rounded up to the next integer.
func Distance(a, b Location) int {
	return int(math.Ceil(math.Hypot(float64(a.Col-b.Col), float64(a.Row-b.Row))))
}
