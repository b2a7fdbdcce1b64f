package model

import "fmt"

// Product is an immutable catalog entry. Two products with the same index
// are interchangeable; a catalog must never contain the same index twice
// with different weights.
type Product struct {
	Index  int
	Weight int
}

// Validate checks that the product definition is sound.
func (p Product) Validate() error {
	if p.Weight < 0 {
		return fmt.Errorf("product %d: weight must be non-negative", p.Index)
	}
	return nil
}

func (p Product) String() string {
	return fmt.Sprintf("product(%d, w=%d)", p.Index, p.Weight)
}
