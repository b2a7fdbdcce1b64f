package model

import (
	"fmt"
	"sort"
	"strings"
)

// Order is a multiset of products: a mapping from product to a strictly
// positive count. A product whose count reaches zero is removed, never
// stored as zero.
type Order struct {
	items map[Product]int
}

// NewOrder returns an empty order.
func NewOrder() *Order {
	return &Order{items: make(map[Product]int)}
}

// Append adds n items of the product. Negative amounts are rejected.
func (o *Order) Append(p Product, n int) error {
	if n < 0 {
		return fmt.Errorf("append %d of %s: %w", n, p, ErrNegativeQuantity)
	}
	if o.items == nil {
		o.items = make(map[Product]int)
	}
	if n == 0 {
		return nil
	}
	o.items[p] += n
	return nil
}

// Remove takes n items of the product out of the order. Removing more than
// is present fails.
func (o *Order) Remove(p Product, n int) error {
	have := o.items[p]
	if n > have {
		return fmt.Errorf("remove %d of %s, have %d: %w", n, p, have, ErrInsufficientInventory)
	}
	if n == have {
		delete(o.items, p)
		return nil
	}
	o.items[p] -= n
	return nil
}

// Count returns the number of items of the product, zero if absent.
func (o *Order) Count(p Product) int { return o.items[p] }

// Has reports whether the product is present.
func (o *Order) Has(p Product) bool {
	_, ok := o.items[p]
	return ok
}

// Empty reports whether the order holds no products.
func (o *Order) Empty() bool { return len(o.items) == 0 }

// Len returns the number of distinct products.
func (o *Order) Len() int { return len(o.items) }

// Products returns the products in ascending index order. Deterministic
// iteration keeps runs and command logs reproducible.
func (o *Order) Products() []Product {
	ps := make([]Product, 0, len(o.items))
	for p := range o.items {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].Index < ps[j].Index })
	return ps
}

// Weight returns the total weight of the order.
func (o *Order) Weight() int {
	w := 0
	for p, n := range o.items {
		w += p.Weight * n
	}
	return w
}

// Clear removes all products.
func (o *Order) Clear() {
	o.items = make(map[Product]int)
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	cp := NewOrder()
	for p, n := range o.items {
		cp.items[p] = n
	}
	return cp
}

func (o *Order) String() string {
	var b strings.Builder
	b.WriteString("order:")
	for _, p := range o.Products() {
		fmt.Fprintf(&b, " %dx%d", o.items[p], p.Index)
	}
	return b.String()
}

// Inventory is an order that maintains its total weight incrementally. It
// backs drone payloads and node stock, where the weight is consulted on
// every capacity check.
type Inventory struct {
	Order
	weight int
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{Order: *NewOrder()}
}

// Append adds n items and updates the running weight.
func (i *Inventory) Append(p Product, n int) error {
	if err := i.Order.Append(p, n); err != nil {
		return err
	}
	i.weight += p.Weight * n
	return nil
}

// Remove takes n items out and updates the running weight.
func (i *Inventory) Remove(p Product, n int) error {
	if err := i.Order.Remove(p, n); err != nil {
		return err
	}
	i.weight -= p.Weight * n
	return nil
}

// Weight returns the cached total weight.
func (i *Inventory) Weight() int { return i.weight }

// AsOrder exposes the inventory as a plain order view. Callers must not
// mutate through it, or the weight cache goes stale.
func (i *Inventory) AsOrder() *Order { return &i.Order }

// Clear empties the inventory and resets the weight.
func (i *Inventory) Clear() {
	i.Order.Clear()
	i.weight = 0
}

// Clone returns a deep copy.
func (i *Inventory) Clone() *Inventory {
	return &Inventory{Order: *i.Order.Clone(), weight: i.weight}
}

func (i *Inventory) String() string {
	return fmt.Sprintf("%s (w=%d)", i.Order.String(), i.weight)
}
