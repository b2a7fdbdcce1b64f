package model

import "fmt"

// NodeKind distinguishes stock sources from delivery targets.
type NodeKind int

const (
	Warehouse NodeKind = iota
	Customer
)

func (k NodeKind) String() string {
	if k == Warehouse {
		return "warehouse"
	}
	return "customer"
}

// Node is a fixed point on the grid with a product ledger. A warehouse's
// ledger is its stock, a customer's ledger is its outstanding order. The
// booking sub-ledger tracks amounts already promised to in-flight missions
// so planners do not double count.
type Node struct {
	kind     NodeKind
	location Location
	order    *Inventory
	booked   *Order
	index    int
}

func newNode(kind NodeKind, loc Location, order *Inventory, index int) *Node {
	if order == nil {
		order = NewInventory()
	}
	return &Node{
		kind:     kind,
		location: loc,
		order:    order,
		booked:   NewOrder(),
		index:    index,
	}
}

// NewWarehouse returns a warehouse node holding the given stock.
func NewWarehouse(loc Location, stock *Inventory, index int) *Node {
	return newNode(Warehouse, loc, stock, index)
}

// NewCustomer returns a customer node with the given outstanding order.
func NewCustomer(loc Location, order *Inventory, index int) *Node {
	return newNode(Customer, loc, order, index)
}

// Kind returns the node kind.
func (n *Node) Kind() NodeKind { return n.kind }

// Location returns the node's grid cell.
func (n *Node) Location() Location { return n.location }

// Index returns the node's identifier within its kind.
func (n *Node) Index() int { return n.index }

// Order returns the node's ledger.
func (n *Node) Order() *Inventory { return n.order }

// Booked returns the amount of the product currently reserved.
func (n *Node) Booked(p Product) int { return n.booked.Count(p) }

// Done reports whether the ledger is empty. Bookings are promises, not
// stock, so they do not keep a node alive.
func (n *Node) Done() bool { return n.order.Empty() }

// Book reserves the net-new part of the given order. Quantities already
// booked are not booked again; a request whose net amount exceeds what the
// node can still promise fails without partial effect.
func (n *Node) Book(order *Order) error {
	type delta struct {
		p Product
		n int
	}
	var deltas []delta
	for _, p := range order.Products() {
		net := order.Count(p) - n.booked.Count(p)
		if net <= 0 {
			continue
		}
		free := n.order.Count(p) - n.booked.Count(p)
		if net > free {
			return fmt.Errorf("%s %d: book %d of %s, %d free: %w",
				n.kind, n.index, net, p, free, ErrBookingExceedsAvailability)
		}
		deltas = append(deltas, delta{p, net})
	}
	for _, d := range deltas {
		if err := n.booked.Append(d.p, d.n); err != nil {
			return err
		}
	}
	return nil
}

// BookMore reserves order on top of the node's existing reservations. Book
// treats its argument as the total reservation target, so callers holding
// an increment raise the target by what is already booked.
func (n *Node) BookMore(order *Order) error {
	target := NewOrder()
	for _, p := range order.Products() {
		if err := target.Append(p, order.Count(p)+n.booked.Count(p)); err != nil {
			return err
		}
	}
	return n.Book(target)
}

// Unbook releases a previously made reservation.
func (n *Node) Unbook(order *Order) error {
	for _, p := range order.Products() {
		if order.Count(p) > n.booked.Count(p) {
			return fmt.Errorf("%s %d: unbook %d of %s, booked %d: %w",
				n.kind, n.index, order.Count(p), p, n.booked.Count(p), ErrBookingViolation)
		}
	}
	for _, p := range order.Products() {
		if err := n.booked.Remove(p, order.Count(p)); err != nil {
			return err
		}
	}
	return nil
}

// Remove takes count items of the product out of the ledger. With
// considerBooking the removal must have been reserved first and consumes
// the reservation.
func (n *Node) Remove(p Product, count int, considerBooking bool) error {
	if count > n.order.Count(p) {
		return fmt.Errorf("%s %d: remove %d of %s, have %d: %w",
			n.kind, n.index, count, p, n.order.Count(p), ErrInsufficientInventory)
	}
	if considerBooking {
		if count > n.booked.Count(p) {
			return fmt.Errorf("%s %d: remove %d of %s, booked %d: %w",
				n.kind, n.index, count, p, n.booked.Count(p), ErrBookingViolation)
		}
		if err := n.booked.Remove(p, count); err != nil {
			return err
		}
	}
	return n.order.Remove(p, count)
}

// Append adds count items to the ledger, restocking a warehouse or growing
// a customer order.
func (n *Node) Append(p Product, count int) error {
	return n.order.Append(p, count)
}

// ProductsMinusBookings returns the unreserved part of the ledger.
func (n *Node) ProductsMinusBookings() *Order {
	free := NewOrder()
	for _, p := range n.order.Products() {
		if left := n.order.Count(p) - n.booked.Count(p); left > 0 {
			free.Append(p, left) //nolint:errcheck // left > 0
		}
	}
	return free
}

// AvailableOrder returns, per product, the smaller of the requested amount
// and what the node can still promise.
func (n *Node) AvailableOrder(requested *Order) *Order {
	avail := NewOrder()
	for _, p := range requested.Products() {
		free := n.order.Count(p) - n.booked.Count(p)
		if free <= 0 {
			continue
		}
		want := requested.Count(p)
		if want < free {
			free = want
		}
		avail.Append(p, free) //nolint:errcheck // free > 0
	}
	return avail
}

// PendingWeight returns the weight of the unreserved part of the ledger.
func (n *Node) PendingWeight() int {
	return n.ProductsMinusBookings().Weight()
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %d at %s, %s", n.kind, n.index, n.location, n.order)
}
