package mission

import (
	"errors"
	"testing"

	"github.com/skyhaul/dronesim/core/model"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

func newController() *Controller { return NewController(nopLogger{}, nil) }

func inventory(t *testing.T, items map[model.Product]int) *model.Inventory {
	t.Helper()
	inv := model.NewInventory()
	for p, n := range items {
		if err := inv.Append(p, n); err != nil {
			t.Fatalf("seed inventory: %v", err)
		}
	}
	return inv
}

func order(t *testing.T, items map[model.Product]int) *model.Order {
	t.Helper()
	o := model.NewOrder()
	for p, n := range items {
		if err := o.Append(p, n); err != nil {
			t.Fatalf("build order: %v", err)
		}
	}
	return o
}

// A load mission from distance ceil(sqrt 2) away: two travel ticks, one
// loading tick, done on the fourth sample.
func TestLoadMission(t *testing.T) {
	p1 := model.Product{Index: 0, Weight: 5}
	p2 := model.Product{Index: 1, Weight: 3}
	wh := model.NewWarehouse(model.Location{Col: 1, Row: 1}, inventory(t, map[model.Product]int{p1: 10, p2: 4}), 0)
	d := model.NewDrone(model.Location{Col: 0, Row: 0}, 21, 0)
	c := newController()

	o := order(t, map[model.Product]int{p1: 3, p2: 2})
	if err := c.SetLoadMission(d, wh, o, 0, true); err != nil {
		t.Fatalf("set mission: %v", err)
	}
	if wh.Booked(p2) != 2 {
		t.Fatalf("booked = %d, want 2", wh.Booked(p2))
	}

	for now := 0; now <= 3; now++ {
		if !c.InMission(d) {
			t.Fatalf("mission ended early at tick %d", now)
		}
		if err := c.Sample(d, now); err != nil {
			t.Fatalf("sample at %d: %v", now, err)
		}
	}
	if c.InMission(d) {
		t.Fatalf("mission should be complete after tick 3")
	}

	if got := wh.ProductsMinusBookings().Count(p2); got != 2 {
		t.Fatalf("warehouse unbooked p2 = %d, want 2", got)
	}
	carried, err := d.Carried(3)
	if err != nil {
		t.Fatalf("carried: %v", err)
	}
	if carried.Count(p2) != 2 || carried.Count(p1) != 3 {
		t.Fatalf("carried = %s", carried)
	}
	loc, err := d.Location(3)
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc != wh.Location() {
		t.Fatalf("location = %v, want %v", loc, wh.Location())
	}
}

func TestDeliverMission(t *testing.T) {
	p := model.Product{Index: 0, Weight: 2}
	cust := model.NewCustomer(model.Location{Col: 0, Row: 3}, inventory(t, map[model.Product]int{p: 2}), 0)
	d, err := model.NewDroneWithPayload(model.Location{Col: 0, Row: 0}, 10, inventory(t, map[model.Product]int{p: 2}), 0)
	if err != nil {
		t.Fatalf("new drone: %v", err)
	}
	c := newController()

	if err := c.SetDeliverMission(d, cust, order(t, map[model.Product]int{p: 2}), 0, true); err != nil {
		t.Fatalf("set mission: %v", err)
	}
	for now := 0; c.InMission(d); now++ {
		if now > 10 {
			t.Fatalf("mission did not terminate")
		}
		if err := c.Sample(d, now); err != nil {
			t.Fatalf("sample at %d: %v", now, err)
		}
	}

	carried, err := d.Carried(d.Clock())
	if err != nil {
		t.Fatalf("carried: %v", err)
	}
	if carried.Has(p) {
		t.Fatalf("drone still carries %s", p)
	}
	loc, err := d.Location(d.Clock())
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc != cust.Location() {
		t.Fatalf("location = %v, want %v", loc, cust.Location())
	}
	if !cust.Done() {
		t.Fatalf("customer order should be complete")
	}
}

// A composite mission decrements both ledgers exactly once and leaves no
// residual booking on either node.
func TestLoadAndDeliverMission(t *testing.T) {
	p := model.Product{Index: 0, Weight: 4}
	wh := model.NewWarehouse(model.Location{Col: 2, Row: 0}, inventory(t, map[model.Product]int{p: 5}), 0)
	cust := model.NewCustomer(model.Location{Col: 4, Row: 0}, inventory(t, map[model.Product]int{p: 2}), 0)
	d := model.NewDrone(model.Location{Col: 0, Row: 0}, 20, 0)
	c := newController()

	if err := c.SetLoadAndDeliverMission(d, wh, cust, order(t, map[model.Product]int{p: 2}), 0, true); err != nil {
		t.Fatalf("set mission: %v", err)
	}
	for now := 0; c.InMission(d); now++ {
		if now > 20 {
			t.Fatalf("mission did not terminate")
		}
		if err := c.Sample(d, now); err != nil {
			t.Fatalf("sample at %d: %v", now, err)
		}
		carried, err := d.Carried(now)
		if err != nil {
			t.Fatalf("carried at %d: %v", now, err)
		}
		if carried.Weight() > d.MaxWeight() {
			t.Fatalf("payload %d over limit %d at tick %d", carried.Weight(), d.MaxWeight(), now)
		}
	}

	if got := wh.Order().Count(p); got != 3 {
		t.Fatalf("warehouse stock = %d, want 3", got)
	}
	if !cust.Done() {
		t.Fatalf("customer order should be complete")
	}
	if wh.Booked(p) != 0 || cust.Booked(p) != 0 {
		t.Fatalf("residual bookings: warehouse %d, customer %d", wh.Booked(p), cust.Booked(p))
	}
}

func TestUnloadMissionRestocks(t *testing.T) {
	p := model.Product{Index: 0, Weight: 1}
	wh := model.NewWarehouse(model.Location{Col: 1, Row: 0}, inventory(t, map[model.Product]int{p: 1}), 0)
	d, err := model.NewDroneWithPayload(model.Location{Col: 0, Row: 0}, 10, inventory(t, map[model.Product]int{p: 3}), 0)
	if err != nil {
		t.Fatalf("new drone: %v", err)
	}
	c := newController()

	if err := c.SetUnloadMission(d, wh, order(t, map[model.Product]int{p: 3}), 0); err != nil {
		t.Fatalf("set mission: %v", err)
	}
	for now := 0; c.InMission(d); now++ {
		if now > 10 {
			t.Fatalf("mission did not terminate")
		}
		if err := c.Sample(d, now); err != nil {
			t.Fatalf("sample at %d: %v", now, err)
		}
	}

	if got := wh.Order().Count(p); got != 4 {
		t.Fatalf("warehouse stock = %d, want 4", got)
	}
	if len(c.Commands()) != 0 {
		t.Fatalf("restocking must not appear in the command log, got %d commands", len(c.Commands()))
	}
}

func TestWaitMission(t *testing.T) {
	d := model.NewDrone(model.Location{Col: 0, Row: 0}, 10, 0)
	c := newController()
	if err := c.SetWaitMission(d, 2, 0); err != nil {
		t.Fatalf("set mission: %v", err)
	}
	for now := 0; now < 2; now++ {
		if err := c.Sample(d, now); err != nil {
			t.Fatalf("sample at %d: %v", now, err)
		}
		if !c.InMission(d) {
			t.Fatalf("wait ended early at tick %d", now)
		}
	}
	if err := c.Sample(d, 2); err != nil {
		t.Fatalf("sample at 2: %v", err)
	}
	if c.InMission(d) {
		t.Fatalf("wait should be over")
	}
}

func TestSampleOutOfOrder(t *testing.T) {
	p := model.Product{Index: 0, Weight: 1}
	wh := model.NewWarehouse(model.Location{Col: 5, Row: 0}, inventory(t, map[model.Product]int{p: 1}), 0)
	d := model.NewDrone(model.Location{Col: 0, Row: 0}, 10, 0)
	c := newController()

	if err := c.SetLoadMission(d, wh, order(t, map[model.Product]int{p: 1}), 2, true); err != nil {
		t.Fatalf("set mission: %v", err)
	}
	if err := c.Sample(d, 1); !errors.Is(err, ErrOutOfOrderSample) {
		t.Fatalf("sample before start: err = %v, want ErrOutOfOrderSample", err)
	}
	if err := c.Sample(d, 2); err != nil {
		t.Fatalf("sample: %v", err)
	}
	if err := c.Sample(d, 4); !errors.Is(err, ErrOutOfOrderSample) {
		t.Fatalf("skipped tick: err = %v, want ErrOutOfOrderSample", err)
	}
}

func TestDoubleMissionRejected(t *testing.T) {
	p := model.Product{Index: 0, Weight: 1}
	wh := model.NewWarehouse(model.Location{Col: 1, Row: 0}, inventory(t, map[model.Product]int{p: 2}), 0)
	d := model.NewDrone(model.Location{Col: 0, Row: 0}, 10, 0)
	c := newController()

	if err := c.SetLoadMission(d, wh, order(t, map[model.Product]int{p: 1}), 0, true); err != nil {
		t.Fatalf("set mission: %v", err)
	}
	err := c.SetLoadMission(d, wh, order(t, map[model.Product]int{p: 1}), 0, true)
	if !errors.Is(err, model.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

// Command lines follow the grader format and list products in ascending
// index order.
func TestCommandLog(t *testing.T) {
	p1 := model.Product{Index: 0, Weight: 1}
	p2 := model.Product{Index: 1, Weight: 1}
	wh := model.NewWarehouse(model.Location{Col: 1, Row: 0}, inventory(t, map[model.Product]int{p1: 2, p2: 2}), 3)
	cust := model.NewCustomer(model.Location{Col: 2, Row: 0}, inventory(t, map[model.Product]int{p1: 2, p2: 2}), 7)
	d := model.NewDrone(model.Location{Col: 0, Row: 0}, 10, 1)
	c := newController()

	o := order(t, map[model.Product]int{p1: 2, p2: 2})
	if err := c.SetLoadAndDeliverMission(d, wh, cust, o, 0, true); err != nil {
		t.Fatalf("set mission: %v", err)
	}
	for now := 0; c.InMission(d); now++ {
		if now > 20 {
			t.Fatalf("mission did not terminate")
		}
		if err := c.Sample(d, now); err != nil {
			t.Fatalf("sample at %d: %v", now, err)
		}
	}

	want := []string{
		"1 L 3 0 2",
		"1 L 3 1 2",
		"1 D 7 0 2",
		"1 D 7 1 2",
	}
	cmds := c.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("got %d commands, want %d", len(cmds), len(want))
	}
	for i, cmd := range cmds {
		if got := cmd.String(); got != want[i] {
			t.Fatalf("command %d = %q, want %q", i, got, want[i])
		}
	}
}
