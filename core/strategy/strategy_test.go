package strategy

import (
	"context"
	"testing"

	"github.com/skyhaul/dronesim/core/factory"
	"github.com/skyhaul/dronesim/core/mission"
	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/core/sim"
)

func moduleConf(name string, conf map[string]any) factory.ModuleConfig {
	return factory.ModuleConfig{Type: name, Conf: conf}
}

var (
	prodLight = model.Product{Index: 0, Weight: 2}
	prodHeavy = model.Product{Index: 1, Weight: 3}
)

func testInstance(t *testing.T) *sim.Instance {
	t.Helper()
	seed := func(items map[model.Product]int) *model.Inventory {
		inv := model.NewInventory()
		for p, n := range items {
			if err := inv.Append(p, n); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		return inv
	}
	return &sim.Instance{
		Rows:       20,
		Cols:       20,
		DroneCount: 2,
		Turns:      200,
		MaxPayload: 10,
		Products:   []model.Product{prodLight, prodHeavy},
		Warehouses: []*model.Node{
			model.NewWarehouse(model.Location{Col: 0, Row: 0}, seed(map[model.Product]int{prodLight: 10, prodHeavy: 10}), 0),
			model.NewWarehouse(model.Location{Col: 5, Row: 5}, seed(map[model.Product]int{prodLight: 5}), 1),
		},
		Customers: []*model.Node{
			model.NewCustomer(model.Location{Col: 2, Row: 2}, seed(map[model.Product]int{prodLight: 2, prodHeavy: 1}), 0),
			model.NewCustomer(model.Location{Col: 6, Row: 6}, seed(map[model.Product]int{prodLight: 3}), 1),
			model.NewCustomer(model.Location{Col: 1, Row: 4}, seed(map[model.Product]int{prodHeavy: 2}), 2),
		},
	}
}

func runOnce(t *testing.T, strat sim.Strategy) (*sim.Report, []mission.Command) {
	t.Helper()
	s, err := sim.New(testInstance(t), strat)
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	rep, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("run %s: %v", strat.Name(), err)
	}
	return rep, s.Missions().Commands()
}

func TestStrategiesCompleteAllCustomers(t *testing.T) {
	builders := map[string]func() sim.Strategy{
		"roundrobin": func() sim.Strategy { return NewRoundRobin() },
		"lightest":   func() sim.Strategy { return NewLightest() },
		"nearest":    func() sim.Strategy { return NewNearest() },
		"combined":   func() sim.Strategy { return NewCombined() },
		"batch":      func() sim.Strategy { return NewBatch(PickClosest) },
		"exhaustive": func() sim.Strategy { return NewExhaustive(0) },
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			rep, _ := runOnce(t, build())
			if rep.Completed != rep.Customers {
				t.Fatalf("completed %d of %d customers", rep.Completed, rep.Customers)
			}
			if rep.Score <= 0 {
				t.Fatalf("score = %d, want positive", rep.Score)
			}
		})
	}
}

// Two runs of the same strategy on the same instance must emit identical
// command logs.
func TestStrategiesDeterministic(t *testing.T) {
	builders := map[string]func() sim.Strategy{
		"roundrobin": func() sim.Strategy { return NewRoundRobin() },
		"batch":      func() sim.Strategy { return NewBatch(PickWeighted) },
		"exhaustive": func() sim.Strategy { return NewExhaustive(0) },
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			_, first := runOnce(t, build())
			_, second := runOnce(t, build())
			if len(first) != len(second) {
				t.Fatalf("command counts differ: %d vs %d", len(first), len(second))
			}
			for i := range first {
				if first[i] != second[i] {
					t.Fatalf("command %d differs: %s vs %s", i, first[i], second[i])
				}
			}
		})
	}
}

func TestBatchPlansMultiCustomerTrips(t *testing.T) {
	rep, cmds := runOnce(t, NewBatch(PickClosest))
	if rep.Completed != rep.Customers {
		t.Fatalf("completed %d of %d customers", rep.Completed, rep.Customers)
	}
	// The first trip serves several customers from one load: its load
	// command block is followed by deliveries to more than one customer.
	seen := map[int]bool{}
	for _, c := range cmds {
		if c.Op == 'D' {
			seen[c.Node] = true
		}
	}
	if len(seen) != 3 {
		t.Fatalf("deliveries reached %d customers, want 3", len(seen))
	}
}

func TestPickKeyValidate(t *testing.T) {
	for _, k := range []PickKey{PickClosest, PickWeighted, PickWeighted2, PickRelative} {
		if err := k.Validate(); err != nil {
			t.Fatalf("%s: %v", k, err)
		}
	}
	if err := PickKey("bogus").Validate(); err == nil {
		t.Fatalf("unknown picking key must be rejected")
	}
}

func TestFactoryBuildsConfiguredStrategies(t *testing.T) {
	names := Names()
	want := []string{"batch", "combined", "exhaustive", "lightest", "nearest", "roundrobin"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}

	s, err := New(moduleConf("batch", map[string]any{"picking": "weighted2"}))
	if err != nil {
		t.Fatalf("build batch: %v", err)
	}
	if b, ok := s.(*Batch); !ok || b.Picking != PickWeighted2 {
		t.Fatalf("batch config not applied: %#v", s)
	}

	s, err = New(moduleConf("exhaustive", map[string]any{"cutoff": 7}))
	if err != nil {
		t.Fatalf("build exhaustive: %v", err)
	}
	if e, ok := s.(*Exhaustive); !ok || e.Cutoff != 7 {
		t.Fatalf("exhaustive config not applied: %#v", s)
	}

	if _, err := New(moduleConf("unknown", nil)); err == nil {
		t.Fatalf("unknown strategy must be rejected")
	}
}
