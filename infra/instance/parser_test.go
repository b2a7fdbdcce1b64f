package instance

import (
	"bytes"
	"strings"
	"testing"

	"github.com/skyhaul/dronesim/core/mission"
	"github.com/skyhaul/dronesim/core/model"
)

const sampleInstance = `100 100 3 50 500
3
100 5 450
2
0 0
5 1 0
5 5
0 10 2
3
1 1
2
2 0
3 3
1
0
5 6
1
2
`

func TestParse(t *testing.T) {
	inst, err := Parse(strings.NewReader(sampleInstance))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if inst.Rows != 100 || inst.Cols != 100 {
		t.Fatalf("grid = %dx%d, want 100x100", inst.Rows, inst.Cols)
	}
	if inst.DroneCount != 3 || inst.Turns != 50 || inst.MaxPayload != 500 {
		t.Fatalf("header = %d drones, %d turns, payload %d", inst.DroneCount, inst.Turns, inst.MaxPayload)
	}
	if len(inst.Products) != 3 || inst.Products[1].Weight != 5 {
		t.Fatalf("products = %v", inst.Products)
	}
	if len(inst.Warehouses) != 2 {
		t.Fatalf("warehouses = %d, want 2", len(inst.Warehouses))
	}
	wh := inst.Warehouses[0]
	if wh.Location() != (model.Location{Col: 0, Row: 0}) {
		t.Fatalf("warehouse 0 at %v", wh.Location())
	}
	// The zero stock entry for product 2 must not appear.
	if got := wh.Order().Count(inst.Products[0]); got != 5 {
		t.Fatalf("warehouse 0 stock p0 = %d, want 5", got)
	}
	if wh.Order().Has(inst.Products[2]) {
		t.Fatalf("warehouse 0 must not list a zero stock product")
	}
	if len(inst.Customers) != 3 {
		t.Fatalf("customers = %d, want 3", len(inst.Customers))
	}
	cust := inst.Customers[0]
	if cust.Location() != (model.Location{Col: 1, Row: 1}) {
		t.Fatalf("customer 0 at %v", cust.Location())
	}
	if got := cust.Order().Count(inst.Products[2]); got != 1 {
		t.Fatalf("customer 0 wants %d of p2, want 1", got)
	}
	if got := cust.Order().Count(inst.Products[0]); got != 1 {
		t.Fatalf("customer 0 wants %d of p0, want 1", got)
	}
}

func TestParseTruncated(t *testing.T) {
	if _, err := Parse(strings.NewReader("100 100 3")); err == nil {
		t.Fatalf("truncated header must be rejected")
	}
	if _, err := Parse(strings.NewReader("100 100 3 50 500\n2\n10")); err == nil {
		t.Fatalf("truncated product list must be rejected")
	}
}

func TestParseBadToken(t *testing.T) {
	if _, err := Parse(strings.NewReader("100 abc 3 50 500")); err == nil {
		t.Fatalf("non numeric token must be rejected")
	}
}

func TestParseItemIndexOutOfRange(t *testing.T) {
	in := "10 10 1 50 100\n1\n10\n1\n0 0\n5\n1\n1 1\n1\n7\n"
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Fatalf("out of range product index must be rejected")
	}
}

func TestWriteCommands(t *testing.T) {
	cmds := []mission.Command{
		{Drone: 0, Op: 'L', Node: 1, Product: 2, Quantity: 3},
		{Drone: 0, Op: 'D', Node: 4, Product: 2, Quantity: 3},
	}
	var buf bytes.Buffer
	if err := WriteCommands(&buf, cmds); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "2\n0 L 1 2 3\n0 D 4 2 3\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteCommandsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCommands(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "0\n" {
		t.Fatalf("output = %q, want %q", buf.String(), "0\n")
	}
}
