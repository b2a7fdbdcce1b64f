// Package instance reads contest problem files and writes command logs.
package instance

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/skyhaul/dronesim/core/model"
	"github.com/skyhaul/dronesim/core/sim"
)

// Parse reads a problem instance in the contest text format: a header
// line (rows, columns, drones, turns, max payload), the product count and
// weight list, the warehouse blocks (location then a full stock vector)
// and the order blocks (location, item count, item product indexes). All
// values are whitespace separated; line boundaries carry no meaning.
func Parse(r io.Reader) (*sim.Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1<<20), 1<<20)
	sc.Split(bufio.ScanWords)
	next := func() (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		n, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, fmt.Errorf("token %q: %w", sc.Text(), err)
		}
		return n, nil
	}
	readLoc := func() (model.Location, error) {
		row, err := next()
		if err != nil {
			return model.Location{}, err
		}
		col, err := next()
		if err != nil {
			return model.Location{}, err
		}
		return model.Location{Col: col, Row: row}, nil
	}

	inst := &sim.Instance{}
	var err error
	if inst.Rows, err = next(); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if inst.Cols, err = next(); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if inst.DroneCount, err = next(); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if inst.Turns, err = next(); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if inst.MaxPayload, err = next(); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	nProducts, err := next()
	if err != nil {
		return nil, fmt.Errorf("parse product count: %w", err)
	}
	for i := 0; i < nProducts; i++ {
		w, err := next()
		if err != nil {
			return nil, fmt.Errorf("parse product %d: %w", i, err)
		}
		inst.Products = append(inst.Products, model.Product{Index: i, Weight: w})
	}

	nWarehouses, err := next()
	if err != nil {
		return nil, fmt.Errorf("parse warehouse count: %w", err)
	}
	for i := 0; i < nWarehouses; i++ {
		loc, err := readLoc()
		if err != nil {
			return nil, fmt.Errorf("parse warehouse %d: %w", i, err)
		}
		stock := model.NewInventory()
		for j := 0; j < nProducts; j++ {
			qty, err := next()
			if err != nil {
				return nil, fmt.Errorf("parse warehouse %d stock: %w", i, err)
			}
			if qty == 0 {
				continue
			}
			if err := stock.Append(inst.Products[j], qty); err != nil {
				return nil, fmt.Errorf("parse warehouse %d stock: %w", i, err)
			}
		}
		inst.Warehouses = append(inst.Warehouses, model.NewWarehouse(loc, stock, i))
	}

	nOrders, err := next()
	if err != nil {
		return nil, fmt.Errorf("parse order count: %w", err)
	}
	for i := 0; i < nOrders; i++ {
		loc, err := readLoc()
		if err != nil {
			return nil, fmt.Errorf("parse order %d: %w", i, err)
		}
		nItems, err := next()
		if err != nil {
			return nil, fmt.Errorf("parse order %d: %w", i, err)
		}
		order := model.NewInventory()
		for j := 0; j < nItems; j++ {
			idx, err := next()
			if err != nil {
				return nil, fmt.Errorf("parse order %d items: %w", i, err)
			}
			if idx < 0 || idx >= len(inst.Products) {
				return nil, fmt.Errorf("parse order %d: product index %d out of range", i, idx)
			}
			if err := order.Append(inst.Products[idx], 1); err != nil {
				return nil, fmt.Errorf("parse order %d items: %w", i, err)
			}
		}
		inst.Customers = append(inst.Customers, model.NewCustomer(loc, order, i))
	}

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}
