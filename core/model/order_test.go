package model

import (
	"errors"
	"testing"
)

func TestOrderAppendRemove(t *testing.T) {
	p := Product{Index: 0, Weight: 5}
	o := NewOrder()
	if err := o.Append(p, 3); err != nil {
		t.Fatalf("append: %v", err)
	}
	if o.Count(p) != 3 {
		t.Fatalf("count = %d, want 3", o.Count(p))
	}
	if err := o.Remove(p, 2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if o.Count(p) != 1 {
		t.Fatalf("count = %d, want 1", o.Count(p))
	}
	if err := o.Remove(p, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if o.Has(p) {
		t.Fatalf("product should be gone once its count reaches zero")
	}
	if !o.Empty() {
		t.Fatalf("order should be empty")
	}
}

func TestOrderNegativeAppend(t *testing.T) {
	o := NewOrder()
	err := o.Append(Product{Index: 0, Weight: 1}, -1)
	if !errors.Is(err, ErrNegativeQuantity) {
		t.Fatalf("err = %v, want ErrNegativeQuantity", err)
	}
}

func TestOrderRemoveTooMany(t *testing.T) {
	p := Product{Index: 0, Weight: 1}
	o := NewOrder()
	if err := o.Append(p, 2); err != nil {
		t.Fatalf("append: %v", err)
	}
	err := o.Remove(p, 3)
	if !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("err = %v, want ErrInsufficientInventory", err)
	}
}

func TestOrderProductsSorted(t *testing.T) {
	o := NewOrder()
	for _, idx := range []int{4, 0, 2} {
		if err := o.Append(Product{Index: idx, Weight: 1}, 1); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	ps := o.Products()
	if len(ps) != 3 {
		t.Fatalf("len = %d, want 3", len(ps))
	}
	for i := 1; i < len(ps); i++ {
		if ps[i-1].Index >= ps[i].Index {
			t.Fatalf("products not in ascending index order: %v", ps)
		}
	}
}

func TestOrderWeightAndClone(t *testing.T) {
	p1 := Product{Index: 0, Weight: 5}
	p2 := Product{Index: 1, Weight: 3}
	o := NewOrder()
	if err := o.Append(p1, 2); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := o.Append(p2, 1); err != nil {
		t.Fatalf("append: %v", err)
	}
	if o.Weight() != 13 {
		t.Fatalf("weight = %d, want 13", o.Weight())
	}
	cp := o.Clone()
	if err := cp.Remove(p1, 2); err != nil {
		t.Fatalf("remove on clone: %v", err)
	}
	if o.Count(p1) != 2 {
		t.Fatalf("clone mutation leaked into original")
	}
}

func TestInventoryWeightCache(t *testing.T) {
	p1 := Product{Index: 0, Weight: 5}
	p2 := Product{Index: 1, Weight: 3}
	inv := NewInventory()
	if err := inv.Append(p1, 2); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := inv.Append(p2, 3); err != nil {
		t.Fatalf("append: %v", err)
	}
	if inv.Weight() != 19 {
		t.Fatalf("weight = %d, want 19", inv.Weight())
	}
	if err := inv.Remove(p2, 2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if inv.Weight() != 13 {
		t.Fatalf("weight = %d, want 13", inv.Weight())
	}
	if inv.Weight() != inv.Order.Weight() {
		t.Fatalf("cached weight %d diverged from computed %d", inv.Weight(), inv.Order.Weight())
	}
	cp := inv.Clone()
	if err := cp.Remove(p1, 1); err != nil {
		t.Fatalf("remove on clone: %v", err)
	}
	if inv.Weight() != 13 || cp.Weight() != 8 {
		t.Fatalf("clone weights: original %d, clone %d", inv.Weight(), cp.Weight())
	}
}
