package strategy

import (
	"sort"

	"github.com/skyhaul/dronesim/core/model"
)

// MaximalLoad returns the subset of the order that fits within capacity.
// The order is expanded into unit items sorted heaviest-first and taken
// greedily; the pass stops at the first item that does not fit, and a
// second pass walks the remaining items lightest-first to fill whatever
// slack the heavy pass left. The two-pass shape is a deliberate packing
// approximation, kept for output compatibility.
func MaximalLoad(order *model.Order, capacity int) *model.Order {
	var items []model.Product
	for _, p := range order.Products() {
		for i := 0; i < order.Count(p); i++ {
			items = append(items, p)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Weight > items[j].Weight })

	out := model.NewOrder()
	w := 0
	i := 0
	for ; i < len(items); i++ {
		if w+items[i].Weight > capacity {
			break
		}
		_ = out.Append(items[i], 1)
		w += items[i].Weight
	}
	if i >= len(items) {
		return out
	}
	rest := items[i+1:]
	for j := len(rest) - 1; j >= 0; j-- {
		if w+rest[j].Weight > capacity {
			break
		}
		_ = out.Append(rest[j], 1)
		w += rest[j].Weight
	}
	return out
}
