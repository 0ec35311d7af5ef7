// Package cart holds the session-scoped shopping cart: product id to quantity.
package cart

import "sort"

// Cart maps product ids to quantities. Quantities only grow through Add; the zero value is usable.
type Cart map[uint]int

// Add increments the quantity for productID by one.
func (c *Cart) Add(productID uint) {
	if *c == nil {
		*c = make(Cart)
	}
	(*c)[productID]++
}

// Items returns a copy of the mapping.
func (c Cart) Items() map[uint]int {
	out := make(map[uint]int, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// Quantity returns the quantity held for productID.
func (c Cart) Quantity(productID uint) int {
	return c[productID]
}

// IDs returns the product ids in ascending order.
func (c Cart) IDs() []uint {
	ids := make([]uint, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len is the number of distinct products.
func (c Cart) Len() int {
	return len(c)
}

// IsEmpty reports whether the cart holds nothing.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

// Clear empties the cart.
func (c *Cart) Clear() {
	*c = Cart{}
}
