package cart

import "sort"

// Line is one product's quantity record within a user's cart. Price is a
// snapshot copied from the product at add time, not a live reference.
// Quantity is always >= 1; a line that would drop to zero is deleted from
// the store, never written back.
type Line struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Collection maps product id to the cart line for that product, scoped to
// one user. At most one line exists per product; the key always equals the
// contained line's id.
type Collection map[int64]Line

// Total recomputes the cart total from scratch on every call. No running
// accumulator is carried across snapshots, so the total cannot drift.
func (c Collection) Total() float64 {
	var total float64
	for _, line := range c {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Lines returns the collection's lines ordered by product id, for stable
// rendering.
func (c Collection) Lines() []Line {
	lines := make([]Line, 0, len(c))
	for _, line := range c {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines
}
