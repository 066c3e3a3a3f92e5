// Package cart implements the in-memory shopping cart for one browsing
// session. A single Engine instance is the only source of truth: every
// presentation surface (dashboard badge, cart page) reads and mutates the
// same instance, so all of them observe identical totals.
//
// Prices are integer cents throughout; totals are exact sums, recomputed on
// every read.
package cart

import "sync"

// Item is one catalog entry as offered to the cart.
type Item struct {
	ID        int64
	Name      string
	UnitPrice int64 // cents
	Offer     string
}

// Line is one row of the cart, uniquely keyed by Item.ID. Qty is ≥ 1 for as
// long as the line exists; a line never persists at quantity zero.
type Line struct {
	Item
	Qty int
}

// Engine owns the cart lines for the current session. Mutations are
// synchronous and read-after-write consistent.
type Engine struct {
	mu    sync.Mutex
	lines []Line // insertion-ordered
}

func New() *Engine {
	return &Engine{}
}

// AddOrIncrement creates a line with quantity qty for a new item, or raises
// the existing line's quantity by qty. It never fails; qty values below 1
// are treated as 1.
func (e *Engine) AddOrIncrement(item Item, qty int) {
	if qty < 1 {
		qty = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].ID == item.ID {
			e.lines[i].Qty += qty
			return
		}
	}
	e.lines = append(e.lines, Line{Item: item, Qty: qty})
}

// ChangeQuantity adjusts the line's quantity by delta. This is the single
// rule governing both increment and decrement: when the new quantity drops
// to zero or below the line is removed entirely, so removal-by-decrement and
// explicit removal are observably identical. Unknown ids are a no-op.
func (e *Engine) ChangeQuantity(id int64, delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].ID != id {
			continue
		}
		newQty := e.lines[i].Qty + delta
		if newQty <= 0 {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
		} else {
			e.lines[i].Qty = newQty
		}
		return
	}
}

// Remove deletes the line if present. Idempotent.
func (e *Engine) Remove(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].ID == id {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			return
		}
	}
}

// TotalItems is the sum of all line quantities, used for badge counts.
func (e *Engine) TotalItems() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, l := range e.lines {
		total += l.Qty
	}
	return total
}

// TotalPrice is Σ unitPrice×qty in cents, recomputed on every call.
func (e *Engine) TotalPrice() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var total int64
	for _, l := range e.lines {
		total += l.UnitPrice * int64(l.Qty)
	}
	return total
}

// Lines returns a copy of the cart rows in insertion order.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}
