// Package catalog holds the static menu snapshot served to browsing clients.
// Item ids are unique within one snapshot; the cart engine relies on that.
package catalog

import "github.com/foodcort/foodcort/internal/core/domain"

var items = []domain.MenuItem{
	{ID: 1, Name: "Pizza Margherita", Price: 800, Offer: "10% off", Image: "https://source.unsplash.com/400x300/?pizza"},
	{ID: 2, Name: "Burger Deluxe", Price: 500, Offer: "Buy 1 Get 1", Image: "https://source.unsplash.com/400x300/?burger"},
	{ID: 3, Name: "Pasta Alfredo", Price: 700, Offer: "20% off", Image: "https://source.unsplash.com/400x300/?pasta"},
	{ID: 4, Name: "Sushi Platter", Price: 1200, Offer: "Special Combo", Image: "https://source.unsplash.com/400x300/?sushi"},
}

// Items returns a copy of the current catalog snapshot.
func Items() []domain.MenuItem {
	out := make([]domain.MenuItem, len(items))
	copy(out, items)
	return out
}
