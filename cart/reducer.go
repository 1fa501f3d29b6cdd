package cart

import "emporia/models"

// ActionType enumerates the cart transitions.
type ActionType string

const (
	AddItem       ActionType = "ADD_ITEM"
	IncrementItem ActionType = "INCREMENT_ITEM"
	DecrementItem ActionType = "DECREMENT_ITEM"
	RemoveItem    ActionType = "REMOVE_ITEM"
	ClearCart     ActionType = "CLEAR_CART"
)

// Action is one cart transition: the type plus the product snapshot it
// targets. CLEAR_CART ignores the item.
type Action struct {
	Type ActionType
	Item models.CartItem
}

// Apply is the pure transition function over the line-item list. Invariants:
// quantities stay >= 1 (a decrement from 1 removes the line item), product ids
// stay unique, and transitions targeting a missing product for decrement or
// remove are no-ops. The input slice is never mutated.
func Apply(items []models.CartItem, a Action) []models.CartItem {
	switch a.Type {
	case AddItem:
		if indexOf(items, a.Item.ProductID) >= 0 {
			// adding an already-present product is idempotent
			return clone(items)
		}
		next := clone(items)
		line := a.Item
		line.Quantity = 1
		return append(next, line)

	case IncrementItem:
		i := indexOf(items, a.Item.ProductID)
		if i < 0 {
			next := clone(items)
			line := a.Item
			line.Quantity = 1
			return append(next, line)
		}
		next := clone(items)
		next[i].Quantity++
		return next

	case DecrementItem:
		i := indexOf(items, a.Item.ProductID)
		if i < 0 {
			return clone(items)
		}
		next := clone(items)
		if next[i].Quantity <= 1 {
			return append(next[:i], next[i+1:]...)
		}
		next[i].Quantity--
		return next

	case RemoveItem:
		i := indexOf(items, a.Item.ProductID)
		if i < 0 {
			return clone(items)
		}
		next := clone(items)
		return append(next[:i], next[i+1:]...)

	case ClearCart:
		return []models.CartItem{}
	}
	return clone(items)
}

// Total is the derived cart total: Σ unit price × quantity.
func Total(items []models.CartItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Summarize builds the response shape the storefront pages read.
func Summarize(items []models.CartItem) models.Cart {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return models.Cart{
		Items:      items,
		TotalItems: count,
		TotalPrice: Total(items),
	}
}

func indexOf(items []models.CartItem, productID int64) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func clone(items []models.CartItem) []models.CartItem {
	next := make([]models.CartItem, len(items))
	copy(next, items)
	return next
}
