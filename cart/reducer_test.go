package cart

import (
	"testing"

	"emporia/models"
)

func item(id int64, price float64) models.CartItem {
	return models.CartItem{ProductID: id, Name: "p", Price: price}
}

func TestAddItemIsIdempotent(t *testing.T) {
	items := Apply(nil, Action{Type: AddItem, Item: item(1, 100)})
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("expected one line item with quantity 1, got %+v", items)
	}

	again := Apply(items, Action{Type: AddItem, Item: item(1, 100)})
	if len(again) != 1 || again[0].Quantity != 1 {
		t.Fatalf("adding a present product must not change quantity, got %+v", again)
	}
}

func TestIncrementCreatesAndIncrements(t *testing.T) {
	items := Apply(nil, Action{Type: IncrementItem, Item: item(7, 30)})
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("increment on absent product should insert at 1, got %+v", items)
	}

	items = Apply(items, Action{Type: IncrementItem, Item: item(7, 30)})
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestDecrementAtOneRemoves(t *testing.T) {
	items := Apply(nil, Action{Type: AddItem, Item: item(1, 10)})
	items = Apply(items, Action{Type: DecrementItem, Item: item(1, 10)})
	if len(items) != 0 {
		t.Fatalf("decrement from 1 must remove the line item, got %+v", items)
	}
}

func TestDecrementAndRemoveOnMissingAreNoOps(t *testing.T) {
	items := Apply(nil, Action{Type: AddItem, Item: item(1, 10)})

	afterDec := Apply(items, Action{Type: DecrementItem, Item: item(99, 0)})
	if len(afterDec) != 1 || afterDec[0].Quantity != 1 {
		t.Fatalf("decrement on missing product changed state: %+v", afterDec)
	}

	afterRem := Apply(items, Action{Type: RemoveItem, Item: item(99, 0)})
	if len(afterRem) != 1 {
		t.Fatalf("remove on missing product changed state: %+v", afterRem)
	}
}

func TestRemoveAndClear(t *testing.T) {
	items := Apply(nil, Action{Type: AddItem, Item: item(1, 10)})
	items = Apply(items, Action{Type: AddItem, Item: item(2, 20)})

	items = Apply(items, Action{Type: RemoveItem, Item: item(1, 10)})
	if len(items) != 1 || items[0].ProductID != 2 {
		t.Fatalf("expected only product 2 left, got %+v", items)
	}

	items = Apply(items, Action{Type: ClearCart})
	if len(items) != 0 {
		t.Fatalf("clear must empty the cart, got %+v", items)
	}
}

func TestQuantityNeverBelowOne(t *testing.T) {
	var items []models.CartItem
	script := []Action{
		{Type: AddItem, Item: item(1, 5)},
		{Type: IncrementItem, Item: item(1, 5)},
		{Type: IncrementItem, Item: item(2, 9)},
		{Type: DecrementItem, Item: item(1, 5)},
		{Type: DecrementItem, Item: item(1, 5)},
		{Type: DecrementItem, Item: item(1, 5)},
		{Type: IncrementItem, Item: item(2, 9)},
		{Type: DecrementItem, Item: item(2, 9)},
	}
	for _, a := range script {
		items = Apply(items, a)
		for _, it := range items {
			if it.Quantity < 1 {
				t.Fatalf("quantity below 1 after %s: %+v", a.Type, items)
			}
		}
	}
}

func TestTotalFollowsTransitions(t *testing.T) {
	items := Apply(nil, Action{Type: AddItem, Item: item(1, 100)})
	items = Apply(items, Action{Type: IncrementItem, Item: item(1, 100)})
	items = Apply(items, Action{Type: AddItem, Item: item(2, 50)})

	if got := Total(items); got != 250 {
		t.Fatalf("expected total 250, got %v", got)
	}

	// decrementing product 2 once removes it entirely
	items = Apply(items, Action{Type: DecrementItem, Item: item(2, 50)})
	if got := Total(items); got != 200 {
		t.Fatalf("expected total 200 after removal, got %v", got)
	}
	if len(items) != 1 {
		t.Fatalf("expected product 2 removed, got %+v", items)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	orig := []models.CartItem{{ProductID: 1, Name: "p", Price: 10, Quantity: 2}}
	_ = Apply(orig, Action{Type: IncrementItem, Item: item(1, 10)})
	if orig[0].Quantity != 2 {
		t.Fatalf("input slice was mutated: %+v", orig)
	}
}

func TestSummarize(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, Price: 100, Quantity: 2},
		{ProductID: 2, Price: 50, Quantity: 1},
	}
	c := Summarize(items)
	if c.TotalItems != 3 || c.TotalPrice != 250 {
		t.Fatalf("unexpected summary: %+v", c)
	}

	empty := Summarize(nil)
	if empty.Items == nil || len(empty.Items) != 0 {
		t.Fatalf("empty summary must carry an empty slice, got %+v", empty)
	}
}
