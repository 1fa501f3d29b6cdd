package cart

import (
	"testing"

	"emporia/models"
	"emporia/rdx"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdx.Conn = redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestDispatchPersistsAcrossLoads(t *testing.T) {
	setupRedis(t)

	c, err := Dispatch("sess1", Action{Type: AddItem, Item: models.CartItem{ProductID: 1, Name: "tea", Price: 120}})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if c.TotalItems != 1 || c.TotalPrice != 120 {
		t.Fatalf("unexpected cart after add: %+v", c)
	}

	items, err := LoadItems("sess1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 1 || items[0].Name != "tea" || items[0].Quantity != 1 {
		t.Fatalf("persisted items wrong: %+v", items)
	}
}

func TestLoadItemsMissingKeyIsEmptyCart(t *testing.T) {
	setupRedis(t)

	items, err := LoadItems("nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestCartsAreIsolatedPerSession(t *testing.T) {
	setupRedis(t)

	if _, err := Dispatch("a", Action{Type: AddItem, Item: models.CartItem{ProductID: 1, Name: "x", Price: 10}}); err != nil {
		t.Fatalf("dispatch a: %v", err)
	}
	items, err := LoadItems("b")
	if err != nil {
		t.Fatalf("load b: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("session b should not see session a's cart: %+v", items)
	}
}

func TestClearDropsCart(t *testing.T) {
	setupRedis(t)

	if _, err := Dispatch("s", Action{Type: AddItem, Item: models.CartItem{ProductID: 1, Name: "x", Price: 10}}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if err := Clear("s"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	items, err := LoadItems("s")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart not cleared: %+v", items)
	}
}
