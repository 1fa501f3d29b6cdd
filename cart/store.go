package cart

import (
	"encoding/json"
	"fmt"

	"emporia/models"
	"emporia/rdx"
	"emporia/session"

	"github.com/redis/go-redis/v9"
)

// The cart is session-lifetime state: it lives in Redis under the visitor
// session id and expires with the session. Nothing durable is kept here.

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// LoadItems returns the current line items for a session; a missing key is an
// empty cart, not an error.
func LoadItems(sessionID string) ([]models.CartItem, error) {
	raw, err := rdx.RdxGet(cartKey(sessionID))
	if err == redis.Nil {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func saveItems(sessionID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return rdx.SetWithExpiry(cartKey(sessionID), string(data), session.TTL)
}

// Dispatch loads the session's cart, applies one transition, and stores the
// result. It returns the new cart summary.
func Dispatch(sessionID string, a Action) (models.Cart, error) {
	items, err := LoadItems(sessionID)
	if err != nil {
		return models.Cart{}, err
	}
	next := Apply(items, a)
	if err := saveItems(sessionID, next); err != nil {
		return models.Cart{}, err
	}
	return Summarize(next), nil
}

// Clear drops the session's cart entirely (used after a successful order).
func Clear(sessionID string) error {
	return rdx.RdxDel(cartKey(sessionID))
}
