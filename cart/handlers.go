package cart

import (
	"encoding/json"
	"log"
	"net/http"

	"emporia/middleware"
	"emporia/models"
	"emporia/utils"

	"github.com/julienschmidt/httprouter"
)

// GetCart returns the session's cart with derived totals.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sid := middleware.SessionIDFromRequest(r)
	if sid == "" {
		http.Error(w, "No session", http.StatusBadRequest)
		return
	}

	items, err := LoadItems(sid)
	if err != nil {
		log.Println("GetCart load error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, Summarize(items))
}

// AddToCart inserts a line item with quantity 1; adding a product already in
// the cart changes nothing.
func AddToCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dispatchHandler(w, r, AddItem, true)
}

func IncrementInCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dispatchHandler(w, r, IncrementItem, true)
}

// DecrementInCart lowers a line item's quantity; at quantity 1 the line item
// is removed instead of being stored at zero.
func DecrementInCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dispatchHandler(w, r, DecrementItem, false)
}

func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dispatchHandler(w, r, RemoveItem, false)
}

// EmptyCart clears every line item for the session.
func EmptyCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sid := middleware.SessionIDFromRequest(r)
	if sid == "" {
		http.Error(w, "No session", http.StatusBadRequest)
		return
	}
	if err := Clear(sid); err != nil {
		log.Println("EmptyCart error:", err)
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, Summarize(nil))
}

// dispatchHandler decodes the product snapshot and applies one transition.
// needSnapshot marks actions that can create a line item and therefore need
// name and price; decrement/remove only need the product id.
func dispatchHandler(w http.ResponseWriter, r *http.Request, t ActionType, needSnapshot bool) {
	sid := middleware.SessionIDFromRequest(r)
	if sid == "" {
		http.Error(w, "No session", http.StatusBadRequest)
		return
	}

	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Printf("cart %s decode error: %v", t, err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if item.ProductID <= 0 {
		http.Error(w, "Missing or invalid productId", http.StatusBadRequest)
		return
	}
	if needSnapshot && (item.Name == "" || item.Price <= 0) {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	updated, err := Dispatch(sid, Action{Type: t, Item: item})
	if err != nil {
		log.Printf("cart %s dispatch error: %v", t, err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}
