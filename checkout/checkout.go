// Package checkout gates order placement: every check must pass, in order,
// before anything is sent to the commerce API.
package checkout

import (
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"emporia/cart"
	"emporia/middleware"
	"emporia/models"
	"emporia/rdx"
	"emporia/shopapi"
	"emporia/utils"

	"github.com/julienschmidt/httprouter"
)

// Upstream is the commerce API client. Set in main.
var Upstream *shopapi.Client

// MinOrderValue is the server-agreed threshold the cart total must meet.
var MinOrderValue = loadMinOrderValue()

const (
	emptyCartMsg = "Your cart is empty. Add items before checkout."
	inFlightMsg  = "A checkout for this session is already in progress."
)

func loadMinOrderValue() float64 {
	if v := os.Getenv("MIN_ORDER_VALUE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return 500
}

func lockKey(sessionID string) string {
	return "checkout:lock:" + sessionID
}

// PlaceOrder runs the checkout sequence: credential, non-empty cart, minimum
// total, single-flight, then the upstream order call. The first failing check
// short-circuits with its own message and nothing is sent upstream. On
// success the cart is cleared; on upstream failure it is kept.
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := utils.BearerToken(r)
	if token == "" {
		http.Redirect(w, r, "/login?from="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
		return
	}

	sid := middleware.SessionIDFromRequest(r)
	if sid == "" {
		http.Error(w, "No session", http.StatusBadRequest)
		return
	}

	items, err := cart.LoadItems(sid)
	if err != nil {
		log.Println("PlaceOrder cart load error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, emptyCartMsg)
		return
	}

	total := cart.Total(items)
	if total < MinOrderValue {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Order total must be at least "+strconv.FormatFloat(MinOrderValue, 'f', -1, 64)+" to checkout.")
		return
	}

	// One checkout per session at a time; a second submit while the first is
	// in flight is rejected rather than duplicating the order upstream.
	acquired, err := rdx.RdxSetNX(lockKey(sid), utils.GenerateRandomString(8), 30*time.Second)
	if err != nil {
		log.Println("PlaceOrder lock error:", err)
		http.Error(w, "Checkout unavailable", http.StatusInternalServerError)
		return
	}
	if !acquired {
		utils.RespondWithError(w, http.StatusConflict, inFlightMsg)
		return
	}
	defer func() {
		if derr := rdx.RdxDel(lockKey(sid)); derr != nil {
			log.Println("PlaceOrder lock release error:", derr)
		}
	}()

	order := models.OrderRequest{
		TotalPrice: total,
		Items:      make([]models.OrderLine, 0, len(items)),
	}
	for _, it := range items {
		order.Items = append(order.Items, models.OrderLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	env, err := Upstream.PlaceOrder(r.Context(), token, order)
	if err != nil {
		log.Println("PlaceOrder upstream error:", err)
		code := http.StatusBadGateway
		if ae, ok := err.(*shopapi.APIError); ok {
			code = ae.StatusCode
		}
		utils.RespondWithError(w, code, shopapi.ResolveMessage(err))
		return
	}

	if err := cart.Clear(sid); err != nil {
		// The order went through; a stale cart is the lesser failure.
		log.Println("PlaceOrder cart clear error:", err)
	}

	message := "Order placed successfully"
	if env != nil && env.Message != "" {
		message = env.Message
	}
	utils.SendResponse(w, http.StatusOK, nil, message, nil)
}
