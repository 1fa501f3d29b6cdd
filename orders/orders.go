package orders

import (
	"log"
	"net/http"

	"emporia/globals"
	"emporia/models"
	"emporia/shopapi"
	"emporia/utils"

	"github.com/julienschmidt/httprouter"
)

// Upstream is the commerce API client. Set in main.
var Upstream *shopapi.Client

func tokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(globals.TokenKey).(string)
	return token
}

// FilterOrders lists order items, optionally narrowed by itemId or status.
func FilterOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	itemID := r.URL.Query().Get("itemId")
	status := r.URL.Query().Get("status")

	items, err := Upstream.FilterOrders(r.Context(), tokenFromContext(r), itemID, status)
	if err != nil {
		log.Println("FilterOrders upstream error:", err)
		code := http.StatusBadGateway
		if ae, ok := err.(*shopapi.APIError); ok {
			code = ae.StatusCode
		}
		utils.RespondWithError(w, code, shopapi.ResolveMessage(err))
		return
	}
	if items == nil {
		items = []models.OrderItem{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orderItemList": items})
}

// statusIndex returns the position of a status on the ladder, or -1.
func statusIndex(status string) int {
	for i, s := range models.OrderStatuses {
		if s == status {
			return i
		}
	}
	return -1
}

// UpdateOrderItemStatus moves an order item forward on the status ladder.
// Moving backwards (e.g. DELIVERED back to PENDING) is rejected here before
// anything is sent upstream.
func UpdateOrderItemStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itemID := ps.ByName("itemid")
	newStatus := r.URL.Query().Get("status")
	token := tokenFromContext(r)

	newIdx := statusIndex(newStatus)
	if newIdx < 0 {
		http.Error(w, "Unknown order status", http.StatusBadRequest)
		return
	}

	current, err := Upstream.FilterOrders(r.Context(), token, itemID, "")
	if err != nil || len(current) == 0 {
		log.Println("UpdateOrderItemStatus lookup error:", err)
		utils.RespondWithError(w, http.StatusNotFound, "Order item not found")
		return
	}
	if curIdx := statusIndex(current[0].Status); curIdx >= 0 && newIdx <= curIdx {
		utils.RespondWithError(w, http.StatusBadRequest, "Order status can only move forward")
		return
	}

	env, err := Upstream.UpdateOrderItemStatus(r.Context(), token, itemID, newStatus)
	if err != nil {
		log.Println("UpdateOrderItemStatus upstream error:", err)
		code := http.StatusBadGateway
		if ae, ok := err.(*shopapi.APIError); ok {
			code = ae.StatusCode
		}
		utils.RespondWithError(w, code, shopapi.ResolveMessage(err))
		return
	}

	message := "Order item status updated"
	if env != nil && env.Message != "" {
		message = env.Message
	}
	utils.SendResponse(w, http.StatusOK, nil, message, nil)
}
