package analytics

import (
	"log"
	"net/http"

	"emporia/globals"
	"emporia/shopapi"
	"emporia/utils"

	"github.com/julienschmidt/httprouter"
)

// Upstream is the commerce API client. Set in main.
var Upstream *shopapi.Client

// RevenueTrends returns [timestamp, revenue] pairs for the requested date
// range, straight from the commerce API. Admin-guarded at the route.
func RevenueTrends(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" || endDate == "" {
		http.Error(w, "startDate and endDate are required", http.StatusBadRequest)
		return
	}

	token, _ := r.Context().Value(globals.TokenKey).(string)
	pairs, err := Upstream.RevenueTrends(r.Context(), token, startDate, endDate)
	if err != nil {
		log.Println("RevenueTrends upstream error:", err)
		code := http.StatusBadGateway
		if ae, ok := err.(*shopapi.APIError); ok {
			code = ae.StatusCode
		}
		utils.RespondWithError(w, code, shopapi.ResolveMessage(err))
		return
	}
	if pairs == nil {
		pairs = [][2]float64{}
	}
	utils.RespondWithJSON(w, http.StatusOK, pairs)
}
