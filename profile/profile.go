package profile

import (
	"encoding/json"
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

// MyInfo returns the caller's profile including address and order history;
// the page paginates the order list client-side.
func MyInfo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := Upstream.MyInfo(r.Context(), tokenFromContext(r))
	if err != nil {
		log.Println("MyInfo upstream error:", err)
		code := http.StatusBadGateway
		if ae, ok := err.(*shopapi.APIError); ok {
			code = ae.StatusCode
		}
		utils.RespondWithError(w, code, shopapi.ResolveMessage(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": user})
}

// SaveAddress creates or replaces the caller's address.
func SaveAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if addr.Street == "" || addr.City == "" || addr.Country == "" {
		http.Error(w, "Missing address fields", http.StatusBadRequest)
		return
	}

	env, err := Upstream.SaveAddress(r.Context(), tokenFromContext(r), addr)
	if err != nil {
		log.Println("SaveAddress upstream error:", err)
		code := http.StatusBadGateway
		if ae, ok := err.(*shopapi.APIError); ok {
			code = ae.StatusCode
		}
		utils.RespondWithError(w, code, shopapi.ResolveMessage(err))
		return
	}

	message := "Address saved successfully"
	if env != nil && env.Message != "" {
		message = env.Message
	}
	utils.SendResponse(w, http.StatusOK, nil, message, nil)
}
