package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"emporia/cart"
	"emporia/middleware"
	"emporia/models"
	"emporia/session"
	"emporia/shopapi"
	"emporia/utils"

	"github.com/julienschmidt/httprouter"
)

// Upstream is the commerce API client. Set in main.
var Upstream *shopapi.Client

// Register forwards a signup to the commerce API; account state lives there.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	env, err := Upstream.Register(r.Context(), req)
	if err != nil {
		log.Println("Register upstream error:", err)
		code := http.StatusBadGateway
		if ae, ok := err.(*shopapi.APIError); ok {
			code = ae.StatusCode
		}
		utils.RespondWithError(w, code, shopapi.ResolveMessage(err))
		return
	}

	message := "Registration successful"
	if env != nil && env.Message != "" {
		message = env.Message
	}
	utils.SendResponse(w, http.StatusCreated, nil, message, nil)
}

// Login exchanges credentials for a bearer token. The token is returned to
// the client, which holds it durably; this service never stores it.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	token, err := Upstream.Login(r.Context(), req)
	if err != nil || token == "" {
		log.Println("Login upstream error:", err)
		utils.RespondWithError(w, http.StatusUnauthorized, shopapi.ResolveMessage(err))
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{"token": token}, "Login successful", nil)
}

// Logout drops the visitor session and its cart. The client discards the
// bearer token on its side.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if sid := middleware.SessionIDFromRequest(r); sid != "" {
		if err := cart.Clear(sid); err != nil {
			log.Println("Logout cart clear error:", err)
		}
	}
	session.ClearCookie(w)
	utils.SendResponse(w, http.StatusOK, nil, "Logged out successfully", nil)
}
