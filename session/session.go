// Package session issues and verifies the visitor-session token. The token
// only names a session id; it carries no role or identity. The upstream bearer
// credential is client-held and forwarded per request, and role checks always
// go back to the commerce API.
package session

import (
	"fmt"
	"net/http"
	"time"

	"emporia/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "emporia_sid"

// TTL bounds the visitor session; the cart lives and dies with it.
const TTL = 12 * time.Hour

// Claims is the signed payload of a visitor-session token.
type Claims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// New mints a fresh session id and its signed token.
func New() (string, string, error) {
	sid := uuid.New().String()
	claims := &Claims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(globals.SessionSecret)
	if err != nil {
		return "", "", err
	}
	return sid, signed, nil
}

// Parse validates a signed session token and returns the session id.
func Parse(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.SessionSecret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	if claims.SessionID == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.SessionID, nil
}

// FromRequest resolves the session id from the request cookie, if present
// and valid.
func FromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	sid, err := Parse(c.Value)
	if err != nil {
		return "", false
	}
	return sid, true
}

// SetCookie attaches the signed token to the response.
func SetCookie(w http.ResponseWriter, signed string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie (logout).
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
