package globals

import (
	"context"
	"os"
)

// Context keys
type ContextKey string

const SessionIDKey ContextKey = "sessionId"
const TokenKey ContextKey = "token"

var Ctx = context.Background()

// SessionSecret signs the visitor-session tokens. Override via SESSION_SECRET.
var SessionSecret = []byte(getenv("SESSION_SECRET", "change_me_in_production"))

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
