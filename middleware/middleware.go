package middleware

import (
	"context"
	"net/http"
	"net/url"

	"emporia/globals"
	"emporia/models"
	"emporia/session"
	"emporia/shopapi"
	"emporia/utils"

	"github.com/julienschmidt/httprouter"
)

// Upstream is the commerce API client used for role resolution. Set in main.
var Upstream *shopapi.Client

// redirectToLogin sends the visitor to the login page carrying the originally
// requested location, so the login flow can return them afterwards. Redirect
// is the only denial outcome; there is no separate "access denied" state.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login?from="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
}

// WithSession guarantees a visitor session: a valid session cookie is reused,
// otherwise a fresh one is minted and set. The session id lands on the context.
func WithSession(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sid, ok := session.FromRequest(r)
		if !ok {
			var signed string
			var err error
			sid, signed, err = session.New()
			if err != nil {
				http.Error(w, "Failed to start session", http.StatusInternalServerError)
				return
			}
			session.SetCookie(w, signed)
		}
		ctx := context.WithValue(r.Context(), globals.SessionIDKey, sid)
		next(w, r.WithContext(ctx), ps)
	}
}

// Protected allows the request through only when a bearer credential is
// present; anonymous visitors are redirected to login.
func Protected(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := utils.BearerToken(r)
		if token == "" {
			redirectToLogin(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), globals.TokenKey, token)
		next(w, r.WithContext(ctx), ps)
	}
}

// AdminOnly resolves the caller's role against the commerce API on every
// request. The credential alone never proves admin.
func AdminOnly(next httprouter.Handle) httprouter.Handle {
	return requireRole(next, models.RoleAdmin, models.RoleRootAdmin)
}

// RootOnly gates the admin-registration surface.
func RootOnly(next httprouter.Handle) httprouter.Handle {
	return requireRole(next, models.RoleRootAdmin)
}

func requireRole(next httprouter.Handle, roles ...string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := utils.BearerToken(r)
		if token == "" {
			redirectToLogin(w, r)
			return
		}
		user, err := Upstream.MyInfo(r.Context(), token)
		if err != nil {
			redirectToLogin(w, r)
			return
		}
		allowed := false
		for _, role := range roles {
			if user.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			redirectToLogin(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), globals.TokenKey, token)
		next(w, r.WithContext(ctx), ps)
	}
}

// SessionIDFromRequest returns the visitor session id placed by WithSession.
func SessionIDFromRequest(r *http.Request) string {
	sid, ok := r.Context().Value(globals.SessionIDKey).(string)
	if !ok {
		return ""
	}
	return sid
}
