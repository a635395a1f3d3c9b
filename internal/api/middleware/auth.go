package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/planetgame/internal/api/apierr"
	"github.com/mcoot/planetgame/internal/model"
	"github.com/mcoot/planetgame/internal/services/identity"
)

type contextKey string

const identityContextKey contextKey = "identity"

// SessionCookie is the cookie and query parameter carrying the session token
const SessionCookie = "session"

// Identify resolves the caller from the request and stores the identity,
// possibly nil for anonymous callers, in the request context. A credential
// mismatch is rejected here; anonymous access is left to the operation.
func Identify(identityService *identity.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := identityService.Resolve(r.Context(), ExtractCredentials(r))
			if err != nil {
				apierr.WriteError(w, err)
				return
			}
			if id != nil {
				r = r.WithContext(WithIdentity(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ExtractCredentials collects the token and name/password from the request.
// Tokens come from a Bearer header, the session cookie or the session query
// parameter. Names come from HTTP Basic auth or the username/password
// query parameters.
func ExtractCredentials(r *http.Request) identity.Credentials {
	var creds identity.Credentials

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		creds.Token = strings.TrimPrefix(authHeader, "Bearer ")
	} else if cookie, err := r.Cookie(SessionCookie); err == nil {
		creds.Token = cookie.Value
	} else {
		creds.Token = r.URL.Query().Get(SessionCookie)
	}

	if name, password, ok := r.BasicAuth(); ok {
		creds.Name = name
		creds.Password = password
	} else {
		query := r.URL.Query()
		creds.Name = query.Get("username")
		creds.Password = query.Get("password")
	}

	return creds
}

// WithIdentity returns a context carrying the identity
func WithIdentity(ctx context.Context, id *model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// GetIdentity returns the resolved identity from the request context, or
// nil for anonymous callers
func GetIdentity(ctx context.Context) *model.Identity {
	id, _ := ctx.Value(identityContextKey).(*model.Identity)
	return id
}
