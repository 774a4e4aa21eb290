package api

import (
	"context"
	"net/http"
)

// actorContextKey is the context key for the authenticated actor.
type actorContextKey struct{}

// Actor holds the authenticated panel user for a request. Authentication
// itself happens upstream (the auth proxy terminates the session and
// forwards identity headers); this service only consumes the result.
type Actor struct {
	ID    string
	Email string
}

// ActorMiddleware extracts the actor from forwarded identity headers and
// stores it on the request context. Requests without identity headers
// pass through unauthenticated; route groups that need an actor enforce
// that themselves.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID != "" {
			actor := &Actor{
				ID:    userID,
				Email: r.Header.Get("X-User-Email"),
			}
			r = r.WithContext(context.WithValue(r.Context(), actorContextKey{}, actor))
		}
		next.ServeHTTP(w, r)
	})
}

// ActorFromContext returns the authenticated actor, or nil.
func ActorFromContext(ctx context.Context) *Actor {
	if a, ok := ctx.Value(actorContextKey{}).(*Actor); ok {
		return a
	}
	return nil
}

// RequireActor responds 401 when no actor is present.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
