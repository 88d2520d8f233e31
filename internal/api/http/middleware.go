package http

import (
	"context"
	"net"
	"net/http"
	"strings"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/security"
	"carrental-backoffice/internal/service"
)

type actorKey struct{}

func withActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// actorFrom returns the request actor; requests that never passed the auth
// middleware resolve as guests.
func actorFrom(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(actorKey{}).(domain.Actor); ok {
		return actor
	}
	return domain.GuestActor()
}

// requestMetaMiddleware captures client address and user agent for the audit
// trail.
func requestMetaMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.Header.Get("X-Forwarded-For")
		if ip != "" {
			// First hop is the client.
			ip = strings.TrimSpace(strings.Split(ip, ",")[0])
		} else {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			ip = host
		}
		ctx := service.WithRequestMeta(r.Context(), service.RequestMeta{
			IPAddress: ip,
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authMiddleware resolves the request actor from an optional Bearer token. A
// missing or invalid token leaves the caller a guest; role enforcement is
// done per route.
func authMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "UNAUTHORIZED"})
				return
			}

			roles := make([]domain.Role, len(claims.Roles))
			for i, role := range claims.Roles {
				roles[i] = domain.Role(role)
			}
			actor := domain.AuthenticatedActor(claims.UserID, claims.Email, roles)
			next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
		})
	}
}

// requireStaff rejects guests and plain users.
func requireStaff(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFrom(r.Context())
		if actor.Kind != domain.ActorKindAuthenticated {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Code: "UNAUTHORIZED"})
			return
		}
		if !actor.IsStaff() {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "staff access required", Code: "FORBIDDEN"})
			return
		}
		next(w, r)
	}
}

// requireAuth rejects guests.
func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFrom(r.Context())
		if actor.Kind != domain.ActorKindAuthenticated {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Code: "UNAUTHORIZED"})
			return
		}
		next(w, r)
	}
}
