package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"audiobio/internal/domain/entities"
	"audiobio/internal/domain/interfaces/repository"
	Iservices "audiobio/internal/domain/interfaces/services"
	"audiobio/internal/infra/logger"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// AuthMiddleware validates the bearer token, loads the user record it
// was issued for and stashes the record in the request context. The
// record is loaded once per request; every operation in that request
// mutates and persists this one snapshot.
func AuthMiddleware(log *logger.Logger, auth Iservices.IAuthService, repo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			email, err := auth.ParseToken(token)
			if err != nil {
				log.Warn(fmt.Sprintf("Rejected request with invalid token: %s", err.Error()))
				unauthorized(w)
				return
			}

			user, err := repo.FindByEmail(r.Context(), email)
			if err != nil {
				log.Warn(fmt.Sprintf("Token subject %s has no user record", email))
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser extracts the authenticated user record placed by
// AuthMiddleware.
func CurrentUser(r *http.Request) (*entities.User, bool) {
	user, ok := r.Context().Value(userContextKey).(*entities.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
}
