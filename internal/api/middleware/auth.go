package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"taskmanager/internal/common"
	"taskmanager/internal/common/security"
	"taskmanager/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey    contextKey = "userID"
	UserEmailCtxKey contextKey = "userEmail"
	UserRoleCtxKey  contextKey = "userRole"
)

// Authenticator validates the bearer token and resolves its subject to a
// stored identity. The concrete failure (missing, malformed, bad signature,
// expired, unknown subject) is logged but the response body is the same
// generic 401 for all of them.
func Authenticator(userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := jwtauth.TokenFromHeader(r)
			if tokenString == "" {
				respondUnauthenticated(w, "no bearer token")
				return
			}

			subject, err := security.ValidateToken(tokenString)
			if err != nil {
				respondUnauthenticated(w, err.Error())
				return
			}

			user, err := userRepo.FindByEmail(r.Context(), subject)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					respondUnauthenticated(w, "subject not found")
					return
				}
				common.RespondWithDomainError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, user.ID)
			ctx = context.WithValue(ctx, UserEmailCtxKey, user.Email)
			ctx = context.WithValue(ctx, UserRoleCtxKey, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func respondUnauthenticated(w http.ResponseWriter, reason string) {
	log.Printf("auth: rejected request: %s", reason)
	common.RespondWithError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
}

// GetUserIDFromContext returns the authenticated user id, if any.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// GetUserRoleFromContext returns the authenticated user role, if any.
func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	userRole, ok := ctx.Value(UserRoleCtxKey).(string)
	return userRole, ok
}
