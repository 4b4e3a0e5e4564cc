package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/agendahub/AB-BookingService/internal/api/handlers"
	"github.com/agendahub/AB-BookingService/internal/domain"
	"github.com/agendahub/AB-BookingService/pkg/authtoken"
)

const (
	msgMissingToken = "требуется аутентификация"
	msgInvalidToken = "невалидный или истекший токен"
	msgAdminOnly    = "операция доступна только администратору"
)

// Identity аутентифицированный пользователь запроса
type Identity struct {
	UserID int64
	Role   domain.UserRole
	Email  string
}

// IsAdmin проверяет, что запрос выполняет администратор
func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

type identityKey struct{}

// IdentityFromContext извлекает identity, положенную Auth middleware
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// ContextWithIdentity кладет identity пользователя в контекст
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// Auth проверяет Bearer токен и кладет identity пользователя в контекст запроса
func Auth(tokens *authtoken.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			claims, err := tokens.Parse(tokenStr)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			identity := Identity{
				UserID: userID,
				Role:   domain.UserRole(claims.Role),
				Email:  claims.Email,
			}

			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только запросы администраторов
// Должен стоять после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		if !identity.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}
