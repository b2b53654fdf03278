package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AdmissionService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionService/internal/integrations/identity"
)

type contextKey string

const identityKey contextKey = "identity"

const (
	msgMissingToken = "не передан токен авторизации"
	msgInvalidToken = "недействительный или просроченный токен"
)

// TokenVerifier проверяет bearer токен сотрудника
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*identity.Identity, error)
}

// StaffAuth пропускает запрос только с валидным "Authorization: Bearer <token>"
// и кладёт подтверждённую личность в контекст
func StaffAuth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			caller, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), caller)))
		})
	}
}

// WithIdentity кладёт личность в контекст
func WithIdentity(ctx context.Context, caller *identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, caller)
}

// GetIdentity извлекает подтверждённую личность из контекста
func GetIdentity(ctx context.Context) (*identity.Identity, bool) {
	caller, ok := ctx.Value(identityKey).(*identity.Identity)
	return caller, ok && caller != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
