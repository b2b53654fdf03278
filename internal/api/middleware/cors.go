package middleware

import (
	"net/http"
	"strings"

	gorillaHandlers "github.com/gorilla/handlers"
)

// CORS разрешает запросы с перечисленных origin. Слэш в конце origin игнорируется,
// пустой список разрешает любой origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = normalizeOrigin(o); o != "" {
			origins[o] = struct{}{}
		}
	}

	return gorillaHandlers.CORS(
		gorillaHandlers.AllowedOriginValidator(func(origin string) bool {
			if len(origins) == 0 {
				return true
			}
			_, ok := origins[normalizeOrigin(origin)]
			return ok
		}),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", RequestIDHeader}),
		gorillaHandlers.ExposedHeaders([]string{RequestIDHeader}),
		gorillaHandlers.AllowCredentials(),
	)
}

func normalizeOrigin(origin string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/")
}
