package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIDKey contextKey = "request_id"

// RequestIDHeader заголовок с ID запроса
const RequestIDHeader = "X-Request-ID"

// RequestLogger присваивает запросу ID (или берёт входящий) и пишет access log
func RequestLogger(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID)))

			logger.Info("%s %s - status=%d duration=%s request_id=%s remote=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start), requestID, r.RemoteAddr)
		})
	}
}

// GetRequestID извлекает ID запроса из контекста
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
