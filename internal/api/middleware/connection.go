package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/pkg/logger"
	"go.uber.org/zap"
)

const (
	ConnectionCookie = "docchat_connection"
	ConnectionHeader = "X-Connection-ID"
)

// identifyingHeaders are recorded when a session is created
var identifyingHeaders = []string{"User-Agent", "X-Forwarded-For", "X-Real-IP", "Accept-Language"}

type connectionKey struct{}

type connection struct {
	id      string
	headers map[string]string
}

// Connection resolves the caller's connection id from the X-Connection-ID header
// or the docchat_connection cookie. A caller with neither gets a new id, set as
// a cookie so the browser keeps its conversation.
func Connection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(ConnectionHeader)
		if id == "" {
			if cookie, err := r.Cookie(ConnectionCookie); err == nil {
				id = cookie.Value
			}
		}

		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     ConnectionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			ctxzap.Debug(r.Context(), "new connection", zap.String("connection_id", id))
		}

		headers := make(map[string]string, len(identifyingHeaders))
		for _, name := range identifyingHeaders {
			if v := r.Header.Get(name); v != "" {
				headers[name] = v
			}
		}

		ctx := logger.AddFields(r.Context(), zap.String("connection_id", id))
		ctx = context.WithValue(ctx, connectionKey{}, connection{id: id, headers: headers})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ConnectionFromContext returns the connection id and identifying headers set by Connection
func ConnectionFromContext(ctx context.Context) (string, map[string]string) {
	conn, _ := ctx.Value(connectionKey{}).(connection)
	return conn.id, conn.headers
}
