package middleware

import (
	"log/slog"
	"net/http"

	"github.com/karthiknish/aroosi-swift-sub004/internal/api/shared"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/logger"
)

// TraceMiddleware tags each request with a trace ID and a logger carrying
// it. A well-formed X-Trace-ID header from the client is reused. The ID is
// echoed back in the response header.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context(), r.Header.Get(shared.TraceIDHeader))
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
