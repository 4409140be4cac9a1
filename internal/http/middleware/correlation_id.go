package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/igordesouzasouza/catalog-ingest/pkg/correlationid"
)

// CorrelationID accepts the caller's correlation ID or mints one, stores it
// in the request context and echoes it back in the response header.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(correlationid.Header)
			if id == "" {
				id = uuid.NewString()
			}

			ctx := correlationid.WithContext(r.Context(), id)
			w.Header().Set(correlationid.Header, id)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
