package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"folio/globals"
)

// RequestID tags every request with an identifier, honoring one supplied by
// the caller, and echoes it on the response for log correlation.
func RequestID(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := context.WithValue(r.Context(), globals.RequestIDKey, id)
		next(w, r.WithContext(ctx), ps)
	}
}

// GetRequestID returns the request's identifier, or "" outside a tagged
// request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(globals.RequestIDKey).(string)
	return id
}
