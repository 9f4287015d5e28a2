package middleware

import (
	"net/http"
	"regexp"

	"patient-records-api/pkg/reqctx"

	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-Id"

	// maxRequestIDLength matches audit_logs.request_id
	maxRequestIDLength = 64
)

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

type RequestIDMiddleware struct {
}

func NewRequestIDMiddleware() *RequestIDMiddleware {
	return &RequestIDMiddleware{}
}

// Handle preserves a well-formed incoming X-Request-Id or generates one,
// echoes it back and stores it on the request context.
func (m *RequestIDMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(HeaderRequestID)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, rid)
		next.ServeHTTP(w, r.WithContext(reqctx.WithRequestID(r.Context(), rid)))
	})
}

func validRequestID(rid string) bool {
	return len(rid) <= maxRequestIDLength && requestIDPattern.MatchString(rid)
}
