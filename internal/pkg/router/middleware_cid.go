package router

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/shandysiswandi/taskagile/internal/pkg/instrument"
	"github.com/shandysiswandi/taskagile/internal/pkg/uid"
)

const (
	// HeaderCorrelationID carries the request correlation ID in and out.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is read when HeaderCorrelationID is absent.
	HeaderRequestID = "X-Request-ID"

	maxCIDLength = 128
)

// sanitizeCID drops IDs with control characters and bounds the length.
func sanitizeCID(v string) string {
	v = strings.TrimSpace(v)
	if strings.IndexFunc(v, unicode.IsControl) >= 0 {
		return ""
	}
	if len(v) > maxCIDLength {
		return v[:maxCIDLength]
	}
	return v
}

func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cID := sanitizeCID(r.Header.Get(HeaderCorrelationID))
			if cID == "" {
				cID = sanitizeCID(r.Header.Get(HeaderRequestID))
			}
			if cID == "" && gen != nil {
				cID = gen.Generate()
			}

			if cID != "" {
				w.Header().Set(HeaderCorrelationID, cID)
				r = r.WithContext(instrument.SetCorrelationID(r.Context(), cID))
			}

			next.ServeHTTP(w, r)
		})
	}
}
