package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"balangay/pkg/requestcontext"
)

// ClientMetadata extracts the client IP and a normalized browser label from
// each request and stores them in context for audit enrichment.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		label := browserLabel(r.UserAgent())
		ctx := requestcontext.WithClientMetadata(r.Context(), ip, label)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	// Trust the left-most X-Forwarded-For entry when behind a proxy.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func browserLabel(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	label := name
	if version != "" {
		label += "/" + version
	}
	if os := ua.OS(); os != "" {
		label += " (" + os + ")"
	}
	return label
}
