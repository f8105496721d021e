package security

import (
	"net/http"
	"strings"
)

// headers are set on every response.
var headers = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "DENY",
	"X-XSS-Protection":       "1; mode=block",
	"Referrer-Policy":        "strict-origin-when-cross-origin",
	"Permissions-Policy":     "geolocation=(), microphone=(), camera=()",
}

const (
	hstsHeader = "Strict-Transport-Security"
	hstsValue  = "max-age=31536000; includeSubDomains"
)

// SetHeaders adds the security headers to h. HSTS is only sent for
// requests that were transported over TLS.
func SetHeaders(h http.Header, secure bool) {
	for name, value := range headers {
		h.Set(name, value)
	}

	if secure {
		h.Set(hstsHeader, hstsValue)
	}
}

// IsSecure reports if the request reached us over TLS. The X-Forwarded-Proto
// header is only considered when the deployment sits behind a proxy that
// sets it.
func IsSecure(r *http.Request, trustForwardedProto bool) bool {
	if r.TLS != nil {
		return true
	}

	return trustForwardedProto && strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
