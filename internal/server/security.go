package server

import (
	"net/http"
	"strings"
	"time"
)

// SecurityConfig holds the security settings applied to every response.
type SecurityConfig struct {
	// EnableCORS enables Cross-Origin Resource Sharing headers.
	EnableCORS bool
	// AllowedOrigins lists the allowed origins; "*" allows any origin.
	AllowedOrigins []string
	// AllowedMethods lists the allowed HTTP methods.
	AllowedMethods []string
	// MaxDuration bounds the animation duration and start delay a client may
	// request on the stream endpoint.
	MaxDuration time.Duration
}

// DefaultSecurityConfig returns a read-only configuration: any origin may
// GET, and client-requested timings are capped at one minute.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxDuration:    time.Minute,
	}
}

// defaultCSP is strict; handlers serving HTML replace it.
const defaultCSP = "default-src 'none'; frame-ancestors 'none'"

// SecurityMiddleware sets security headers and answers CORS preflight
// requests. OPTIONS requests end here with 204; all others reach next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", defaultCSP)

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type, Datastar-Request")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

func allowedOrigin(allowed []string, origin string) (string, bool) {
	for _, a := range allowed {
		if a == "*" {
			return "*", true
		}
		if origin != "" && a == origin {
			return origin, true
		}
	}
	return "", false
}
