package web

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")

	// Preflight
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	csp := []string{
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"connect-src 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// RateLimitMiddleware limits requests per client to the search endpoints.
// Pages and static files are not counted. Clients are identified by the
// proxy headers only, and requests carrying neither header are not limited.
func RateLimitMiddleware(requestsPerMinute int) rweb.Handler {
	limiter := newRateLimiter(requestsPerMinute, time.Minute)

	return func(c rweb.Context) error {
		path := c.Request().Path()
		if !strings.HasPrefix(path, "/api/") && !strings.HasPrefix(path, "/partials/") {
			return c.Next()
		}

		ip, ok := clientID(c.Request().Header("X-Forwarded-For"), c.Request().Header("X-Real-IP"))
		if !ok {
			return c.Next()
		}

		if !limiter.Allow(ip, time.Now()) {
			logger.Info("Rate limit exceeded", "ip", ip, "path", path)
			c.SetStatus(http.StatusTooManyRequests)
			return nil
		}
		return c.Next()
	}
}

// clientID picks the client address from the proxy headers.
// The first X-Forwarded-For hop wins over X-Real-IP.
func clientID(forwarded, realIP string) (string, bool) {
	if first, _, _ := strings.Cut(forwarded, ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first), true
	}
	if ip := strings.TrimSpace(realIP); ip != "" {
		return ip, true
	}
	return "", false
}

// rateLimiter is a fixed-window counter per client
type rateLimiter struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	windowStart time.Time
	count       int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{limit: limit, window: window, visitors: make(map[string]*visitor)}
}

// Allow counts one request from ip at now and reports whether it is within the limit
func (r *rateLimiter) Allow(ip string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for addr, v := range r.visitors {
		if now.Sub(v.windowStart) > r.window {
			delete(r.visitors, addr)
		}
	}

	v, exists := r.visitors[ip]
	if !exists {
		r.visitors[ip] = &visitor{windowStart: now, count: 1}
		return true
	}

	v.count++
	return v.count <= r.limit
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"ip", c.Request().Header("X-Forwarded-For"),
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}
