package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long a client's limiter survives without requests
const idleLimiterTTL = 5 * time.Minute

// RateLimitConfig configures per-client request limiting
type RateLimitConfig struct {
	RequestsPerSecond float64 // zero disables limiting
	Burst             int
	TrustProxy        bool // take the client IP from X-Forwarded-For / X-Real-IP
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP
type RateLimiter struct {
	config    RateLimitConfig
	logger    *slog.Logger
	onLimited http.HandlerFunc

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastPrune time.Time
}

// NewRateLimiter creates a RateLimiter. onLimited writes the response for a
// rejected request; nil writes a plain 429.
func NewRateLimiter(config RateLimitConfig, logger *slog.Logger, onLimited http.HandlerFunc) *RateLimiter {
	if config.Burst < 1 {
		config.Burst = 1
	}
	if onLimited == nil {
		onLimited = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
		}
	}
	return &RateLimiter{
		config:    config,
		logger:    logger,
		onLimited: onLimited,
		clients:   make(map[string]*clientLimiter),
	}
}

// Allow reports whether a request from ip may proceed now
func (rl *RateLimiter) Allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastPrune) > time.Minute {
		for key, c := range rl.clients {
			if now.Sub(c.lastSeen) > idleLimiterTTL {
				delete(rl.clients, key)
			}
		}
		rl.lastPrune = now
	}

	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.Burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the configured rate with 429
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.config.RequestsPerSecond <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := ClientIP(r, rl.config.TrustProxy)
		if !rl.Allow(ip) {
			rl.logger.Warn("rate limit exceeded",
				slog.String("client_ip", ip),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			w.Header().Set("Retry-After", "1")
			rl.onLimited(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the caller's IP address without the port
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// First entry is the client
			if i := strings.IndexByte(xff, ','); i != -1 {
				return strings.TrimSpace(xff[:i])
			}
			return strings.TrimSpace(xff)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
