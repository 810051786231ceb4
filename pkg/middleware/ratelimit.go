package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"wedding-marketplace/pkg/metrics"
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a global token bucket and then one bucket per client.
// Clients are keyed by account id when authenticated, otherwise by remote IP.
type RateLimiter struct {
	global *rate.Limiter

	mu      sync.Mutex
	clients map[string]*clientLimiter
	rate    rate.Limit
	burst   int
	now     func() time.Time
	logger  *zap.Logger
}

func NewRateLimiter(cfg utils.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		global:  rate.NewLimiter(rate.Limit(cfg.GlobalRPS), cfg.GlobalBurst),
		clients: make(map[string]*clientLimiter),
		rate:    rate.Limit(cfg.ClientRPS),
		burst:   cfg.ClientBurst,
		now:     time.Now,
		logger:  logger,
	}
}

func (rl *RateLimiter) client(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = rl.now()
	return c.limiter
}

func clientKey(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.global.Allow() {
			metrics.RecordRateLimited("global")
			rl.logger.Warn("Global rate limit exceeded", zap.String("path", r.URL.Path))
			utils.ResponseTooManyRequests(w, "Too many requests")
			return
		}

		key := clientKey(r)
		if !rl.client(key).Allow() {
			metrics.RecordRateLimited("client")
			rl.logger.Warn("Client rate limit exceeded",
				zap.String("client", key),
				zap.String("path", r.URL.Path))
			utils.ResponseTooManyRequests(w, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Cleanup forgets clients not seen for idle and returns how many were removed.
func (rl *RateLimiter) Cleanup(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	removed := 0
	for key, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
			removed++
		}
	}
	return removed
}

// Clients reports how many client buckets are tracked.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}
