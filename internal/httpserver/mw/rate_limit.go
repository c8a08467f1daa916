package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/darrylwest/service-uptime/internal/utils"
)

// RateLimitConfig configures a per-client token bucket. Burst <= 0 disables limiting.
type RateLimitConfig struct {
	Burst         int           // bucket capacity
	PerMinute     int           // refill rate per client
	MaxClients    int           // evict a bucket to admit a new client past this many (0 = unbounded)
	IdleTTL       time.Duration // drop buckets unseen for this long
	SweepInterval time.Duration
	TrustProxy    bool
	Now           func() time.Time // nil => time.Now
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	refilled time.Time
	seen     time.Time
}

type limiter struct {
	cfg       RateLimitConfig
	perSecond float64
	capacity  float64

	mu        sync.Mutex
	clients   map[string]*bucket
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.PerMinute < 1 {
		cfg.PerMinute = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &limiter{
		cfg:       cfg,
		perSecond: float64(cfg.PerMinute) / 60.0,
		capacity:  float64(cfg.Burst),
		clients:   make(map[string]*bucket, 64),
		lastSweep: cfg.Now(),
	}
}

func (l *limiter) bucketFor(client string, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.cfg.SweepInterval {
		l.sweepLocked(now)
	}

	b := l.clients[client]
	if b == nil {
		if l.cfg.MaxClients > 0 && len(l.clients) >= l.cfg.MaxClients {
			l.evictOneLocked()
		}
		b = &bucket{tokens: l.capacity, refilled: now, seen: now}
		l.clients[client] = b
	}
	return b
}

// evictOneLocked drops a single arbitrary bucket to make room at the cap.
func (l *limiter) evictOneLocked() {
	for client := range l.clients {
		delete(l.clients, client)
		return
	}
}

func (l *limiter) sweepLocked(now time.Time) {
	for client, b := range l.clients {
		b.mu.Lock()
		idle := now.Sub(b.seen) > l.cfg.IdleTTL
		b.mu.Unlock()
		if idle {
			delete(l.clients, client)
		}
	}
	l.lastSweep = now
}

// take consumes one token. When none is left it returns the seconds until the next one.
func (l *limiter) take(client string) (ok bool, remaining, retryAfter int) {
	now := l.cfg.Now()
	b := l.bucketFor(client, now)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.seen = now
	if elapsed := now.Sub(b.refilled).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.perSecond)
		b.refilled = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}

	wait := int(math.Ceil((1 - b.tokens) / l.perSecond))
	return false, 0, max(wait, 1)
}

// RateLimit throttles each client IP with a token bucket and answers 429 when it is empty.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Burst <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	l := newLimiter(cfg)
	limit := strconv.Itoa(cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, remaining, retry := l.take(utils.ClientIP(r, cfg.TrustProxy))

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
