package rest

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const bucketIdle = 10 * time.Minute

// bucket is a token bucket that refills at rate tokens per second.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client address.
type clientLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      float64
	now       func() time.Time
	lastSweep time.Time
}

func newClientLimiter(rps int) *clientLimiter {
	return &clientLimiter{
		buckets: make(map[string]*bucket),
		rate:    float64(rps),
		now:     time.Now,
	}
}

// Allow consumes one token from the client's bucket if one is available.
func (l *clientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[client]
	if !ok {
		b = &bucket{tokens: l.rate, lastSeen: now}
		l.buckets[client] = b
	}
	b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
	if b.tokens > l.rate {
		b.tokens = l.rate
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (l *clientLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < bucketIdle {
		return
	}
	for client, b := range l.buckets {
		if now.Sub(b.lastSeen) > bucketIdle {
			delete(l.buckets, client)
		}
	}
	l.lastSweep = now
}

func rateLimit(limiter *clientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey is the remote host; middleware.RealIP rewrites it only for trusted proxies.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
