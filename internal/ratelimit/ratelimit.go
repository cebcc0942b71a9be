// Package ratelimit provides a per-client token bucket middleware for
// the unlock endpoint and the JSON API.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Buckets idle this long are dropped during the inline sweep.
const idleEviction = 10 * time.Minute

// takesPerSweep spaces out the idle sweeps so most admissions pay only
// for the map lookup.
const takesPerSweep = 1000

// Limiter admits requests per client at a sustained rate with a burst
// allowance. Each client gets a token bucket that refills continuously;
// an empty bucket means 429.
type Limiter struct {
	rate  float64
	burst float64

	mu        sync.Mutex
	buckets   map[string]*bucket
	sinceLast int
}

type bucket struct {
	left    float64
	touched time.Time
}

// NewLimiter returns a limiter admitting requestsPerSecond sustained
// with bursts of up to burst requests.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	return &Limiter{
		rate:    requestsPerSecond,
		burst:   float64(burst),
		buckets: make(map[string]*bucket),
	}
}

// take spends one token for key, reporting whether one was available.
// Idle buckets are swept inline, so the limiter needs no goroutine.
func (l *Limiter) take(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sinceLast++
	if l.sinceLast >= takesPerSweep {
		l.sinceLast = 0
		for k, b := range l.buckets {
			if now.Sub(b.touched) > idleEviction {
				delete(l.buckets, k)
			}
		}
	}

	b, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &bucket{left: l.burst - 1, touched: now}
		return true
	}

	b.left += now.Sub(b.touched).Seconds() * l.rate
	if b.left > l.burst {
		b.left = l.burst
	}
	b.touched = now

	if b.left < 1 {
		return false
	}
	b.left--
	return true
}

// clientKey identifies the caller by IP. Behind a proxy the first
// X-Forwarded-For entry is the client; later hops are proxies. The
// RemoteAddr port is stripped so reconnecting does not reset the bucket.
func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Middleware rejects requests with a 429 once the client's bucket runs dry.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.take(clientKey(r), time.Now()) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "10")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"too many requests"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
