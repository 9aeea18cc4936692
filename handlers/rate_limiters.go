package handlers

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter holds the per-IP limits: a loose one for reads and the login
// flow, a strict one for comment writes.
type RateLimiter struct {
	WriteLimit *IPRateLimiter
	ViewLimit  *IPRateLimiter
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		WriteLimit: NewIPRateLimiter(60, time.Minute),
		ViewLimit:  NewIPRateLimiter(600, time.Minute),
	}
}

// IPRateLimiter is a sliding-window request counter keyed by remote address.
type IPRateLimiter struct {
	ips    map[string][]time.Time
	mu     sync.Mutex
	limit  int
	window time.Duration
}

func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		ips:    make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
}

func (l *IPRateLimiter) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr

		l.mu.Lock()

		now := time.Now()
		windowStart := now.Add(-l.window)

		valid := make([]time.Time, 0, len(l.ips[ip]))
		for _, at := range l.ips[ip] {
			if at.After(windowStart) {
				valid = append(valid, at)
			}
		}

		if len(valid) >= l.limit {
			l.ips[ip] = valid
			l.mu.Unlock()
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		l.ips[ip] = append(valid, now)
		l.mu.Unlock()

		next(w, r)
	}
}
