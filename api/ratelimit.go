package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/aakanni/portfolio-backend/errs"
)

// ipRateLimiter tracks one token bucket per client IP. A client may make up
// to max requests per window; the bucket refills evenly across the window.
// Stale clients are evicted by a background janitor.
type ipRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*rateClient
	limit     rate.Limit
	burst     int
	window    time.Duration
	responder Responder
}

type rateClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(window time.Duration, max int) *ipRateLimiter {
	logger := log.With().Str("handlerName", "rateLimiter").Logger()
	l := &ipRateLimiter{
		clients:   make(map[string]*rateClient),
		limit:     rate.Every(window / time.Duration(max)),
		burst:     max,
		window:    window,
		responder: NewResponder(logger),
	}
	go l.evictStale()
	return l
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &rateClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

func (l *ipRateLimiter) evictStale() {
	ticker := time.NewTicker(l.window)
	for range ticker.C {
		l.mu.Lock()
		for ip, c := range l.clients {
			if time.Since(c.lastSeen) > 3*l.window {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipRateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			l.responder.WriteError(w, errs.NewTooManyRequestsError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the caller's address, preferring the first
// X-Forwarded-For hop when running behind a proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
