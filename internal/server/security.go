package server

import (
	"crypto/subtle"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// ClientGuard throttles each client IP with its own token bucket and counts
// failed API key checks. Idle clients age out of both tables.
type ClientGuard struct {
	mu       sync.Mutex
	buckets  *expirable.LRU[string, *rate.Limiter]
	failures *expirable.LRU[string, int]
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewClientGuard allows each client perSecond requests with bursts of burst
func NewClientGuard(perSecond float64, burst int) *ClientGuard {
	return newClientGuardWithClock(perSecond, burst, time.Now)
}

func newClientGuardWithClock(perSecond float64, burst int, now func() time.Time) *ClientGuard {
	return &ClientGuard{
		buckets:  expirable.NewLRU[string, *rate.Limiter](TrackedClients, nil, ClientIdleTTL),
		failures: expirable.NewLRU[string, int](TrackedClients, nil, FailedAuthWindow),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      now,
	}
}

// Allow takes one token from ip's bucket
func (g *ClientGuard) Allow(ip string) bool {
	g.mu.Lock()
	bucket, ok := g.buckets.Get(ip)
	if !ok {
		bucket = rate.NewLimiter(g.limit, g.burst)
		g.buckets.Add(ip, bucket)
	}
	g.mu.Unlock()
	return bucket.AllowN(g.now(), 1)
}

// RecordFailedAuth bumps ip's failure count within FailedAuthWindow and
// returns it
func (g *ClientGuard) RecordFailedAuth(ip string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, _ := g.failures.Get(ip)
	n++
	g.failures.Add(ip, n)
	return n
}

// AuthMiddleware requires the X-API-Key header on every non-public path
func AuthMiddleware(apiKey string, trustedProxies []string, guard *ClientGuard) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r, trustedProxies)
			failures := guard.RecordFailedAuth(ip)
			log := logger.FromContext(r.Context()).With("ip", ip, "path", r.URL.Path)
			if failures >= FailedAuthAlertCount {
				log.Warn(SecurityAlertFailedAuth, "failures", failures)
			} else {
				log.Info(LogMsgAuthFailed, "has_key", got != "")
			}
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

func isPublicPath(path string) bool {
	return slices.ContainsFunc(PublicPaths, func(p string) bool {
		return strings.HasPrefix(path, p)
	})
}

// RateLimitMiddleware answers 429 once a client's bucket is empty
func RateLimitMiddleware(trustedProxies []string, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustedProxies)
			if !guard.Allow(ip) {
				logger.FromContext(r.Context()).Debug(SecurityAlertHighRate, "ip", ip)
				w.Header().Set(HeaderRetryAfter, "1")
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the peer address, or the last X-Forwarded-For hop when the
// peer is a trusted proxy
func clientIP(r *http.Request, trustedProxies []string) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, peer) {
		return peer
	}

	fwd := r.Header.Get(HeaderForwardedFor)
	if fwd == "" {
		return peer
	}
	if i := strings.LastIndexByte(fwd, ','); i >= 0 {
		fwd = fwd[i+1:]
	}
	return strings.TrimSpace(fwd)
}

// SecurityHeadersMiddleware sets the static hardening headers
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for name, value := range securityHeaders {
				h.Set(name, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
