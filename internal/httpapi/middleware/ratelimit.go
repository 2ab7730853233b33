package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 5 * time.Minute
	limiterSweepInterval = time.Minute
)

// ipLimiters hands out one token bucket per client IP and evicts buckets
// nobody has used for limiterIdleTTL, so the map stays bounded by the set
// of recently active clients.
type ipLimiters struct {
	mu      sync.Mutex
	perSec  rate.Limit
	burst   int
	entries map[string]*ipLimiter
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiters(perSecond float64, burst int) *ipLimiters {
	return &ipLimiters{
		perSec:  rate.Limit(perSecond),
		burst:   burst,
		entries: make(map[string]*ipLimiter),
	}
}

func (l *ipLimiters) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[ip]
	if !ok {
		e = &ipLimiter{limiter: rate.NewLimiter(l.perSec, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweep drops every limiter idle since before now-limiterIdleTTL.
func (l *ipLimiters) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, e := range l.entries {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(l.entries, ip)
		}
	}
}

func (l *ipLimiters) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RateLimit throttles requests per client IP. It sits on the auth
// endpoints, where the deterministic confirmation code would otherwise
// invite guessing.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	lims := newIPLimiters(perSecond, burst)

	go func() {
		for range time.Tick(limiterSweepInterval) {
			lims.sweep(time.Now())
		}
	}()

	return func(c *gin.Context) {
		if !lims.get(c.ClientIP(), time.Now()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
