package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/focusnow-app/focusnow-backend/pkg/clientip"
	"golang.org/x/time/rate"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

type limiterPool struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	newLimiter func() *rate.Limiter
	cleanupRun bool
}

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterTTL             = 30 * time.Minute
)

func (p *limiterPool) get(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startCleanupOnce()
	e, ok := p.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: p.newLimiter(), lastUse: time.Now()}
		p.entries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

func (p *limiterPool) startCleanupOnce() {
	if p.cleanupRun {
		return
	}
	p.cleanupRun = true
	go func() {
		ticker := time.NewTicker(limiterCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			p.mu.Lock()
			now := time.Now()
			for ip, e := range p.entries {
				if now.Sub(e.lastUse) > limiterTTL {
					delete(p.entries, ip)
				}
			}
			p.mu.Unlock()
		}
	}()
}

// Global limiter: 5 req/s, burst 20, per IP.
var globalPool = &limiterPool{
	entries: make(map[string]*limiterEntry),
	newLimiter: func() *rate.Limiter {
		return rate.NewLimiter(rate.Limit(5), 20)
	},
}

// GlobalRateLimit limits each IP in-process, independent of Redis.
// Returns 429 when exceeded.
func GlobalRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientip.RealClientIP(r)
		if !globalPool.get(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Muitas requisições. Aguarde um momento."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Credential limiter: 1 req/5s, burst 3, per IP.
var credentialPool = &limiterPool{
	entries: make(map[string]*limiterEntry),
	newLimiter: func() *rate.Limiter {
		return rate.NewLimiter(rate.Every(5*time.Second), 3)
	},
}

var credentialPaths = map[string]bool{
	"/api/login":           true,
	"/api/register":        true,
	"/api/forgot-password": true,
	"/api/reset-password":  true,
}

// CredentialRateLimit applies a stricter limit to credential routes
// only. Use after GlobalRateLimit.
func CredentialRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !credentialPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		ip := clientip.RealClientIP(r)
		if !credentialPool.get(ip).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Muitas tentativas. Tente novamente em instantes."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
