// zeus/middlewares/ratelimit.go
package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"zeus/zeus/utils/logging"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const limiterIdle = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterSet struct {
	mu        sync.Mutex
	perMinute int
	clients   map[string]*clientLimiter
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[key]
	if !ok {
		if len(s.clients) >= 1024 {
			s.prune(now)
		}
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute)}
		s.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

func (s *limiterSet) prune(now time.Time) {
	for k, c := range s.clients {
		if now.Sub(c.lastSeen) > limiterIdle {
			delete(s.clients, k)
		}
	}
}

// RateLimit allows perMinute requests per client address, with bursts of
// the same size. A non-positive limit disables it.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	set := &limiterSet{perMinute: perMinute, clients: map[string]*clientLimiter{}}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			if !set.get(key, time.Now()).Allow() {
				logging.RequestLogger.Warn("rate limited", zap.String("client", key), zap.String("path", r.URL.Path))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
