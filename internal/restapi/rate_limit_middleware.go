package restapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitorTTL is how long an idle client's limiter is kept before cleanup.
const visitorTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a per-client token bucket keyed by remote
// address. A background goroutine evicts idle clients; Stop shuts it down.
type RateLimitMiddleware struct {
	limit int
	per   time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewRateLimitMiddleware allows limit requests per client per interval. A
// limit of zero or less disables limiting.
func NewRateLimitMiddleware(limit int, per time.Duration) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		limit:    limit,
		per:      per,
		visitors: make(map[string]*visitor),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

// Handler returns the wrapping middleware.
func (m *RateLimitMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.limit > 0 && !m.allow(clientKey(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (m *RateLimitMiddleware) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
		<-m.done
	})
}

func (m *RateLimitMiddleware) allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.visitors[key]
	if !ok {
		every := m.per / time.Duration(m.limit)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), m.limit)}
		m.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (m *RateLimitMiddleware) cleanupLoop() {
	defer close(m.done)
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			for key, v := range m.visitors {
				if time.Since(v.lastSeen) > visitorTTL {
					delete(m.visitors, key)
				}
			}
			m.mu.Unlock()
		}
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
