package httpserver

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"consumer_reviews/internal/adapters/observability"
	"consumer_reviews/internal/domain"
)

// Throttle is a per-identity token bucket.
type Throttle struct {
	mu        sync.Mutex
	limiters  map[int64]*rate.Limiter
	limit     rate.Limit
	burst     int
	retry     time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewThrottle allows perMinute requests per identity with the given burst.
// It returns nil, which throttles nothing, when perMinute <= 0.
func NewThrottle(perMinute, burst int) *Throttle {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &Throttle{
		limiters: map[int64]*rate.Limiter{},
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		retry:    time.Duration(math.Ceil(60/float64(perMinute))) * time.Second,
		now:      time.Now,
	}
}

// Allow reports whether identity userID may proceed now.
func (t *Throttle) Allow(userID int64) bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.sweep(now)
	lim, ok := t.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(t.limit, t.burst)
		t.limiters[userID] = lim
	}
	return lim.AllowN(now, 1)
}

// sweep drops limiters that have refilled completely; they carry no state
// a fresh limiter would not. Caller holds t.mu.
func (t *Throttle) sweep(now time.Time) {
	if now.Sub(t.lastSweep) < time.Minute {
		return
	}
	t.lastSweep = now
	for id, lim := range t.limiters {
		if lim.TokensAt(now) >= float64(t.burst) {
			delete(t.limiters, id)
		}
	}
}

// Middleware rejects over-limit callers with 429. It must run after
// RequireIdentity.
func (t *Throttle) Middleware(next http.Handler) http.Handler {
	if t == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := domain.IdentityFrom(r.Context())
		if ok && !t.Allow(id.UserID) {
			observability.ObserveThrottled()
			w.Header().Set("Retry-After", strconv.Itoa(int(t.retry.Seconds())))
			writeError(w, r, domain.ErrThrottled)
			return
		}
		next.ServeHTTP(w, r)
	})
}
