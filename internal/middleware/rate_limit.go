package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/keshon/commandclient/pkg/cmd"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterPruneSize = 1024
)

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles command invocations per author.
type RateLimiter struct {
	mu     sync.Mutex
	limit  rate.Limit
	burst  int
	users  map[string]*userLimiter
	now    func() time.Time
	onDrop func(inv *cmd.Invocation)
}

// NewRateLimiter allows each author limit invocations per second with the
// given burst.
func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit: limit,
		burst: burst,
		users: make(map[string]*userLimiter),
		now:   time.Now,
	}
}

// OnDrop registers a hook called for every rejected invocation.
func (r *RateLimiter) OnDrop(fn func(inv *cmd.Invocation)) *RateLimiter {
	r.onDrop = fn
	return r
}

// Allow reports whether userID may run a command now.
func (r *RateLimiter) Allow(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	u, ok := r.users[userID]
	if !ok {
		if len(r.users) >= limiterPruneSize {
			r.pruneLocked(now)
		}
		u = &userLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.users[userID] = u
	}
	u.lastSeen = now
	return u.limiter.AllowN(now, 1)
}

func (r *RateLimiter) pruneLocked(now time.Time) {
	for id, u := range r.users {
		if now.Sub(u.lastSeen) > limiterIdleTTL {
			delete(r.users, id)
		}
	}
}

// Middleware drops invocations of authors over their rate without running
// the callback.
func (r *RateLimiter) Middleware() cmd.Middleware {
	return func(next cmd.Callback) cmd.Callback {
		return func(ctx context.Context, inv *cmd.Invocation) error {
			userID := ""
			if inv.Message != nil && inv.Message.Author != nil {
				userID = inv.Message.Author.ID
			}
			if !r.Allow(userID) {
				if r.onDrop != nil {
					r.onDrop(inv)
				}
				return nil
			}
			return next(ctx, inv)
		}
	}
}
