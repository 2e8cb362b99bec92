package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// chatLimiter enforces a request budget per chat. Limiters are created
// lazily on first use and kept for the life of the process.
type chatLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newChatLimiter(requests int, interval time.Duration) *chatLimiter {
	if requests <= 0 || interval <= 0 {
		// Disabled; allow reports true for every chat
		return &chatLimiter{limit: rate.Inf, burst: 1, limiters: map[int64]*rate.Limiter{}}
	}
	return &chatLimiter{
		limiters: map[int64]*rate.Limiter{},
		limit:    rate.Every(interval / time.Duration(requests)),
		burst:    requests,
	}
}

func (c *chatLimiter) allow(chatID int64) bool {
	c.mu.Lock()
	limiter, ok := c.limiters[chatID]
	if !ok {
		limiter = rate.NewLimiter(c.limit, c.burst)
		c.limiters[chatID] = limiter
	}
	c.mu.Unlock()
	return limiter.Allow()
}
