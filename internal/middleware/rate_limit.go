package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/i18n"
)

const (
	defaultNumShards = 16
	sweepInterval    = time.Minute
)

// window counts the requests of one caller since start.
type window struct {
	start time.Time
	used  int
}

type limiterShard struct {
	mu      sync.Mutex
	callers map[string]*window
}

// ShardedRateLimiter is a fixed-window limiter. Callers are hashed onto
// independently locked shards so busy clients do not contend on one mutex.
type ShardedRateLimiter struct {
	shards []*limiterShard
	rate   int
	window time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter allows rate requests per window for each caller.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter is NewRateLimiter with an explicit shard count.
// It starts a sweeper goroutine that Stop ends.
func NewShardedRateLimiter(rate int, windowLen time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	rl := &ShardedRateLimiter{
		shards: make([]*limiterShard, numShards),
		rate:   rate,
		window: windowLen,
		done:   make(chan struct{}),
	}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{callers: make(map[string]*window)}
	}

	go rl.sweep()
	return rl
}

func (rl *ShardedRateLimiter) shardFor(id string) *limiterShard {
	return rl.shards[xxhash.Sum64String(id)%uint64(len(rl.shards))]
}

// checkRateLimit consumes one request from id's quota.
func (rl *ShardedRateLimiter) checkRateLimit(id string) (allowed bool, remaining int) {
	now := time.Now()
	shard := rl.shardFor(id)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	w, ok := shard.callers[id]
	if !ok || now.Sub(w.start) > rl.window {
		w = &window{start: now}
		shard.callers[id] = w
	}
	if w.used >= rl.rate {
		return false, 0
	}
	w.used++
	return true, rl.rate - w.used
}

// RateLimit limits requests per client IP.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context) string { return "ip:" + c.ClientIP() })
}

// SubjectRateLimit limits requests per authenticated subject and falls back
// to the client IP for anonymous calls. Install it after authentication.
func (rl *ShardedRateLimiter) SubjectRateLimit() gin.HandlerFunc {
	return rl.middleware(subjectIdentifier)
}

func (rl *ShardedRateLimiter) middleware(callerOf func(*gin.Context) string) gin.HandlerFunc {
	limit := strconv.Itoa(rl.rate)
	retryAfter := strconv.Itoa(int(rl.window.Seconds()))

	return func(c *gin.Context) {
		allowed, remaining := rl.checkRateLimit(callerOf(c))
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if allowed {
			c.Next()
			return
		}

		c.Header("Retry-After", retryAfter)
		message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
	}
}

func subjectIdentifier(c *gin.Context) string {
	if subject := GetSubject(c); subject != "" {
		return "subject:" + subject
	}
	return "ip:" + c.ClientIP()
}

func (rl *ShardedRateLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.cleanupExpired()
		}
	}
}

// cleanupExpired forgets callers whose window ended more than one window ago.
func (rl *ShardedRateLimiter) cleanupExpired() {
	cutoff := time.Now().Add(-2 * rl.window)

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for id, w := range shard.callers {
			if w.start.Before(cutoff) {
				delete(shard.callers, id)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the sweeper. Calling it again is a no-op.
func (rl *ShardedRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// Stats reports how many callers are tracked, in total and per shard.
func (rl *ShardedRateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.callers)
		shard.mu.Unlock()
		total += perShard[i]
	}
	return total, perShard
}
