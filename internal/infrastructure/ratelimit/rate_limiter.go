package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const idleTTL = 10 * time.Minute

// RateLimiter 按客户端维度的QPS限制器，每个key一个令牌桶
type RateLimiter struct {
	mu        sync.Mutex
	qps       int
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter 创建新的速率限制器
// qps: 每个客户端每秒允许的请求数，0或负数表示不限制
func NewRateLimiter(qps int) *RateLimiter {
	if qps < 0 {
		qps = 0
	}
	return &RateLimiter{
		qps:     qps,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Enabled 是否启用限制
func (r *RateLimiter) Enabled() bool {
	return r.qps > 0
}

// GetQPS 获取当前QPS限制，0表示无限制
func (r *RateLimiter) GetQPS() int {
	return r.qps
}

// Allow 检查key对应的客户端是否还有令牌，不阻塞
func (r *RateLimiter) Allow(key string) bool {
	if !r.Enabled() {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	b, ok := r.buckets[key]
	if !ok {
		// 桶大小等于QPS，允许短时间突发
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(r.qps), r.qps)}
		r.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Size 当前跟踪的客户端数量
func (r *RateLimiter) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}

// sweep 清理长时间未活动的客户端，需持有锁
func (r *RateLimiter) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < idleTTL {
		return
	}
	for key, b := range r.buckets {
		if now.Sub(b.lastSeen) >= idleTTL {
			delete(r.buckets, key)
		}
	}
	r.lastSweep = now
}
