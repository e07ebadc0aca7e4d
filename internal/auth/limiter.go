// AngelaMos | 2026
// limiter.go

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	cleanupInterval = 5 * time.Minute
	entryTTL        = 10 * time.Minute
)

// LoginLimiter throttles authentication attempts per username with a
// token bucket. Entries idle longer than entryTTL are dropped by a
// background sweep so the map does not grow with every probed name.
type LoginLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess int64
}

func NewLoginLimiter(
	attempts int,
	window time.Duration,
	burst int,
) *LoginLimiter {
	if burst < 1 {
		burst = 1
	}

	l := &LoginLimiter{
		rate:  rate.Limit(float64(attempts) / window.Seconds()),
		burst: burst,
	}
	go l.cleanup()
	return l
}

func (l *LoginLimiter) Allow(username string) bool {
	now := time.Now().Unix()

	entryI, loaded := l.limiters.Load(username)
	if !loaded {
		newEntry := &limiterEntry{
			limiter:    rate.NewLimiter(l.rate, l.burst),
			lastAccess: now,
		}
		entryI, _ = l.limiters.LoadOrStore(username, newEntry)
	}

	entry, ok := entryI.(*limiterEntry)
	if !ok {
		return true
	}
	entry.lastAccess = now

	return entry.limiter.Allow()
}

func (l *LoginLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-entryTTL).Unix()
		l.limiters.Range(func(key, value any) bool {
			entry, ok := value.(*limiterEntry)
			if ok && entry.lastAccess < cutoff {
				l.limiters.Delete(key)
			}
			return true
		})
	}
}
