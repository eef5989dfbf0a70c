package utils

import (
	"sync"
	"time"
)

// RateLimiter caps how often a user may run a given command inside a
// sliding window.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*userLimit
	max    int
	window time.Duration
}

type userLimit struct {
	windowStart time.Time
	count       int
}

// NewRateLimiter allows max invocations per user per command per window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limits: make(map[string]*userLimit),
		max:    max,
		window: window,
	}
}

// Allow reports whether the user may run the command now and counts the
// attempt when they may.
func (rl *RateLimiter) Allow(userID, command string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	key := userID + ":" + command
	now := time.Now()

	limit, ok := rl.limits[key]
	if !ok || now.Sub(limit.windowStart) >= rl.window {
		rl.limits[key] = &userLimit{windowStart: now, count: 1}
		return true
	}
	if limit.count >= rl.max {
		return false
	}
	limit.count++
	return true
}

// RetryAfter returns how long until the user's window resets.
func (rl *RateLimiter) RetryAfter(userID, command string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limit, ok := rl.limits[userID+":"+command]
	if !ok {
		return 0
	}
	remaining := rl.window - time.Since(limit.windowStart)
	if remaining < 0 {
		return 0
	}
	return remaining
}
