package mock

import (
	"sync"
	"time"
)

// Time is a settable clock. Once set, it keeps ticking from the chosen instant.
type Time struct {
	mu        sync.RWMutex
	current   time.Time
	updatedAt time.Time
}

func NewTime() *Time {
	now := time.Now()
	return &Time{
		current:   now,
		updatedAt: now,
	}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime
	t.updatedAt = time.Now()
}

// Reset goes back to following the wall clock.
func (t *Time) Reset() {
	t.SetCurrentTime(time.Now())
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current.Add(time.Since(t.updatedAt))
}
