package dashboard

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// FileLock is a coarse inter-process lock around dashboard file writes. The
// lock file is created O_EXCL and carries owner PID and an expiry, so a
// crashed holder never wedges the dashboard: a stale lock is broken by the
// next acquirer.
type FileLock struct {
	path string
	ttl  time.Duration
}

type lockInfo struct {
	PID       int       `json:"pid"`
	LockedAt  time.Time `json:"lockedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewFileLock creates a lock handle; nothing is acquired yet. ttl bounds how
// long a holder may keep the lock before others break it.
func NewFileLock(path string, ttl time.Duration) *FileLock {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &FileLock{path: path, ttl: ttl}
}

// Acquire blocks until the lock is held or timeout passes.
func (l *FileLock) Acquire(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if l.tryAcquire() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("dashboard: lock %s: timed out after %s", l.path, timeout)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (l *FileLock) tryAcquire() bool {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		l.breakStale()
		return false
	}
	defer f.Close()

	info := lockInfo{
		PID:       os.Getpid(),
		LockedAt:  time.Now(),
		ExpiresAt: time.Now().Add(l.ttl),
	}
	_ = json.NewEncoder(f).Encode(info)
	return true
}

// breakStale removes the lock file if its expiry has passed or it is
// unreadable garbage.
func (l *FileLock) breakStale() {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return
	}
	var info lockInfo
	if err := json.Unmarshal(data, &info); err != nil || time.Now().After(info.ExpiresAt) {
		_ = os.Remove(l.path)
	}
}

// Release drops the lock. Idempotent.
func (l *FileLock) Release() {
	_ = os.Remove(l.path)
}
