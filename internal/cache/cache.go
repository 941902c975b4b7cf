// Package cache provides the short-lived LRU cache that sits between
// the dashboard handlers and the transaction source, so a burst of
// HTMX partial refreshes does not turn into a burst of vendor calls.
package cache

import "time"

// Cache is the generic cache interface handlers depend on.
type Cache[T any] interface {
	// Get retrieves a value, reporting whether it was present and fresh.
	Get(key string) (T, bool)

	// Set stores a value under the configured TTL.
	Set(key string, data T)

	// Delete removes a single key.
	Delete(key string)

	// Flush drops every entry. Used after a write so the next read
	// reflects the source again.
	Flush()

	// Size returns the current number of live items.
	Size() int
}

// Cleaner is implemented by caches that support expiry sweeps.
type Cleaner interface {
	CleanExpired() int
}

// Manager owns the periodic expiry sweep for registered caches.
type Manager struct {
	caches      []Cleaner
	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

func (m *Manager) Register(c Cleaner) {
	m.caches = append(m.caches, c)
}

// StartCleanup begins sweeping expired entries at the given interval.
func (m *Manager) StartCleanup(interval time.Duration) {
	go m.cleanup(interval)
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, c := range m.caches {
				c.CleanExpired()
			}
		case <-m.stopCleanup:
			return
		}
	}
}

// Stop terminates the sweep goroutine and waits for it to exit.
func (m *Manager) Stop() {
	close(m.stopCleanup)
	<-m.cleanupDone
}
