package server

import (
	"os"
	"sync"
	"time"

	"github.com/mj1618/chatscribe/internal/platform/replay"
)

// sessionEntry holds a parsed recording with the file state it came from.
type sessionEntry struct {
	session   replay.Session
	modTime   time.Time
	timestamp time.Time
}

// SessionCache keeps parsed session recordings so repeated tool calls on
// the same file skip re-reading it. An entry is dropped when its TTL runs
// out or the file changes on disk.
type SessionCache struct {
	mu      sync.Mutex
	entries map[string]sessionEntry
	ttl     time.Duration
}

// NewSessionCache creates a new cache. A ttl of 0 disables caching.
func NewSessionCache(ttl time.Duration) *SessionCache {
	return &SessionCache{
		entries: make(map[string]sessionEntry),
		ttl:     ttl,
	}
}

// Load returns a fresh host over the recording at path, positioned at its
// newest frame. Hosts are never shared between calls.
func (c *SessionCache) Load(path string) (*replay.Host, error) {
	if c.ttl == 0 {
		return replay.Load(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		c.Invalidate(path)
		return nil, err
	}

	c.mu.Lock()
	if entry, ok := c.entries[path]; ok && time.Since(entry.timestamp) < c.ttl && entry.modTime.Equal(info.ModTime()) {
		session := entry.session
		c.mu.Unlock()
		return replay.New(session), nil
	}
	c.mu.Unlock()

	host, err := replay.Load(path)
	if err != nil {
		// A file that no longer parses must not keep its old recording alive.
		c.Invalidate(path)
		return nil, err
	}

	c.mu.Lock()
	c.entries[path] = sessionEntry{session: host.Session(), modTime: info.ModTime(), timestamp: time.Now()}
	c.mu.Unlock()

	return host, nil
}

// Invalidate drops the entry for path.
func (c *SessionCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Len returns the number of cached recordings.
func (c *SessionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
