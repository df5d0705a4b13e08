package sheet

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds a parsed workbook and the time it was parsed.
type cacheEntry struct {
	workbook *Workbook
	built    time.Time
}

// Loader parses workbooks and memoizes the result by content hash, so
// re-submitting identical bytes (under any file name) does not parse again.
// A zero TTL disables caching.
type Loader struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]*cacheEntry
	sf      singleflight.Group
}

// NewLoader creates a Loader whose entries expire after ttl.
func NewLoader(ttl time.Duration) *Loader {
	return &Loader{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*cacheEntry),
	}
}

// Fingerprint returns the cache key for workbook content.
func Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func (l *Loader) expired(e *cacheEntry) bool {
	if l.ttl <= 0 {
		return true
	}
	return l.now().Sub(e.built) > l.ttl
}

// Load returns the parsed workbook for content, labelled with name.
// Concurrent loads of the same content share one parse.
func (l *Loader) Load(ctx context.Context, name string, content []byte) (*Workbook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.ttl <= 0 {
		return Parse(name, content)
	}

	key := Fingerprint(content)

	l.mu.RLock()
	e, ok := l.entries[key]
	l.mu.RUnlock()
	if ok && !l.expired(e) {
		return e.workbook.withName(name), nil
	}

	v, err, _ := l.sf.Do(key, func() (interface{}, error) {
		l.mu.RLock()
		e, ok := l.entries[key]
		l.mu.RUnlock()
		if ok && !l.expired(e) {
			return e.workbook, nil
		}

		wb, err := Parse(name, content)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.entries[key] = &cacheEntry{workbook: wb, built: l.now()}
		l.mu.Unlock()
		return wb, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Workbook).withName(name), nil
}

// Invalidate drops the cached parse of content, if any.
func (l *Loader) Invalidate(content []byte) {
	key := Fingerprint(content)
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
}

// Purge removes expired entries and returns how many were dropped.
func (l *Loader) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for key, e := range l.entries {
		if l.expired(e) {
			delete(l.entries, key)
			n++
		}
	}
	return n
}

// Len returns the number of cached workbooks, expired ones included.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
