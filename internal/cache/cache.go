// Package cache holds short-lived response payloads for the read-heavy
// event listing. Values are pre-marshaled JSON so a hit skips both the
// repo and re-encoding.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte) error
	// Invalidate drops every key under the given prefix. Called after any
	// event write so the listing never serves a deleted or stale record
	// beyond the TTL.
	Invalidate(ctx context.Context, prefix string) error
}

type memoryEntry struct {
	val []byte
	exp time.Time
}

type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]memoryEntry
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Memory{
		ttl: ttl,
		m:   make(map[string]memoryEntry),
	}
}

func (c *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	now := time.Now()

	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if now.After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false, nil
	}

	return e.val, true, nil
}

func (c *Memory) Set(ctx context.Context, key string, val []byte) error {
	c.mu.Lock()
	c.m[key] = memoryEntry{val: val, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *Memory) Invalidate(ctx context.Context, prefix string) error {
	c.mu.Lock()
	for k := range c.m {
		if strings.HasPrefix(k, prefix) {
			delete(c.m, k)
		}
	}
	c.mu.Unlock()
	return nil
}
