package cache

import (
	"time"
)

func InitStorage() *Cache {
	return &Cache{}
}

// newEntry arms the expiry timer before the entry is published, so readers
// of e.timer never race with its assignment.
func (c *Cache) newEntry(k any, v any, expiration time.Duration) *entry {
	e := &entry{value: v}
	e.timer = time.AfterFunc(expiration, func() { c.storage.CompareAndDelete(k, e) })
	return e
}

// Set stores v and removes it after expiration unless it was replaced.
func (c *Cache) Set(k any, v any, expiration time.Duration) {
	if prev, loaded := c.storage.Swap(k, c.newEntry(k, v, expiration)); loaded {
		stop(prev)
	}
}

func (c *Cache) Del(k any) {
	if prev, ok := c.storage.LoadAndDelete(k); ok {
		stop(prev)
	}
}

func (c *Cache) Load(k any) any {
	v, ok := c.storage.Load(k)
	if !ok {
		return nil
	}
	e, ok := v.(*entry)
	if !ok {
		return nil
	}
	return e.value
}

// LoadOrSet returns the stored value, or stores v with the expiration and returns it.
func (c *Cache) LoadOrSet(k any, v any, expiration time.Duration) (actual any, loaded bool) {
	e, loaded := c.loadOrStore(k, v, expiration)
	return e.value, loaded
}

func (c *Cache) loadOrStore(k any, v any, expiration time.Duration) (*entry, bool) {
	if act, ok := c.storage.Load(k); ok {
		return act.(*entry), true
	}

	e := c.newEntry(k, v, expiration)
	act, loaded := c.storage.LoadOrStore(k, e)
	if loaded {
		e.timer.Stop()
	}
	return act.(*entry), loaded
}

// Incr counts hits on k inside a fixed window and returns the count including this hit.
// The counter is dropped when its window ends.
func (c *Cache) Incr(k any, window time.Duration) int {
	for {
		now := time.Now()
		e, _ := c.loadOrStore(k, &counter{resetAt: now.Add(window)}, window)
		cnt, ok := e.value.(*counter)
		if !ok {
			return 0
		}

		cnt.mu.Lock()
		if now.Before(cnt.resetAt) {
			cnt.n++
			n := cnt.n
			cnt.mu.Unlock()
			return n
		}
		cnt.mu.Unlock()

		// window is over but the timer has not fired yet
		if c.storage.CompareAndDelete(k, e) {
			stop(e)
		}
	}
}

// Len counts the stored keys.
func (c *Cache) Len() int {
	var n int
	c.storage.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func stop(v any) {
	if e, ok := v.(*entry); ok && e.timer != nil {
		e.timer.Stop()
	}
}
