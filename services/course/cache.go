package courseService

import (
	"sync"
	"time"
)

// ScoreCache is a bounded TTL memoization in front of the score
// aggregators. The database stays the source of truth: entries expire,
// the cache holds at most capacity entries, and every progress write for
// a user drops that user's entries.
type ScoreCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[scoreCacheKey]scoreCacheEntry
}

type scoreCacheKey struct {
	userID    uint
	scopeID   uint // course or session ID, depending on isSession
	isSession bool
}

type scoreCacheEntry struct {
	courseScore  CourseScoreResult
	sessionScore float64
	expiresAt    time.Time
}

func NewScoreCache(capacity int, ttl time.Duration) *ScoreCache {
	if capacity < 1 {
		capacity = 1
	}
	return &ScoreCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[scoreCacheKey]scoreCacheEntry),
	}
}

// GetCourseScore returns a cached course score, if fresh
func (c *ScoreCache) GetCourseScore(userID, courseID uint) (CourseScoreResult, bool) {
	entry, ok := c.get(scoreCacheKey{userID: userID, scopeID: courseID})
	return entry.courseScore, ok
}

// SetCourseScore caches a course score
func (c *ScoreCache) SetCourseScore(userID, courseID uint, res CourseScoreResult) {
	c.set(scoreCacheKey{userID: userID, scopeID: courseID}, scoreCacheEntry{courseScore: res})
}

// GetSessionScore returns a cached session percentage, if fresh
func (c *ScoreCache) GetSessionScore(userID, sessionID uint) (float64, bool) {
	entry, ok := c.get(scoreCacheKey{userID: userID, scopeID: sessionID, isSession: true})
	return entry.sessionScore, ok
}

// SetSessionScore caches a session percentage
func (c *ScoreCache) SetSessionScore(userID, sessionID uint, percentage float64) {
	c.set(scoreCacheKey{userID: userID, scopeID: sessionID, isSession: true}, scoreCacheEntry{sessionScore: percentage})
}

// InvalidateUser drops every cached score of one user. Called on every
// progress write; a course write moves the session score too, so the whole
// user is cleared rather than tracking which session owns which course.
func (c *ScoreCache) InvalidateUser(userID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.userID == userID {
			delete(c.entries, key)
		}
	}
}

// Len reports the current number of entries, expired or not
func (c *ScoreCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ScoreCache) get(key scoreCacheKey) (scoreCacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return scoreCacheEntry{}, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return scoreCacheEntry{}, false
	}
	return entry, true
}

func (c *ScoreCache) set(key scoreCacheKey, entry scoreCacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictLocked()
	}
	entry.expiresAt = time.Now().Add(c.ttl)
	c.entries[key] = entry
}

// evictLocked drops expired entries, or the entry closest to expiry when
// none have expired yet. Caller holds the lock.
func (c *ScoreCache) evictLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) < c.capacity {
		return
	}
	var oldest scoreCacheKey
	var oldestAt time.Time
	first := true
	for key, entry := range c.entries {
		if first || entry.expiresAt.Before(oldestAt) {
			oldest, oldestAt, first = key, entry.expiresAt, false
		}
	}
	delete(c.entries, oldest)
}
