// Package conversation drives the ask/continue protocol against a Genie
// space and tracks active conversations so follow-up questions can reuse
// them without callers juggling IDs.
package conversation

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultTTL is the inactivity window after which a tracked conversation
// is considered expired.
const DefaultTTL = 30 * time.Minute

// trackerSize bounds the cache; spaces are few in practice.
const trackerSize = 256

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// Context is the tracked state of one active conversation, keyed by
// space. It lives only in memory and is never persisted.
type Context struct {
	SpaceID        string    `json:"space_id"`
	ConversationID string    `json:"conversation_id"`
	LastMessageID  string    `json:"last_message_id"`
	StartedAt      time.Time `json:"started_at"`
	LastActivity   time.Time `json:"last_activity"`
}

// expired is a pure function of (now, last activity, ttl); there is no
// background sweeper, expiry is evaluated lazily on access.
func (c Context) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.LastActivity) > ttl
}

// Tracker is the in-memory conversation cache. The underlying LRU is
// safe for concurrent use; entries past the inactivity TTL are dropped
// when read.
type Tracker struct {
	cache *lru.Cache[string, Context]
	ttl   time.Duration
}

// NewTracker creates a tracker. A non-positive ttl falls back to
// DefaultTTL.
func NewTracker(ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cache, err := lru.New[string, Context](trackerSize)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &Tracker{cache: cache, ttl: ttl}
}

// Get returns the active conversation for a space, if any. Expired
// entries are evicted and reported as absent.
func (t *Tracker) Get(spaceID string) (Context, bool) {
	ctx, ok := t.cache.Get(spaceID)
	if !ok {
		return Context{}, false
	}
	if ctx.expired(timeNow(), t.ttl) {
		t.cache.Remove(spaceID)
		return Context{}, false
	}
	return ctx, true
}

// Update records the latest conversation state for a space after a
// successful question. StartedAt is preserved when the same conversation
// continues.
func (t *Tracker) Update(spaceID, conversationID, messageID string) {
	now := timeNow()
	started := now
	if prev, ok := t.cache.Peek(spaceID); ok && prev.ConversationID == conversationID {
		started = prev.StartedAt
	}
	t.cache.Add(spaceID, Context{
		SpaceID:        spaceID,
		ConversationID: conversationID,
		LastMessageID:  messageID,
		StartedAt:      started,
		LastActivity:   now,
	})
}

// LastActiveSpace returns the space with the most recent activity, if
// any non-expired conversation exists.
func (t *Tracker) LastActiveSpace() (string, bool) {
	now := timeNow()
	var best Context
	found := false
	for _, key := range t.cache.Keys() {
		ctx, ok := t.cache.Peek(key)
		if !ok || ctx.expired(now, t.ttl) {
			continue
		}
		if !found || ctx.LastActivity.After(best.LastActivity) {
			best = ctx
			found = true
		}
	}
	return best.SpaceID, found
}

// Clear drops the tracked conversation for one space.
func (t *Tracker) Clear(spaceID string) {
	t.cache.Remove(spaceID)
}

// ClearAll drops every tracked conversation.
func (t *Tracker) ClearAll() {
	t.cache.Purge()
}
