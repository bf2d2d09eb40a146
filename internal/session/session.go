// Package session tracks the traversal of a single study queue. A session
// is strictly forward-only: each graded answer or skip consumes exactly one
// queue slot, and the queue is never re-ordered once started.
package session

import (
	"github.com/google/uuid"
	"github.com/tmakino/kotoba/internal/catalog"
)

// Session is the runtime state of one queue traversal. It is created by
// Start, advanced one slot per answer, and discarded on completion or
// cancellation. Sessions are never persisted.
type Session struct {
	id       string
	scope    string
	queue    []catalog.Item
	index    int
	active   bool
	total    int
	practice bool
}

// Start creates an active session over the given queue. An empty queue is
// refused: Start returns nil rather than an inactive session, so callers
// can surface "nothing to study" without an error path.
func Start(scope string, queue []catalog.Item) *Session {
	if len(queue) == 0 {
		return nil
	}
	return &Session{
		id:     uuid.New().String(),
		scope:  scope,
		queue:  queue,
		active: true,
		total:  len(queue),
	}
}

// StartPractice creates a session whose answers must not touch memory
// records or lifetime stats. The traversal contract is identical.
func StartPractice(scope string, queue []catalog.Item) *Session {
	s := Start(scope, queue)
	if s != nil {
		s.practice = true
	}
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Scope returns the category (or catalog.ScopeAll) that produced the queue.
func (s *Session) Scope() string { return s.scope }

// Total returns the queue length at creation. Immutable.
func (s *Session) Total() int { return s.total }

// Index returns the 0-based cursor position.
func (s *Session) Index() int { return s.index }

// Active reports whether the session still has items to serve.
func (s *Session) Active() bool { return s.active }

// Practice reports whether this is a no-stakes practice session.
func (s *Session) Practice() bool { return s.practice }

// Completed reports whether the cursor consumed the whole queue.
func (s *Session) Completed() bool { return !s.active && s.index >= s.total }

// Current returns the item under the cursor while the session is active.
func (s *Session) Current() (catalog.Item, bool) {
	if s == nil || !s.active {
		return catalog.Item{}, false
	}
	return s.queue[s.index], true
}

// Advance moves the cursor forward by exactly one slot. Advancing a
// completed or cancelled session is a no-op; the index never exceeds the
// total. Returns true if the session is still active afterwards.
func (s *Session) Advance() bool {
	if s == nil || !s.active {
		return false
	}
	s.index++
	if s.index >= s.total {
		s.active = false
	}
	return s.active
}

// Cancel discards the session from any state.
func (s *Session) Cancel() {
	if s == nil {
		return
	}
	s.active = false
	s.queue = nil
	s.index = 0
	s.total = 0
}
