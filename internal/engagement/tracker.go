// Package engagement holds the optimistic like/visit state the original
// clients kept in component state: an in-flight guard so one like
// mutation is outstanding per viewer and post, and the ±1 toggle math.
package engagement

import "sync"

type likeKey struct {
	viewer string
	postID int64
}

// Tracker enforces at most one outstanding like mutation per (viewer,
// post). Concurrent attempts are dropped, not queued.
type Tracker struct {
	mu       sync.Mutex
	inflight map[likeKey]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[likeKey]struct{})}
}

// Begin claims the in-flight slot. It returns false when a mutation for
// this viewer and post is already outstanding; the caller must drop the
// action without issuing a request.
func (t *Tracker) Begin(viewer string, postID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := likeKey{viewer: viewer, postID: postID}
	if _, busy := t.inflight[key]; busy {
		return false
	}
	t.inflight[key] = struct{}{}
	return true
}

// End releases the slot once the mutation resolved, success or not.
func (t *Tracker) End(viewer string, postID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inflight, likeKey{viewer: viewer, postID: postID})
}

// Toggle applies one optimistic like flip: exactly ±1 relative to the
// displayed count, never below zero. Counts are not re-synchronized from
// the server within a page view; a reload re-reads server truth.
func Toggle(liked bool, likes int) (bool, int) {
	if liked {
		likes--
		if likes < 0 {
			likes = 0
		}
		return false, likes
	}
	return true, likes + 1
}
