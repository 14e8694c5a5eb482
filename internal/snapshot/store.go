// Package snapshot holds the dashboard data model: the immutable
// DashboardSnapshot built once per sync cycle, the merger that builds it
// from backend payloads, the window builder that derives chart views from
// metric history, and the Store that holds the current snapshot.
package snapshot

import "sync/atomic"

// Store holds the single current snapshot. Readers always see a complete
// snapshot; replacement is atomic.
type Store struct {
	current atomic.Pointer[DashboardSnapshot]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the committed snapshot, or nil before the first commit.
func (s *Store) Current() *DashboardSnapshot {
	return s.current.Load()
}

// Commit replaces the current snapshot with snap if snap comes from a later
// cycle than the one already committed. It returns false, leaving the store
// unchanged, for a stale result.
func (s *Store) Commit(snap *DashboardSnapshot) bool {
	if snap == nil {
		return false
	}
	for {
		old := s.current.Load()
		if old != nil && snap.Seq <= old.Seq {
			return false
		}
		if s.current.CompareAndSwap(old, snap) {
			return true
		}
	}
}
