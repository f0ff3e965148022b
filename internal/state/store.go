package state

import (
	"sync"
	"time"

	"github.com/five82/devinfo/internal/device"
)

// Snapshot represents the latest device data available to the UI.
type Snapshot struct {
	Info               device.Info
	HasInfo            bool
	Notifications      int
	OrientationChanges int
	LastUpdated        time.Time
}

// IsHeadless returns true when the latest snapshot carried no measurements.
func (s Snapshot) IsHeadless() bool {
	return s.HasInfo && !s.Info.Known()
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Record replaces the stored device info and bumps the notification count.
// An orientation flip between two known snapshots is counted separately.
func (s *Store) Record(info device.Info) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snapshot
	if prev.HasInfo && prev.Info.Known() && info.Known() && prev.Info.Orientation != info.Orientation {
		s.snapshot.OrientationChanges++
	}
	s.snapshot.Info = info.Clone()
	s.snapshot.HasInfo = true
	s.snapshot.Notifications++
	s.snapshot.LastUpdated = time.Now()
}

// Listener adapts Record to the device.Listener signature.
func (s *Store) Listener() device.Listener {
	return s.Record
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Info = s.snapshot.Info.Clone()
	return snap
}
