// Package state provides thread-safe storage for the latest device snapshot.
//
// # Overview
//
// Reporter callbacks arrive on timer goroutines while the UI and the watch
// printer read on their own schedule. The Store sits between them:
//
//	device.Reporter ──Listener()──> store.Record() ──(mutex)──> store.Snapshot()
//
// # Snapshot Contents
//
//   - Info: the latest device.Info, deep-copied on the way in and out
//   - HasInfo: whether any notification has arrived
//   - Notifications: how many notifications were recorded
//   - OrientationChanges: landscape/portrait flips between measured snapshots
//   - LastUpdated: wall-clock time of the last Record
//
// # Concurrency Model
//
// Record takes the write lock; Snapshot takes the read lock. Locks are held
// only while copying. The zero Store is ready to use.
package state
