// Package sky implements an embedded event-log database. For each named
// object type it persists, per object instance, a time-ordered sequence
// of typed events, partitioned on disk into size-bounded blocks.
//
// # Overview
//
// A Database is a root directory; each object type lives in its own
// subdirectory as an ObjectFile. Opening an object file takes an
// exclusive process-level lock (a PID file), loads the block-range
// header and the action/property registries, then the block files. Every
// successful AddEvent is durable on return; there is no batching and no
// write-ahead log. Blocks whose serialized form exceeds the configured
// threshold are split at the median object id.
//
// On-disk layout per object type, rooted at <database>/<object_type>/:
//
//   - header       sorted block ranges: count(4), then count x (min(8), max(8))
//   - actions      registry: count(4), then count x (id(4), nameLen(2), name)
//   - properties   same format as actions
//   - lock         ASCII PID of the current holder; absent = unlocked
//   - <min>-<max>  one file per block, holding its serialized paths
//
// All fixed-width integers are big-endian.
//
// # Usage
//
//	db := sky.NewDatabase("/var/lib/sky")
//	of := db.ObjectFile("user", sky.Options{})
//	if err := of.Open(); err != nil { /* handle */ }
//	defer of.Close()
//
//	login, _ := of.Actions().GetOrCreate("login")
//	err := of.AddEvent(5, sky.NewEvent(1327511000, login, nil))
//
//	// Full scan, ascending object-id order.
//	cur := sky.NewCursor()
//	it := of.NewPathIterator()
//	for it.Next(cur) {
//		for {
//			ev, err := cur.NextEvent()
//			if err != nil || ev == nil {
//				break
//			}
//		}
//	}
//
// # Concurrency
//
// The engine is single-threaded with synchronous I/O. Cross-process
// exclusion is mediated solely by the lock file: every Open, for reading
// or writing, requires the exclusive lock. Lock acquisition fails
// immediately with ErrLockHeld; callers wishing to retry loop
// externally.
package sky
