// Package distributed coordinates debounce windows across application
// instances using Redis.
//
// A local debouncer collapses bursts within one process. When several
// instances of a service react to the same external events, each one
// would still run the debounced function once per window. A WindowGate
// closes that gap: instances race to claim a shared window key, the
// single winner runs the function, and the others coalesce.
//
// # Quick Start
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//
//	gate, err := distributed.NewGateSafe(distributed.Config{
//		Redis:  rdb,
//		Key:    "rebuild_index",
//		Window: 5 * time.Second,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	claimed, err := gate.TryOpen(ctx)
//	if err != nil {
//		// Redis unavailable; fall back to acting locally.
//	}
//	if claimed {
//		rebuildIndex()
//		defer gate.Release(ctx)
//	}
//
// # Trailing-Edge Windows
//
// For the distributed form of a trailing-edge debounce, the owner
// calls Extend on every fresh event, pushing the expiry back out.
// The window closes on its own once events go quiet, and the key TTL
// guarantees a crashed owner cannot hold the window forever.
//
// # Ownership
//
// Release and Extend are owner-checked with Lua scripts: an instance
// whose claim already expired cannot release or extend a window that
// another instance has since claimed.
package distributed
