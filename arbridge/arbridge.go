package arbridge

import "sync"

var (
	initOnce sync.Once
	shared   Bridge
)

// Initialize constructs the shared bridge instance. Idempotent: a second
// call is a no-op returning the existing instance. The engine invokes it
// automatically before scene load; explicit calls are also fine.
func Initialize() Bridge {
	initOnce.Do(func() {
		shared = New()
	})
	return shared
}

// Shared returns the shared bridge instance, initializing it on first
// use.
func Shared() Bridge {
	return Initialize()
}
