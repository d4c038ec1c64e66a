package coro

import (
	"sync"
	"sync/atomic"

	"github.com/cooptask/coro/internal/tls"
)

// worldKey is the thread-local slot every package-level convenience
// function (Yield, Resume, Create, and friends) resolves against: in
// ThreadSafe mode (the default), each goroutine that calls into the
// package gets its own lazily created World the first time it does so,
// exactly as the original spec's "per-thread world, created the first
// time the thread touches the library" framing describes. The goroutine
// backing a coroutine of such a World is registered under that same
// World when it is carved (see World.carve).
var worldKey = tls.NewKey(nil)

var (
	threadingEnabled atomic.Bool
	threadingLocked  atomic.Bool

	globalWorld   *World
	globalWorldMu sync.Mutex
)

func init() {
	threadingEnabled.Store(!singleCore)
}

// SetThreadingSupportEnabled toggles whether the package maintains one
// World per calling goroutine (true, the ThreadSafe default) or a
// single process-wide World shared by every caller (false). It must be
// called before the first World is created — by Configure or by any
// package-level operation — and returns Busy otherwise, since changing
// the storage model out from under already-scheduled coroutines would
// orphan them.
//
// Under a coro_singlecore build this toggle is inert: there is always
// exactly one process-wide World, and SetThreadingSupportEnabled
// returns Error.
func SetThreadingSupportEnabled(enabled bool) Status {
	if singleCore {
		return Error
	}
	if threadingLocked.Load() {
		return Busy
	}
	threadingEnabled.Store(enabled)
	return Success
}

// Configure creates this thread's World ahead of its first use, with
// the given stack size for newly carved coroutines (0 selects
// DefaultStackSizeBytes). Calling it again for a thread that already
// has a World returns Busy.
//
// The original spec requires the caller to supply storage for a
// non-primary host thread's first-coroutine record before any other
// operation on that thread. Go's goroutines already own their stacks,
// so there is nothing for a caller to pre-allocate; Configure keeps the
// name and the "must happen before anything else" ordering constraint,
// but allocates the record itself. See DESIGN.md.
func Configure(stackSize int) Status {
	if singleCore || !threadingEnabled.Load() {
		globalWorldMu.Lock()
		defer globalWorldMu.Unlock()
		if globalWorld != nil {
			return Busy
		}
		globalWorld = NewWorld(stackSize)
		threadingLocked.Store(true)
		return Success
	}
	if _, ok := worldKey.Get(); ok {
		return Busy
	}
	w := NewWorld(stackSize)
	worldKey.Set(w)
	threadingLocked.Store(true)
	return Success
}

// currentWorld resolves the calling goroutine's World, lazily creating
// one with default settings if Configure was never called.
func currentWorld() *World {
	if singleCore || !threadingEnabled.Load() {
		globalWorldMu.Lock()
		defer globalWorldMu.Unlock()
		if globalWorld == nil {
			globalWorld = NewWorld(0)
			threadingLocked.Store(true)
		}
		return globalWorld
	}
	if v, ok := worldKey.Get(); ok {
		return v.(*World)
	}
	w := NewWorld(0)
	worldKey.Set(w)
	threadingLocked.Store(true)
	return w
}

// Create is the package-level form of World.Create, operating on the
// calling goroutine's World.
func Create(f func(arg any) any) *Coroutine { return currentWorld().Create(f) }

// Resume is the package-level form of World.Resume.
func Resume(target *Coroutine, arg any) any { return currentWorld().Resume(target, arg) }

// Yield is the package-level form of World.Yield.
func Yield(arg any) any { return currentWorld().Yield(arg) }

// Current is the package-level form of World.Current.
func Current() *Coroutine { return currentWorld().Current() }

// Terminate is the package-level form of World.Terminate.
func Terminate(target *Coroutine) Status { return currentWorld().Terminate(target) }
