package coro

import "github.com/cooptask/coro/internal/clock"

// Mutex is a cooperative lock scoped to a single World: since at most
// one coroutine in a World ever runs at a time, contention is resolved
// by yielding rather than spinning or blocking an OS thread. A blocked
// acquirer yields control back to the coroutine that resumed it until
// it is resumed again, at which point it re-checks ownership.
//
// A Mutex is usable from multiple Worlds only if its holder never
// outlives the single World it was actually acquired from; the type
// keeps no World reference itself, since ownership is expressed purely
// in terms of the Coroutine records passed to its methods.
type Mutex struct {
	recursive bool
	timed     bool

	owner     *Coroutine
	holdCount int

	lastYield any
}

// NewMutex creates a mutex. recursive allows the owner to lock it again
// without deadlocking itself, incrementing a hold count that Unlock
// must match; timed additionally allows TimedLock to give up once a
// deadline passes. The two are independent, matching the original
// spec's bitset of mutex kinds.
func NewMutex(recursive, timed bool) *Mutex {
	return &Mutex{recursive: recursive, timed: timed}
}

// TryLock attempts to acquire m without yielding. It returns Success if
// m was free (or, for a recursive mutex, already held by the calling
// coroutine); Error if the calling coroutine already holds m but m is
// not recursive (reentering it can never succeed, no matter how many
// times it is retried); and Busy if some other coroutine holds m.
func (m *Mutex) TryLock(w *World) Status {
	self := w.Current()
	if m.owner == nil {
		m.owner = self
		m.holdCount = 1
		self.trackMutex(m)
		return Success
	}
	if m.owner == self {
		if !m.recursive {
			return Error
		}
		m.holdCount++
		return Success
	}
	return Busy
}

// Lock acquires m, yielding repeatedly while it is held by another
// coroutine. The value the caller is resumed with on each retry is
// recorded and available from LastYieldValue, since a waiter often
// needs to know what woke it even though Lock itself only ever returns
// Success.
func (m *Mutex) Lock(w *World) Status {
	for {
		if m.TryLock(w) == Success {
			return Success
		}
		m.lastYield = w.Yield(Blocked)
	}
}

// TimedLock behaves like Lock but gives up with TimedOut once the
// monotonic clock passes deadline. It requires m to have been created
// with timed set; called on a mutex that wasn't, it returns Error
// immediately without yielding, since there is no deadline contract to
// honor for a mutex the caller never configured for one.
func (m *Mutex) TimedLock(w *World, deadline clock.Timestamp) Status {
	if !m.timed {
		return Error
	}
	for {
		if m.TryLock(w) == Success {
			return Success
		}
		if past, err := clock.Past(deadline); err == nil && past {
			return TimedOut
		}
		m.lastYield = w.Yield(Blocked)
	}
}

// Unlock releases one level of ownership. A recursive mutex locked N
// times needs N Unlock calls before another coroutine can acquire it.
// Unlock on a mutex the caller does not own is a programmer error and
// returns Error rather than silently releasing someone else's lock.
func (m *Mutex) Unlock(w *World) Status {
	self := w.Current()
	if m.owner != self {
		return Error
	}
	m.holdCount--
	if m.holdCount > 0 {
		return Success
	}
	m.owner = nil
	self.releaseMutex(m)
	return Success
}

// LastYieldValue returns the value that the most recent coroutine
// waiting on m in Lock or TimedLock was resumed with. It is one value
// per mutex, not one per waiting coroutine.
func (m *Mutex) LastYieldValue() any { return m.lastYield }

// forceRelease drops ownership unconditionally, used by Terminate to
// release the mutexes a coroutine held at the moment it was torn down.
func (m *Mutex) forceRelease() {
	m.owner = nil
	m.holdCount = 0
}

func (co *Coroutine) trackMutex(m *Mutex) {
	for _, held := range co.waitingMutexes {
		if held == m {
			return
		}
	}
	co.waitingMutexes = append(co.waitingMutexes, m)
}

func (co *Coroutine) releaseMutex(m *Mutex) {
	for i, held := range co.waitingMutexes {
		if held == m {
			co.waitingMutexes = append(co.waitingMutexes[:i], co.waitingMutexes[i+1:]...)
			return
		}
	}
}
