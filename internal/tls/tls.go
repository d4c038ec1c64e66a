// Package tls is the host thread-local-storage service the coroutine
// runtime is specified to consume rather than implement: create a key,
// get/set a value by key, optionally run a destructor when the owning
// goroutine (this port's stand-in for a host thread, see coro.World) is
// done with it.
//
// The storage itself is a lock-free association list keyed by goroutine
// identity, adapted from the teacher's list.go Michael & Scott queue: the
// same CAS-loop discipline, repurposed from a FIFO of queued values into
// an upsert-by-key table, since every entry here is read far more often
// than it is written (one Set per goroutine lifetime, many Gets).
package tls

import "sync/atomic"

type entry struct {
	key   uintptr
	value atomic.Pointer[any]
	next  atomic.Pointer[entry]
}

// Key is one thread-local slot. Create one per logical value you need to
// stash per host thread (coro keeps exactly one, for *World).
type Key struct {
	head       atomic.Pointer[entry]
	destructor func(any)
}

// NewKey returns a new thread-local-storage key. destructor, if non-nil,
// is run by Clear on the value being cleared. It is not run when a
// goroutine exits or when a value becomes collectible: Go has no hard
// "thread is exiting" signal to hang a destructor off of, so the
// original collaborator's "run on thread exit" contract is approximated
// only by calling Clear before the goroutine returns.
func NewKey(destructor func(any)) *Key {
	return &Key{destructor: destructor}
}

// Get returns the value previously Set by the calling goroutine, if any.
func (k *Key) Get() (any, bool) {
	id := currentID()
	for e := k.head.Load(); e != nil; e = e.next.Load() {
		if e.key == id {
			if v := e.value.Load(); v != nil {
				return *v, true
			}
			return nil, false
		}
	}
	return nil, false
}

// Set stores value under the calling goroutine's identity, replacing any
// prior value it had set.
func (k *Key) Set(value any) {
	id := currentID()
	for e := k.head.Load(); e != nil; e = e.next.Load() {
		if e.key == id {
			v := value
			e.value.Store(&v)
			return
		}
	}

	v := value
	n := &entry{key: id}
	n.value.Store(&v)
	for {
		head := k.head.Load()
		n.next.Store(head)
		if k.head.CompareAndSwap(head, n) {
			return
		}
	}
}

// Clear removes the calling goroutine's value, running the key's
// destructor (if any) on the value that was stored. It is the only
// place the destructor runs.
func (k *Key) Clear() {
	id := currentID()
	for e := k.head.Load(); e != nil; e = e.next.Load() {
		if e.key == id {
			if v := e.value.Swap(nil); v != nil && k.destructor != nil {
				k.destructor(*v)
			}
			return
		}
	}
}
