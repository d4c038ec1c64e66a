// Package coro implements cooperative, non-preemptive stackful
// coroutines sharing a logical host thread, plus the synchronization
// primitives — a mutex, a condition variable, and a per-coroutine
// message queue — that coordinate them.
//
// Every coroutine in a World is backed by exactly one real goroutine for
// its entire lifetime; at most one of a World's goroutines is ever
// logically runnable at a time, enforced by the unbuffered rendezvous
// channels in internal/xswitch. See SPEC_FULL.md §0 for the full
// rationale and DESIGN.md for the grounding of each piece in the
// teacher repository.
package coro

import (
	"sync/atomic"

	"github.com/cooptask/coro/internal/xswitch"
)

// World is a set of coroutines that take turns owning the CPU: the
// running/idle scheduling lists described in the original design's
// "per-thread world" component. The scratch slot that design passes
// values through is, here, each Coroutine's own xswitch.Slot: the value
// handed to Resume/Yield travels as the argument to Restore and comes
// back as the result of Capture (see switchTo below), so there is
// nothing left for World itself to hold. A process may run many
// independent Worlds concurrently; coroutines never migrate between
// them.
type World struct {
	first      *Coroutine
	runningTop *Coroutine
	idleTop    *Coroutine
	stackSize  int
	nextID     atomic.Int64
}

// NewWorld creates a new coroutine world and its distinguished first
// coroutine, representing the calling goroutine itself. stackSize is
// rounded and clamped per RoundStackSize; pass 0 for the default.
//
// The original spec requires the first coroutine of a non-primary host
// thread to be supplied by the caller, preserving the no-heap-on-setup
// property for everything but that one record. Go gives no equivalent
// "caller-managed storage" — there is no stack to carve for the first
// coroutine, since it already has one: the caller's own. NewWorld
// allocates the record itself; see DESIGN.md for this substitution.
func NewWorld(stackSize int) *World {
	if stackSize <= 0 {
		stackSize = DefaultStackSizeBytes
	}
	w := &World{stackSize: RoundStackSize(stackSize)}
	w.first = &Coroutine{world: w, id: NotSet, state: Running, ctx: xswitch.New()}
	return w
}

// Current returns the coroutine presently at the head of the running
// list — the one logically executing on this World's behalf. It is
// never nil: before anything else runs, Current is the World's first
// coroutine, representing the host thread itself.
func (w *World) Current() *Coroutine {
	if w.runningTop == nil {
		return w.first
	}
	return w.runningTop
}

// First returns the World's distinguished first coroutine.
func (w *World) First() *Coroutine {
	return w.first
}

func (w *World) pushRunning(co *Coroutine) {
	co.next = w.runningTop
	w.runningTop = co
}

// popRunning removes the current head of the running list (which must be
// co) and returns the new head, or w.first if the list is now empty.
func (w *World) popRunning(co *Coroutine) *Coroutine {
	w.runningTop = co.next
	co.next = nil
	if w.runningTop == nil {
		return w.first
	}
	return w.runningTop
}

func (w *World) pushIdle(co *Coroutine) {
	co.next = w.idleTop
	w.idleTop = co
}

func (w *World) popIdle() *Coroutine {
	co := w.idleTop
	if co == nil {
		return nil
	}
	w.idleTop = co.next
	co.next = nil
	return co
}

// carve spawns the goroutine that will back a brand new coroutine
// record. This is the Go-native replacement for stack carving: see
// internal/xswitch.Carve. If w is the calling goroutine's
// thread-local World, the new goroutine is registered under the same
// World, so the package-level functions called from inside the
// coroutine resolve to w.
func (w *World) carve() *Coroutine {
	co := &Coroutine{world: w, id: NotSet, ctx: xswitch.New()}
	v, ok := worldKey.Get()
	inherit := ok && v == w
	xswitch.Carve(w.stackSize, func() {
		if inherit {
			worldKey.Set(w)
		}
		coroutineMain(co)
	})
	return co
}

// unlink removes co from whichever of the running/idle lists it is
// currently on, if either. Used by Terminate to splice out a coroutine
// that is not necessarily at the head of its list.
func (w *World) unlink(co *Coroutine) {
	if head := w.runningTop; head != nil {
		if head == co {
			w.runningTop = co.next
			co.next = nil
			return
		}
		for prev := head; prev.next != nil; prev = prev.next {
			if prev.next == co {
				prev.next = co.next
				co.next = nil
				return
			}
		}
	}
	if head := w.idleTop; head != nil {
		if head == co {
			w.idleTop = co.next
			co.next = nil
			return
		}
		for prev := head; prev.next != nil; prev = prev.next {
			if prev.next == co {
				prev.next = co.next
				co.next = nil
				return
			}
		}
	}
}

// switchTo restores control to next carrying value, then blocks self
// until it is resumed again, returning whatever value it is resumed
// with. This is the single mechanism every suspension point in this
// package funnels through: Resume handing off to its target, Yield
// handing back to whoever is now the head of running, and a completed
// coroutine handing its result back before parking on idle.
func switchTo(self, next *Coroutine, value any) any {
	next.ctx.Restore(value)
	return self.ctx.Capture()
}
