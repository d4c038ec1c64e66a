package coro

import (
	"github.com/cooptask/coro/internal/xswitch"
)

// State is a coroutine's lifecycle stage.
type State uint8

const (
	// NotRunning is the state of a coroutine that has never run, or has
	// run to completion and is parked on idle awaiting reuse.
	NotRunning State = iota
	// Running is the state of a coroutine on its World's running list:
	// the one at the head, and any beneath it that are suspended inside
	// their own call to Resume. A World's first coroutine is always
	// Running.
	Running
	// BlockedState is the state of a coroutine that has yielded, or is
	// waiting on a mutex or condition variable, and is therefore off
	// both scheduling lists. (The name Blocked belongs to the sentinel
	// value such a coroutine yields; see status.go.)
	BlockedState
)

func (s State) String() string {
	switch s {
	case NotRunning:
		return "not-running"
	case Running:
		return "running"
	case BlockedState:
		return "blocked"
	default:
		return "unknown"
	}
}

// Coroutine is one cooperatively scheduled unit of execution. Every
// Coroutine is backed by exactly one goroutine for its entire life,
// carved once on first use and reused across however many functions it
// runs; see World.carve.
type Coroutine struct {
	world *World
	ctx   *xswitch.Slot
	next  *Coroutine // running/idle list linkage; nil off-list and at a list's tail

	id         ID
	state      State
	terminated bool

	waitingMutexes []*Mutex // mutexes held, for Terminate's forced release
	inbox          *message // head of this coroutine's FIFO message queue
	inboxTail      *message

	condNext, condPrev *Coroutine // doubly-linked waiter-queue links
	condWaitingOn      *Cond
}

// ID returns the coroutine's user-assigned identifier, or NotSet if
// none has been assigned.
func (co *Coroutine) ID() ID { return co.id }

// SetID assigns a user identifier to the coroutine. IDs are pure
// bookkeeping: the runtime never interprets them.
func (co *Coroutine) SetID(id ID) { co.id = id }

// State reports the coroutine's current lifecycle stage.
func (co *Coroutine) State() State { return co.state }

// World returns the World the coroutine belongs to.
func (co *Coroutine) World() *World { return co.world }

// resumable reports whether co is suspended in a yield: on neither the
// running nor the idle list, not finished, and not terminated. This is
// the precondition Resume checks; Create hands its function to a fresh
// or idle coroutine directly and does not go through it.
func (co *Coroutine) resumable() bool {
	return co != nil && co.next == nil && co.state == BlockedState && !co.terminated
}

// Create obtains a coroutine — reused from idle if one is available,
// freshly carved otherwise — and hands it f as its entry point. f does
// not start running yet: Create returns as soon as the coroutine has
// recorded f, and the first Resume of the returned coroutine calls f
// with that Resume's argument.
//
// Create returns nil only when f is nil. NoMem, the original spec's
// failure mode for a failed stack allocation, has no analogue here,
// since Go goroutine stacks grow on demand rather than being carved up
// front. See DESIGN.md.
func (w *World) Create(f func(arg any) any) *Coroutine {
	if f == nil {
		return nil
	}
	co := w.popIdle()
	if co == nil {
		co = w.carve()
	}
	self := w.Current()
	w.pushRunning(co)
	co.state = Running
	pv := switchTo(self, co, funcValue(f)).(passedValue)
	return pv.asData().(*Coroutine)
}

// Resume transfers control to target, carrying arg into its next yield
// point (or into its entry function, if this is target's first
// activation), and blocks the calling coroutine until control comes
// back. It returns whatever value target hands back, whether through
// Yield or by its entry function returning.
//
// If target is not resumable — nil, already running, finished and
// parked on idle, or terminated — Resume returns NotResumable without
// switching anything.
func (w *World) Resume(target *Coroutine, arg any) any {
	if !target.resumable() {
		return NotResumable
	}
	self := w.Current()
	w.pushRunning(target)
	target.state = Running
	return switchTo(self, target, arg)
}

// Yield suspends the calling coroutine, handing arg back to whoever is
// now the head of the running list (ordinarily the coroutine that last
// resumed it), and blocks until it is resumed again, returning the
// value it is resumed with.
//
// Calling Yield from the World's first coroutine — the one representing
// the host thread itself, which is never on the running list — is a
// no-op that returns nil immediately, since there is nothing beneath it
// to yield to.
func (w *World) Yield(arg any) any {
	self := w.Current()
	if self == w.first {
		return nil
	}
	newHead := w.popRunning(self)
	self.state = BlockedState
	v := switchTo(self, newHead, arg)
	self.state = Running
	return v
}

// coroutineMain is the body every carved goroutine runs for as long as
// its Coroutine record is reused. It mirrors the original spec's
// coroutine main loop: receive an entry function, run it to completion,
// park on idle, and wait to be handed the next one.
func coroutineMain(co *Coroutine) {
	w := co.world
	received := co.ctx.Capture().(passedValue)
	for {
		f := received.asFunc()

		callingArg := w.Yield(dataValue(co))

		result := f(callingArg)

		newHead := w.popRunning(co)
		co.id = NotSet
		co.state = NotRunning
		co.inbox = nil
		co.inboxTail = nil
		w.pushIdle(co)

		next := switchTo(co, newHead, result)
		received = next.(passedValue)
	}
}
