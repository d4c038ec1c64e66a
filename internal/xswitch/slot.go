// Package xswitch is the context switch primitive the rest of coro is
// built on: it captures and restores the "machine context" of a coroutine.
//
// A real stackful coroutine runtime (the kind this package's design is
// modeled after) captures a register/stack snapshot with something like
// ucontext.h's swapcontext and later restores it with a non-local jump.
// Go gives no such hook and forbids the kind of raw stack surgery that
// would require, so this package gets the same observable contract —
// "capture blocks until something restores it; restore hands control to
// exactly one previously captured slot" — out of a single unbuffered
// channel per slot. Sending is the restore, receiving is the capture;
// the unbuffered rendezvous is what guarantees at most one side of the
// handoff is ever runnable, which is the only property the rest of this
// module actually depends on.
package xswitch

// Slot is one captured context. The zero value is not usable; build one
// with New.
type Slot struct {
	ch chan any
}

// New returns a freshly carved slot, ready to Capture.
func New() *Slot {
	return &Slot{ch: make(chan any)}
}

// Capture blocks the calling goroutine until some other goroutine calls
// Restore on this slot, and returns whatever value was passed to Restore.
//
// This is the coroutine "parking" half of the switch: the goroutine
// backing a coroutine sits here whenever it is not the scheduled unit of
// work.
func (s *Slot) Capture() any {
	return <-s.ch
}

// Restore hands control to the goroutine blocked in Capture on this slot,
// passing value across the switch. Restore blocks until that goroutine is
// actually waiting in Capture, which is what makes the handoff a true
// switch rather than a buffered post box.
func (s *Slot) Restore(value any) {
	s.ch <- value
}

// Carve launches body on a freshly spawned goroutine, to be used as a new
// coroutine's underlying unit of execution. It is the Go-native stand-in
// for stack carving (reserving bytes on the current call stack): instead
// of slicing a stack out of the caller's frame, carving here means
// starting a goroutine whose own runtime-managed stack plays the same
// role. stackSizeHint is accepted only for parity with the carved-stack
// API that callers configure against (see coro.RoundStackSize); Go
// goroutine stacks start at 2KiB and grow on demand regardless of the
// hint, and there is no per-goroutine stack ceiling worth setting here —
// runtime/debug.SetMaxStack is process-wide, so honoring the hint that
// way would shrink every other goroutine in the process along with this
// one.
func Carve(stackSizeHint int, body func()) {
	_ = stackSizeHint
	go body()
}
