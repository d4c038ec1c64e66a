package coro

import "github.com/cooptask/coro/internal/clock"

// Cond is a condition variable paired with a Mutex, the same pairing
// the original spec requires: a waiter always holds the mutex before
// calling Wait, and gets it back before Wait returns.
//
// There is no OS wait queue underneath this: Signal and Broadcast
// resume a waiting coroutine directly, synchronously, as part of the
// signaling coroutine's own turn. A waiter that needs to notice a
// deadline (TimedWait) polls it each time it is given a turn, since a
// purely cooperative scheduler has no other way to wake something on a
// timer — nothing runs "in the background" to interrupt it.
type Cond struct {
	head, tail *Coroutine // FIFO waiter queue, oldest first
	numWaiters int
	destroyed  bool
}

// NewCond creates a condition variable.
func NewCond() *Cond {
	return &Cond{}
}

func (c *Cond) enqueue(co *Coroutine) {
	co.condWaitingOn = c
	co.condPrev = c.tail
	co.condNext = nil
	if c.tail != nil {
		c.tail.condNext = co
	} else {
		c.head = co
	}
	c.tail = co
	c.numWaiters++
}

func (c *Cond) remove(co *Coroutine) {
	if co.condWaitingOn != c {
		return
	}
	if co.condPrev != nil {
		co.condPrev.condNext = co.condNext
	} else {
		c.head = co.condNext
	}
	if co.condNext != nil {
		co.condNext.condPrev = co.condPrev
	} else {
		c.tail = co.condPrev
	}
	co.condNext, co.condPrev, co.condWaitingOn = nil, nil, nil
	c.numWaiters--
}

func (c *Cond) dequeueOldest() *Coroutine {
	co := c.head
	if co == nil {
		return nil
	}
	c.remove(co)
	return co
}

// detachAll removes every waiter currently queued and returns them
// oldest-first, leaving the queue empty. Waiters that arrive via Wait
// while Broadcast is still resuming this batch land in the now-empty
// queue and are left untouched — an in-flight broadcast never consumes
// a signal meant for a coroutine that wasn't waiting yet.
func (c *Cond) detachAll() []*Coroutine {
	batch := make([]*Coroutine, 0, c.numWaiters)
	for co := c.head; co != nil; {
		next := co.condNext
		co.condNext, co.condPrev, co.condWaitingOn = nil, nil, nil
		batch = append(batch, co)
		co = next
	}
	c.head, c.tail, c.numWaiters = nil, nil, 0
	return batch
}

// Wait releases m, blocks until Signal or Broadcast wakes this
// coroutine, then reacquires m before returning. It returns Error
// without touching m if the condition variable was already destroyed
// when Wait was called; if it is destroyed while this coroutine waits,
// Wait reacquires m and returns Error.
func (c *Cond) Wait(w *World, m *Mutex) Status {
	if c.destroyed {
		return Error
	}
	self := w.Current()
	if st := m.Unlock(w); st != Success {
		return st
	}
	c.enqueue(self)
	for self.condWaitingOn == c {
		w.Yield(Blocked)
		if c.destroyed {
			m.Lock(w)
			return Error
		}
	}
	return m.Lock(w)
}

// TimedWait behaves like Wait but gives up with TimedOut if deadline
// passes before the coroutine is signaled. A timed-out wait removes
// itself from the waiter queue before returning, so a later Signal or
// Broadcast never tries to resume a coroutine that has moved on.
func (c *Cond) TimedWait(w *World, m *Mutex, deadline clock.Timestamp) Status {
	if c.destroyed {
		return Error
	}
	self := w.Current()
	if st := m.Unlock(w); st != Success {
		return st
	}
	c.enqueue(self)
	for {
		if past, err := clock.Past(deadline); err == nil && past {
			c.remove(self)
			m.Lock(w)
			return TimedOut
		}
		w.Yield(Blocked)
		if c.destroyed {
			m.Lock(w)
			return Error
		}
		if self.condWaitingOn != c {
			// Signal/Broadcast already dequeued us: we were woken.
			break
		}
	}
	return m.Lock(w)
}

// Signal wakes the single longest-waiting coroutine, if any.
func (c *Cond) Signal(w *World) Status {
	if c.destroyed {
		return Error
	}
	waiter := c.dequeueOldest()
	if waiter == nil {
		return Success
	}
	w.Resume(waiter, nil)
	return Success
}

// Broadcast wakes every coroutine waiting at the moment it is called.
func (c *Cond) Broadcast(w *World) Status {
	if c.destroyed {
		return Error
	}
	for _, waiter := range c.detachAll() {
		w.Resume(waiter, nil)
	}
	return Success
}

// Destroy marks the condition variable unusable: every call to Wait,
// TimedWait, Signal, or Broadcast made after Destroy returns Error,
// matching the original spec's -1 sentinel for a destroyed condition
// variable's waiter count.
func (c *Cond) Destroy() {
	c.destroyed = true
	c.head, c.tail, c.numWaiters = nil, nil, 0
}
