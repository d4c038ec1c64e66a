package coro_test

import (
	"testing"

	"github.com/cooptask/coro"
	"github.com/stretchr/testify/require"
)

func TestCondSignalWakesOldestWaiter(t *testing.T) {
	w := coro.NewWorld(0)
	m := coro.NewMutex(false, false)
	cond := coro.NewCond()

	var woke []int
	var waiters []*coro.Coroutine
	for i := 0; i < 3; i++ {
		id := i
		waiters = append(waiters, w.Create(func(arg any) any {
			m.Lock(w)
			cond.Wait(w, m)
			woke = append(woke, id)
			m.Unlock(w)
			return nil
		}))
	}
	for _, c := range waiters {
		w.Resume(c, nil)
	}
	require.Empty(t, woke)

	m.Lock(w)
	cond.Signal(w)
	m.Unlock(w)
	// The signaled waiter blocks reacquiring the mutex on its own first
	// turn back, since nothing has unlocked it for them yet.
	w.Resume(waiters[0], nil)
	require.Equal(t, []int{0}, woke)

	m.Lock(w)
	cond.Signal(w)
	m.Unlock(w)
	w.Resume(waiters[1], nil)
	require.Equal(t, []int{0, 1}, woke)
}

func TestCondBroadcastWakesEveryone(t *testing.T) {
	w := coro.NewWorld(0)
	m := coro.NewMutex(false, false)
	cond := coro.NewCond()

	var waiters []*coro.Coroutine
	for i := 0; i < 3; i++ {
		waiters = append(waiters, w.Create(func(arg any) any {
			m.Lock(w)
			cond.Wait(w, m)
			m.Unlock(w)
			return "done"
		}))
	}
	for _, c := range waiters {
		w.Resume(c, nil)
	}

	m.Lock(w)
	cond.Broadcast(w)
	m.Unlock(w)

	for _, c := range waiters {
		if c.State() == coro.BlockedState {
			require.Equal(t, "done", w.Resume(c, nil))
		}
	}
}

func TestCondBroadcastDoesNotConsumeLateWaiter(t *testing.T) {
	w := coro.NewWorld(0)
	m := coro.NewMutex(false, false)
	cond := coro.NewCond()

	early := w.Create(func(arg any) any {
		m.Lock(w)
		cond.Wait(w, m)
		m.Unlock(w)
		return "early-woke"
	})
	w.Resume(early, nil)

	m.Lock(w)
	cond.Broadcast(w)
	m.Unlock(w)
	require.Equal(t, "early-woke", w.Resume(early, nil))

	// A coroutine that starts waiting only now must not have been
	// woken by the broadcast that already completed.
	late := w.Create(func(arg any) any {
		m.Lock(w)
		cond.Wait(w, m)
		m.Unlock(w)
		return "late-woke"
	})
	result := w.Resume(late, nil)
	require.Equal(t, coro.Blocked, result, "late waiter should still be parked")

	m.Lock(w)
	cond.Signal(w)
	m.Unlock(w)
	require.Equal(t, "late-woke", w.Resume(late, nil))
}

func TestCondTimedWaitTimesOutAndLeavesQueue(t *testing.T) {
	w := coro.NewWorld(0)
	m := coro.NewMutex(false, false)
	cond := coro.NewCond()

	waiter := w.Create(func(arg any) any {
		m.Lock(w)
		st := cond.TimedWait(w, m, pastDeadline(t))
		m.Unlock(w)
		return st
	})
	require.Equal(t, coro.TimedOut, w.Resume(waiter, nil))

	// A subsequent broadcast must find no one left waiting.
	m.Lock(w)
	require.Equal(t, coro.Success, cond.Broadcast(w))
	m.Unlock(w)
}

func TestCondDestroyRejectsFurtherUse(t *testing.T) {
	w := coro.NewWorld(0)
	cond := coro.NewCond()
	cond.Destroy()

	m := coro.NewMutex(false, false)
	m.Lock(w)
	require.Equal(t, coro.Error, cond.Wait(w, m))
	require.Equal(t, coro.Error, cond.Signal(w))
	require.Equal(t, coro.Error, cond.Broadcast(w))
}
