package coro_test

import (
	"testing"

	"github.com/cooptask/coro"
	"github.com/cooptask/coro/internal/clock"
	"github.com/stretchr/testify/require"
)

func pastDeadline(t *testing.T) clock.Timestamp {
	t.Helper()
	d, err := clock.Deadline(-1e9)
	require.NoError(t, err)
	return d
}

func TestMutexTryLockExclusion(t *testing.T) {
	w := coro.NewWorld(0)
	m := coro.NewMutex(false, false)

	require.Equal(t, coro.Success, m.TryLock(w))

	holder := w.Create(func(arg any) any {
		return m.TryLock(w)
	})
	require.Equal(t, coro.Busy, w.Resume(holder, nil))

	require.Equal(t, coro.Success, m.Unlock(w))
}

func TestRecursiveMutexReentry(t *testing.T) {
	w := coro.NewWorld(0)
	m := coro.NewMutex(true, false)

	require.Equal(t, coro.Success, m.Lock(w))
	require.Equal(t, coro.Success, m.Lock(w))
	require.Equal(t, coro.Success, m.Lock(w))

	require.Equal(t, coro.Success, m.Unlock(w))
	require.Equal(t, coro.Success, m.Unlock(w))

	other := w.Create(func(arg any) any {
		return m.TryLock(w)
	})
	require.Equal(t, coro.Busy, w.Resume(other, nil), "still held once more")

	require.Equal(t, coro.Success, m.Unlock(w))

	other2 := w.Create(func(arg any) any {
		return m.TryLock(w)
	})
	require.Equal(t, coro.Success, w.Resume(other2, nil))
}

func TestNonRecursiveMutexRejectsReentry(t *testing.T) {
	w := coro.NewWorld(0)
	m := coro.NewMutex(false, false)
	require.Equal(t, coro.Success, m.TryLock(w))
	require.Equal(t, coro.Error, m.TryLock(w), "re-locking from the same coroutine without Recursive is a misuse, not contention")
}

func TestMutexUnlockByNonOwnerFails(t *testing.T) {
	w := coro.NewWorld(0)
	m := coro.NewMutex(false, false)

	owner := w.Create(func(arg any) any {
		return m.TryLock(w)
	})
	require.Equal(t, coro.Success, w.Resume(owner, nil))

	require.Equal(t, coro.Error, m.Unlock(w))
}

func TestMutexLockYieldsUntilFree(t *testing.T) {
	w := coro.NewWorld(0)
	m := coro.NewMutex(false, false)
	require.Equal(t, coro.Success, m.TryLock(w))

	var acquired bool
	waiter := w.Create(func(arg any) any {
		st := m.Lock(w)
		acquired = true
		return st
	})

	// Waiter blocks on the first turn since the mutex is still held.
	result := w.Resume(waiter, nil)
	require.Equal(t, coro.Blocked, result)
	require.False(t, acquired)

	m.Unlock(w)

	result = w.Resume(waiter, nil)
	require.Equal(t, coro.Success, result)
	require.True(t, acquired)
}

func TestMutexTimedLockTimesOut(t *testing.T) {
	w := coro.NewWorld(0)
	m := coro.NewMutex(false, true)
	require.Equal(t, coro.Success, m.TryLock(w))

	waiter := w.Create(func(arg any) any {
		return m.TimedLock(w, pastDeadline(t))
	})
	require.Equal(t, coro.TimedOut, w.Resume(waiter, nil))
}
