package coro_test

import (
	"testing"

	"github.com/cooptask/coro"
	"github.com/stretchr/testify/require"
)

func TestTerminateRejectsSelf(t *testing.T) {
	w := coro.NewWorld(0)
	var result coro.Status
	co := w.Create(func(arg any) any {
		result = w.Terminate(w.Current())
		return nil
	})
	w.Resume(co, nil)
	require.Equal(t, coro.Error, result)
}

func TestTerminateRejectsFirstCoroutine(t *testing.T) {
	w := coro.NewWorld(0)
	require.Equal(t, coro.Error, w.Terminate(w.First()))
}

func TestTerminateReleasesHeldMutexes(t *testing.T) {
	w := coro.NewWorld(0)
	m := coro.NewMutex(false, false)

	victim := w.Create(func(arg any) any {
		m.Lock(w)
		w.Yield(nil)
		return nil
	})
	w.Resume(victim, nil)
	require.Equal(t, coro.Busy, m.TryLock(w))

	require.Equal(t, coro.Success, w.Terminate(victim))
	require.Equal(t, coro.Success, m.TryLock(w))
}

func TestTerminatedCoroutineIsNotResumable(t *testing.T) {
	w := coro.NewWorld(0)
	victim := w.Create(func(arg any) any {
		w.Yield(nil)
		return nil
	})
	w.Resume(victim, nil)
	require.Equal(t, coro.Success, w.Terminate(victim))
	require.Equal(t, coro.NotResumable, w.Resume(victim, nil))
}
