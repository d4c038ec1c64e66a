package coro_test

import (
	"testing"

	"github.com/cooptask/coro"
	"github.com/stretchr/testify/require"
)

func TestInboxFIFOOrdering(t *testing.T) {
	w := coro.NewWorld(0)
	co := w.Create(func(arg any) any { return nil })
	w.Resume(co, nil) // run to completion so co exists and is idle; fields still usable
	sender := w.First()

	co.Push(sender, "a", 1)
	co.Push(sender, "b", 2)
	co.Push(sender, "a", 3)

	kind, payload, from, ok := co.Pop()
	require.True(t, ok)
	require.Equal(t, "a", kind)
	require.Equal(t, 1, payload)
	require.Same(t, sender, from)

	kind, payload, from, ok = co.Pop()
	require.True(t, ok)
	require.Equal(t, "b", kind)
	require.Equal(t, 2, payload)
	require.Same(t, sender, from)

	require.True(t, co.HasMessages())
	kind, payload, _, ok = co.Pop()
	require.True(t, ok)
	require.Equal(t, "a", kind)
	require.Equal(t, 3, payload)

	require.False(t, co.HasMessages())
	_, _, _, ok = co.Pop()
	require.False(t, ok)
}

func TestInboxPopTypeSkipsOtherKinds(t *testing.T) {
	w := coro.NewWorld(0)
	co := w.Create(func(arg any) any { return nil })
	w.Resume(co, nil)
	sender := w.First()

	co.Push(sender, "ping", "p1")
	co.Push(sender, "data", 42)
	co.Push(sender, "ping", "p2")

	payload, from, ok := co.PopType("data")
	require.True(t, ok)
	require.Equal(t, 42, payload)
	require.Same(t, sender, from)

	kind, payload, _, ok := co.Peek()
	require.True(t, ok)
	require.Equal(t, "ping", kind)
	require.Equal(t, "p1", payload)

	payload, _, ok = co.PopType("ping")
	require.True(t, ok)
	require.Equal(t, "p1", payload)

	payload, _, ok = co.PopType("ping")
	require.True(t, ok)
	require.Equal(t, "p2", payload)

	_, _, ok = co.PopType("ping")
	require.False(t, ok)
}
