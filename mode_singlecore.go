//go:build coro_singlecore

package coro

// singleCore selects the SingleCore scheduling model: one process-global
// World, no thread-local lookup at all. Appropriate for a build that is
// known to only ever run coroutines from one logical host thread.
const singleCore = true
