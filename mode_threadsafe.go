//go:build !coro_singlecore

package coro

// singleCore selects between the two compile-time scheduling models the
// original spec requires exactly one of: ThreadSafe (default, this
// file) keeps one World per logical host thread, looked up through the
// tls package. Build with -tags coro_singlecore for the SingleCore
// alternative in mode_singlecore.go.
const singleCore = false
