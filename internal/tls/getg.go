//go:build (amd64 || arm64) && !coro_portable_tls

package tls

import "unsafe"

// getg returns the current goroutine's runtime *g, read directly off the
// per-goroutine TLS register by the architecture-specific assembly stub
// (getg_amd64.s / getg_arm64.s). This is the same trick the teacher's
// lib_runtime_linkage.go documents — "fetch the params *g used in
// goready() by using getg()" — backed by an assembly stub rather than a
// go:linkname, because runtime.getg is a compiler intrinsic and not
// itself a linknameable symbol. It never allocates, making it suitable
// for the hot path of every coroutine operation that needs to find its
// owning World.
func getg() unsafe.Pointer

// currentID returns a value stable for the lifetime of the calling
// goroutine and distinct across goroutines, at zero allocation cost —
// the per-host-thread identity the thread-local-storage key is keyed on.
func currentID() uintptr {
	return uintptr(getg())
}
