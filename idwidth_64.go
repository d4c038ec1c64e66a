//go:build !coro_id32 && !coro_id16 && !coro_id8

package coro

import "math"

// ID is a coroutine identity value. Its width is a compile-time choice
// (see idwidth_32.go / idwidth_16.go / idwidth_8.go, selected with the
// coro_id32 / coro_id16 / coro_id8 build tags); this file is the default,
// 64-bit build.
type ID int64

// NotSet is the sentinel ID meaning "not set", equal to the minimum value
// representable at the configured width.
const NotSet ID = math.MinInt64
