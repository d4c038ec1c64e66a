//go:build coro_id8

package coro

import "math"

// ID is a coroutine identity value, built with the coro_id8 tag.
type ID int8

// NotSet is the sentinel ID meaning "not set", equal to the minimum value
// representable at the configured width.
const NotSet ID = math.MinInt8
