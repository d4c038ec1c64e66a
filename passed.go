package coro

// passedKind selects which field of a passedValue is meaningful. The
// original spec requires a function pointer and a data pointer to be
// interconvertible through a tagged view rather than a cast, because not
// every target platform allows that cast; any already safely holds
// either in Go, but the explicit-selector discipline is kept anyway so
// writers and readers agree on which field is live, exactly as the
// original's "two-field view with explicit selector on write and read"
// specifies.
type passedKind uint8

const (
	passedNone passedKind = iota
	passedData
	passedFunc
)

// passedValue is the scratch slot's tagged contents: either an arbitrary
// data value or a coroutine entry-point function, never both.
type passedValue struct {
	kind passedKind
	data any
	fn   func(any) any
}

func dataValue(v any) passedValue {
	return passedValue{kind: passedData, data: v}
}

func funcValue(f func(any) any) passedValue {
	return passedValue{kind: passedFunc, fn: f}
}

// asData reads the data field; it panics if the slot does not hold data,
// since that indicates a bug in the runtime's own bookkeeping rather
// than anything a caller could trigger.
func (p passedValue) asData() any {
	if p.kind != passedData {
		panic("coro: passed value does not hold data")
	}
	return p.data
}

// asFunc reads the function field.
func (p passedValue) asFunc() func(any) any {
	if p.kind != passedFunc {
		panic("coro: passed value does not hold a function")
	}
	return p.fn
}
