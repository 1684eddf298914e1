// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fn

// Func is an owning, move-only callable container with heap-fallback
// small-buffer storage. Payloads that fit two machine words and are
// relocatable live inline; anything else is boxed once on the heap and
// moves by handle transfer thereafter.
//
// The zero value is a valid empty container. Do not copy a non-empty Func
// with plain assignment; transfer with [Func.Move], [Func.Take] or
// [Func.Swap].
type Func[A, R any] struct {
	tab *table[A, R]
	inv any // func(*T, A) R; nil for empty and func-payload containers
	st  storage
}

// Empty returns an empty Func. Equivalent to the zero value, with the
// empty table already resolved.
func Empty[A, R any]() Func[A, R] {
	return Func[A, R]{tab: emptyTableFor[A, R]()}
}

// Bind constructs a Func holding payload, invoked through invoke.
// The invoke function is typically a method expression:
//
//	fn.Bind(Counter{}, (*Counter).Add)
func Bind[T, A, R any](payload T, invoke func(*T, A) R) Func[A, R] {
	tab := tableFor[T, A, R]()
	var f Func[A, R]
	place(&f.st, tab.mode, payload)
	f.tab = tab
	f.inv = invoke
	return f
}

// BindFunc constructs a Func holding a plain func value.
// A nil fn yields an empty container.
func BindFunc[A, R any](fn func(A) R) Func[A, R] {
	if fn == nil {
		return Empty[A, R]()
	}
	tab := funcTableFor[A, R]()
	var f Func[A, R]
	place(&f.st, tab.mode, fn)
	f.tab = tab
	return f
}

// Rebind replaces the payload of f in place. The new binding is resolved
// first, then the old payload is destroyed through its own table; the
// table pointer is updated last. Rebinding an inline payload performs no
// allocation.
func Rebind[T, A, R any](f *Func[A, R], payload T, invoke func(*T, A) R) {
	tab := tableFor[T, A, R]()
	f.table().destroy(&f.st)
	place(&f.st, tab.mode, payload)
	f.tab = tab
	f.inv = invoke
}

// RebindFunc replaces the payload of f with a plain func value.
// A nil fn leaves f empty.
func RebindFunc[A, R any](f *Func[A, R], fn func(A) R) {
	f.table().destroy(&f.st)
	f.inv = nil
	if fn == nil {
		f.tab = emptyTableFor[A, R]()
		return
	}
	tab := funcTableFor[A, R]()
	place(&f.st, tab.mode, fn)
	f.tab = tab
}

// table returns f's operation table, normalizing the zero value to the
// empty table. A constructed container never has a nil table.
func (f *Func[A, R]) table() *table[A, R] {
	if f.tab == nil {
		f.tab = emptyTableFor[A, R]()
	}
	return f.tab
}

// Call invokes the held payload. Panics with *BadCallError if f is empty.
func (f *Func[A, R]) Call(a A) R {
	return f.table().call(f.inv, &f.st, a)
}

// Bound reports whether f holds a payload.
func (f *Func[A, R]) Bound() bool {
	return f.tab != nil && !f.tab.empty
}

// Clear destroys the held payload, if any, and leaves f empty.
// This is both null-assignment and the end of the payload's lifetime:
// a [Disposer] payload is disposed here.
func (f *Func[A, R]) Clear() {
	f.table().destroy(&f.st)
	f.tab = emptyTableFor[A, R]()
	f.inv = nil
}

// Move transfers the payload into a new Func and leaves f empty.
// Resource ownership transfers with it; nothing is disposed.
func (f *Func[A, R]) Move() Func[A, R] {
	t := f.table()
	var d Func[A, R]
	t.move(&d.st, &f.st)
	d.tab = t
	d.inv = f.inv
	f.tab = emptyTableFor[A, R]()
	f.inv = nil
	return d
}

// Take is move-assignment: f's current payload is destroyed, src's payload
// is transferred in, and src is left empty. Take from itself is a no-op.
func (f *Func[A, R]) Take(src *Func[A, R]) {
	if f == src {
		return
	}
	f.table().destroy(&f.st)
	t := src.table()
	t.move(&f.st, &src.st)
	f.tab = t
	f.inv = src.inv
	src.tab = emptyTableFor[A, R]()
	src.inv = nil
}

// Swap exchanges the payloads of f and other through a transient storage
// slot: three moves and a table-pointer exchange. Neither side is ever
// destroyed, so swapping with an empty container and swapping back are
// both safe. Self-swap is a no-op.
func (f *Func[A, R]) Swap(other *Func[A, R]) {
	if f == other {
		return
	}
	ft, ot := f.table(), other.table()
	var tmp storage
	ft.move(&tmp, &f.st)
	ot.move(&f.st, &other.st)
	ft.move(&other.st, &tmp)
	f.tab, other.tab = ot, ft
	f.inv, other.inv = other.inv, f.inv
}
