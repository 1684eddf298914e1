// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fn

// CopyFunc is the copyable counterpart of [Func]: same heap-fallback
// small-buffer storage, plus duplication through [CopyFunc.Clone] and
// [CopyFunc.CopyFrom]. Duplication always produces an independent payload;
// a payload that implements [Cloner] controls how.
//
// The zero value is a valid empty container. Plain assignment of a
// non-empty CopyFunc aliases the payload and is a precondition violation;
// duplicate with Clone or CopyFrom instead.
type CopyFunc[A, R any] struct {
	tab *table[A, R]
	inv any
	st  storage
}

// EmptyCopy returns an empty CopyFunc.
func EmptyCopy[A, R any]() CopyFunc[A, R] {
	return CopyFunc[A, R]{tab: emptyTableFor[A, R]()}
}

// BindCopy constructs a CopyFunc holding payload, invoked through invoke.
func BindCopy[T, A, R any](payload T, invoke func(*T, A) R) CopyFunc[A, R] {
	tab := tableFor[T, A, R]()
	var c CopyFunc[A, R]
	place(&c.st, tab.mode, payload)
	c.tab = tab
	c.inv = invoke
	return c
}

// BindCopyFunc constructs a CopyFunc holding a plain func value.
// Cloning such a container copies the func value, which in Go shares the
// closure's captured state. A nil fn yields an empty container.
func BindCopyFunc[A, R any](fn func(A) R) CopyFunc[A, R] {
	if fn == nil {
		return EmptyCopy[A, R]()
	}
	tab := funcTableFor[A, R]()
	var c CopyFunc[A, R]
	place(&c.st, tab.mode, fn)
	c.tab = tab
	return c
}

// RebindCopy replaces the payload of c in place. The new binding is
// resolved first, then the old payload is destroyed; the table pointer is
// updated last.
func RebindCopy[T, A, R any](c *CopyFunc[A, R], payload T, invoke func(*T, A) R) {
	tab := tableFor[T, A, R]()
	c.table().destroy(&c.st)
	place(&c.st, tab.mode, payload)
	c.tab = tab
	c.inv = invoke
}

// RebindCopyFunc replaces the payload of c with a plain func value.
func RebindCopyFunc[A, R any](c *CopyFunc[A, R], fn func(A) R) {
	c.table().destroy(&c.st)
	c.inv = nil
	if fn == nil {
		c.tab = emptyTableFor[A, R]()
		return
	}
	tab := funcTableFor[A, R]()
	place(&c.st, tab.mode, fn)
	c.tab = tab
}

func (c *CopyFunc[A, R]) table() *table[A, R] {
	if c.tab == nil {
		c.tab = emptyTableFor[A, R]()
	}
	return c.tab
}

// Call invokes the held payload. Panics with *BadCallError if c is empty.
func (c *CopyFunc[A, R]) Call(a A) R {
	return c.table().call(c.inv, &c.st, a)
}

// Bound reports whether c holds a payload.
func (c *CopyFunc[A, R]) Bound() bool {
	return c.tab != nil && !c.tab.empty
}

// Clear destroys the held payload, if any, and leaves c empty.
func (c *CopyFunc[A, R]) Clear() {
	c.table().destroy(&c.st)
	c.tab = emptyTableFor[A, R]()
	c.inv = nil
}

// Clone returns a CopyFunc holding an independent copy of the payload.
// Cloning an empty container yields an empty container.
func (c *CopyFunc[A, R]) Clone() CopyFunc[A, R] {
	t := c.table()
	var d CopyFunc[A, R]
	t.clone(&d.st, &c.st)
	d.tab = t
	d.inv = c.inv
	return d
}

// CopyFrom is copy-assignment: c's current payload is destroyed and an
// independent copy of src's payload takes its place. src is untouched.
// CopyFrom from itself is a no-op.
func (c *CopyFunc[A, R]) CopyFrom(src *CopyFunc[A, R]) {
	if c == src {
		return
	}
	c.table().destroy(&c.st)
	t := src.table()
	t.clone(&c.st, &src.st)
	c.tab = t
	c.inv = src.inv
}

// Move transfers the payload into a new CopyFunc and leaves c empty.
func (c *CopyFunc[A, R]) Move() CopyFunc[A, R] {
	t := c.table()
	var d CopyFunc[A, R]
	t.move(&d.st, &c.st)
	d.tab = t
	d.inv = c.inv
	c.tab = emptyTableFor[A, R]()
	c.inv = nil
	return d
}

// Take is move-assignment from src, which is left empty.
func (c *CopyFunc[A, R]) Take(src *CopyFunc[A, R]) {
	if c == src {
		return
	}
	c.table().destroy(&c.st)
	t := src.table()
	t.move(&c.st, &src.st)
	c.tab = t
	c.inv = src.inv
	src.tab = emptyTableFor[A, R]()
	src.inv = nil
}

// Swap exchanges the payloads of c and other. Self-swap is a no-op.
func (c *CopyFunc[A, R]) Swap(other *CopyFunc[A, R]) {
	if c == other {
		return
	}
	ct, ot := c.table(), other.table()
	var tmp storage
	ct.move(&tmp, &c.st)
	ot.move(&c.st, &other.st)
	ct.move(&other.st, &tmp)
	c.tab, other.tab = ot, ct
	c.inv, other.inv = other.inv, c.inv
}
