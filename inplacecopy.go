// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fn

import "unsafe"

// InplaceCopy is the copyable counterpart of [Inplace]: caller-sized
// storage with no heap fallback, plus duplication through
// [InplaceCopy.Clone] and [InplaceCopy.CopyFrom].
//
// The zero value is a valid empty container. Plain assignment of a
// non-empty InplaceCopy duplicates raw payload bytes without going through
// the payload's [Cloner]; duplicate with Clone or CopyFrom instead.
type InplaceCopy[S, A, R any] struct {
	tab *inplaceTable[A, R]
	inv any
	buf S
}

// EmptyInplaceCopy returns an empty InplaceCopy.
func EmptyInplaceCopy[S, A, R any]() InplaceCopy[S, A, R] {
	return InplaceCopy[S, A, R]{tab: emptyInplaceTableFor[A, R]()}
}

// BindInplaceCopy constructs an InplaceCopy holding payload, invoked
// through invoke. Panics if the payload exceeds the capacity or alignment
// of S, or is not relocatable.
func BindInplaceCopy[S, T, A, R any](payload T, invoke func(*T, A) R) InplaceCopy[S, A, R] {
	checkCapacity[S, T]()
	tab := inplaceTableFor[T, A, R]()
	var c InplaceCopy[S, A, R]
	*(*T)(unsafe.Pointer(&c.buf)) = payload
	c.tab = tab
	c.inv = invoke
	return c
}

// RebindInplaceCopy replaces the payload of c in place. Every bind-time
// contract is checked before the current payload is touched: a rejected
// rebind panics with c intact. Performs no allocation.
func RebindInplaceCopy[S, T, A, R any](c *InplaceCopy[S, A, R], payload T, invoke func(*T, A) R) {
	checkCapacity[S, T]()
	tab := inplaceTableFor[T, A, R]()
	c.table().destroy(c.ptr())
	*(*T)(unsafe.Pointer(&c.buf)) = payload
	c.tab = tab
	c.inv = invoke
}

func (c *InplaceCopy[S, A, R]) ptr() unsafe.Pointer {
	return unsafe.Pointer(&c.buf)
}

func (c *InplaceCopy[S, A, R]) table() *inplaceTable[A, R] {
	if c.tab == nil {
		c.tab = emptyInplaceTableFor[A, R]()
	}
	return c.tab
}

// Call invokes the held payload. Panics with *BadCallError if c is empty.
func (c *InplaceCopy[S, A, R]) Call(a A) R {
	return c.table().call(c.inv, c.ptr(), a)
}

// Bound reports whether c holds a payload.
func (c *InplaceCopy[S, A, R]) Bound() bool {
	return c.tab != nil && !c.tab.empty
}

// Clear destroys the held payload, if any, and leaves c empty.
func (c *InplaceCopy[S, A, R]) Clear() {
	c.table().destroy(c.ptr())
	c.tab = emptyInplaceTableFor[A, R]()
	c.inv = nil
}

// Clone returns an InplaceCopy holding an independent copy of the payload.
func (c *InplaceCopy[S, A, R]) Clone() InplaceCopy[S, A, R] {
	t := c.table()
	var d InplaceCopy[S, A, R]
	t.clone(unsafe.Pointer(&d.buf), c.ptr())
	d.tab = t
	d.inv = c.inv
	return d
}

// CopyFrom is copy-assignment: c's current payload is destroyed and an
// independent copy of src's payload takes its place. CopyFrom from itself
// is a no-op.
func (c *InplaceCopy[S, A, R]) CopyFrom(src *InplaceCopy[S, A, R]) {
	if c == src {
		return
	}
	c.table().destroy(c.ptr())
	t := src.table()
	t.clone(c.ptr(), src.ptr())
	c.tab = t
	c.inv = src.inv
}

// Move transfers the payload into a new InplaceCopy and leaves c empty.
func (c *InplaceCopy[S, A, R]) Move() InplaceCopy[S, A, R] {
	t := c.table()
	var d InplaceCopy[S, A, R]
	t.move(unsafe.Pointer(&d.buf), c.ptr())
	d.tab = t
	d.inv = c.inv
	c.tab = emptyInplaceTableFor[A, R]()
	c.inv = nil
	return d
}

// Take is move-assignment from src, which is left empty.
func (c *InplaceCopy[S, A, R]) Take(src *InplaceCopy[S, A, R]) {
	if c == src {
		return
	}
	c.table().destroy(c.ptr())
	t := src.table()
	t.move(c.ptr(), src.ptr())
	c.tab = t
	c.inv = src.inv
	src.tab = emptyInplaceTableFor[A, R]()
	src.inv = nil
}

// Swap exchanges the payloads of c and other through a transient buffer.
// Self-swap is a no-op.
func (c *InplaceCopy[S, A, R]) Swap(other *InplaceCopy[S, A, R]) {
	if c == other {
		return
	}
	ct, ot := c.table(), other.table()
	var tmp S
	ct.move(unsafe.Pointer(&tmp), c.ptr())
	ot.move(c.ptr(), other.ptr())
	ct.move(other.ptr(), unsafe.Pointer(&tmp))
	c.tab, other.tab = ot, ct
	c.inv, other.inv = other.inv, c.inv
}
