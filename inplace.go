// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fn

import (
	"reflect"
	"strconv"
	"unsafe"
)

// inplaceTable is the operation table of the fixed-capacity containers.
// Storage is the container's own buffer, so the operations take a raw
// pointer to it rather than a storage struct. Cached per (payload type,
// signature) exactly like table; the invoke travels in the container.
type inplaceTable[A, R any] struct {
	empty   bool
	call    func(invoke any, p unsafe.Pointer, a A) R
	destroy func(unsafe.Pointer)
	clone   func(dst, src unsafe.Pointer)
	move    func(dst, src unsafe.Pointer)
}

// inplaceCache shares tableMu with the heap-fallback cache; the two are
// written a handful of times per process.
var inplaceCache = make(map[tableKey]any)

func cachedInplace(key tableKey) (any, bool) {
	tableMu.RLock()
	v, ok := inplaceCache[key]
	tableMu.RUnlock()
	return v, ok
}

func internInplace(key tableKey, tab any) any {
	tableMu.Lock()
	defer tableMu.Unlock()
	if v, ok := inplaceCache[key]; ok {
		return v
	}
	inplaceCache[key] = tab
	return tab
}

// inplaceTableFor returns the fixed-capacity operation table for T. The
// payload must be relocatable: there is no boxed fallback, and the buffer's
// raw words are invisible to the garbage collector. The relocatability
// panic fires before any table is assembled; a cache hit implies the type
// already passed.
func inplaceTableFor[T, A, R any]() *inplaceTable[A, R] {
	key := tableKey{payload: reflect.TypeOf((*T)(nil)).Elem(), sig: sigType[A, R]()}
	if v, ok := cachedInplace(key); ok {
		return v.(*inplaceTable[A, R])
	}
	if t := reflect.TypeOf((*T)(nil)).Elem(); !relocatable(t) {
		panic("fn: payload " + t.String() + " is not relocatable and cannot be stored inplace")
	}
	tab := &inplaceTable[A, R]{}
	tab.call = callInplace[T, A, R]
	if _, ok := any((*T)(nil)).(Disposer); ok {
		tab.destroy = destroyInplaceDispose[T]
	} else {
		tab.destroy = destroyInplace[T]
	}
	tab.clone = cloneInplace[T]
	tab.move = moveInplace[T]
	return internInplace(key, tab).(*inplaceTable[A, R])
}

// emptyInplaceTableFor returns the empty fixed-capacity table of (A, R).
func emptyInplaceTableFor[A, R any]() *inplaceTable[A, R] {
	key := tableKey{sig: sigType[A, R]()}
	if v, ok := cachedInplace(key); ok {
		return v.(*inplaceTable[A, R])
	}
	tab := &inplaceTable[A, R]{
		empty:   true,
		call:    emptyCallInplace[A, R],
		destroy: destroyNopPtr,
		clone:   cloneNopPtr,
		move:    moveNopPtr,
	}
	return internInplace(key, tab).(*inplaceTable[A, R])
}

// checkCapacity enforces the fixed-capacity binding contract: the payload
// must fit the sizing type S in both size and alignment. Violations are
// programmer errors and panic before any state is mutated.
func checkCapacity[S, T any]() {
	st := reflect.TypeOf((*S)(nil)).Elem()
	tt := reflect.TypeOf((*T)(nil)).Elem()
	if tt.Size() > st.Size() {
		panic("fn: payload " + tt.String() + " (" + strconv.Itoa(int(tt.Size())) +
			" bytes) exceeds inplace capacity " + strconv.Itoa(int(st.Size())))
	}
	if tt.Align() > st.Align() {
		panic("fn: payload " + tt.String() + " alignment " + strconv.Itoa(tt.Align()) +
			" exceeds sizing type " + st.String() + " alignment " + strconv.Itoa(st.Align()))
	}
}

func callInplace[T, A, R any](invoke any, p unsafe.Pointer, a A) R {
	return invoke.(func(*T, A) R)((*T)(p), a)
}

func emptyCallInplace[A, R any](any, unsafe.Pointer, A) R {
	panic(new(BadCallError))
}

func destroyInplace[T any](p unsafe.Pointer) {
	var zero T
	*(*T)(p) = zero
}

func destroyInplaceDispose[T any](p unsafe.Pointer) {
	any((*T)(p)).(Disposer).Dispose()
	var zero T
	*(*T)(p) = zero
}

func cloneInplace[T any](dst, src unsafe.Pointer) {
	sp := (*T)(src)
	if c, ok := any(sp).(Cloner[T]); ok {
		*(*T)(dst) = c.Clone()
		return
	}
	*(*T)(dst) = *sp
}

func moveInplace[T any](dst, src unsafe.Pointer) {
	*(*T)(dst) = *(*T)(src)
	var zero T
	*(*T)(src) = zero
}

func destroyNopPtr(unsafe.Pointer) {}

func cloneNopPtr(unsafe.Pointer, unsafe.Pointer) {}

func moveNopPtr(unsafe.Pointer, unsafe.Pointer) {}

// Inplace is an owning, move-only callable container whose payload lives in
// a caller-sized buffer S with no heap fallback: a payload that does not
// satisfy the capacity contract is rejected at bind time, and a bound
// container performs zero heap activity for its whole lifetime.
//
// The zero value is a valid empty container. Do not copy a non-empty
// Inplace with plain assignment; transfer with Move, Take or Swap.
type Inplace[S, A, R any] struct {
	tab *inplaceTable[A, R]
	inv any
	buf S
}

// EmptyInplace returns an empty Inplace.
func EmptyInplace[S, A, R any]() Inplace[S, A, R] {
	return Inplace[S, A, R]{tab: emptyInplaceTableFor[A, R]()}
}

// BindInplace constructs an Inplace holding payload, invoked through
// invoke. The sizing type is given explicitly and the rest inferred:
//
//	fn.BindInplace[fn.Cap16](Counter{}, (*Counter).Add)
//
// Panics if the payload exceeds the capacity or alignment of S, or is not
// relocatable.
func BindInplace[S, T, A, R any](payload T, invoke func(*T, A) R) Inplace[S, A, R] {
	checkCapacity[S, T]()
	tab := inplaceTableFor[T, A, R]()
	var f Inplace[S, A, R]
	*(*T)(unsafe.Pointer(&f.buf)) = payload
	f.tab = tab
	f.inv = invoke
	return f
}

// RebindInplace replaces the payload of f in place. Every bind-time
// contract is checked before the current payload is touched: a rejected
// rebind panics with f intact. Performs no allocation.
func RebindInplace[S, T, A, R any](f *Inplace[S, A, R], payload T, invoke func(*T, A) R) {
	checkCapacity[S, T]()
	tab := inplaceTableFor[T, A, R]()
	f.table().destroy(f.ptr())
	*(*T)(unsafe.Pointer(&f.buf)) = payload
	f.tab = tab
	f.inv = invoke
}

func (f *Inplace[S, A, R]) ptr() unsafe.Pointer {
	return unsafe.Pointer(&f.buf)
}

func (f *Inplace[S, A, R]) table() *inplaceTable[A, R] {
	if f.tab == nil {
		f.tab = emptyInplaceTableFor[A, R]()
	}
	return f.tab
}

// Call invokes the held payload. Panics with *BadCallError if f is empty.
func (f *Inplace[S, A, R]) Call(a A) R {
	return f.table().call(f.inv, f.ptr(), a)
}

// Bound reports whether f holds a payload.
func (f *Inplace[S, A, R]) Bound() bool {
	return f.tab != nil && !f.tab.empty
}

// Clear destroys the held payload, if any, and leaves f empty.
func (f *Inplace[S, A, R]) Clear() {
	f.table().destroy(f.ptr())
	f.tab = emptyInplaceTableFor[A, R]()
	f.inv = nil
}

// Move transfers the payload into a new Inplace and leaves f empty.
func (f *Inplace[S, A, R]) Move() Inplace[S, A, R] {
	t := f.table()
	var d Inplace[S, A, R]
	t.move(unsafe.Pointer(&d.buf), f.ptr())
	d.tab = t
	d.inv = f.inv
	f.tab = emptyInplaceTableFor[A, R]()
	f.inv = nil
	return d
}

// Take is move-assignment from src, which is left empty.
func (f *Inplace[S, A, R]) Take(src *Inplace[S, A, R]) {
	if f == src {
		return
	}
	f.table().destroy(f.ptr())
	t := src.table()
	t.move(f.ptr(), src.ptr())
	f.tab = t
	f.inv = src.inv
	src.tab = emptyInplaceTableFor[A, R]()
	src.inv = nil
}

// Swap exchanges the payloads of f and other through a transient buffer.
// Self-swap is a no-op.
func (f *Inplace[S, A, R]) Swap(other *Inplace[S, A, R]) {
	if f == other {
		return
	}
	ft, ot := f.table(), other.table()
	var tmp S
	ft.move(unsafe.Pointer(&tmp), f.ptr())
	ot.move(f.ptr(), other.ptr())
	ft.move(other.ptr(), unsafe.Pointer(&tmp))
	f.tab, other.tab = ot, ft
	f.inv, other.inv = other.inv, f.inv
}
