// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fn

import (
	"reflect"
	"sync"
	"unsafe"
)

// table is the operation table of the heap-fallback containers: one
// instance per (payload type, signature) pair, built lazily on first bind,
// cached for the remainder of the process and never mutated. The invoke
// function is not part of the table: it travels in the container, so two
// binds of one payload type through different invoke functions, including
// sibling closures sharing one code body with different captures, share a
// table without sharing behavior. Containers keep a table pointer, the
// invoke, and storage; every operation after construction dispatches
// through the table, so the container itself carries no trace of the
// payload type.
//
// A distinguished empty table exists per signature. Its call panics with
// *BadCallError and its remaining operations are no-ops, which keeps the
// destroy, move and swap paths free of emptiness branches.
type table[A, R any] struct {
	mode    storeMode
	empty   bool
	call    func(invoke any, s *storage, a A) R
	destroy func(*storage)
	clone   func(dst, src *storage)
	move    func(dst, src *storage)
}

// tableKey identifies one operation table. A nil payload type marks the
// empty table of a signature. direct marks the table of plain func
// payloads, which would otherwise collide with a payload whose type is the
// signature's own func type.
type tableKey struct {
	payload reflect.Type
	sig     reflect.Type
	direct  bool
}

// The process-wide table cache. Reads vastly outnumber writes (one write
// per distinct payload/signature pair in the program's lifetime), hence
// the RWMutex. Construction races are resolved by adoption: the loser of a
// race discards its table and takes the cached one, so building is
// idempotent.
var (
	tableMu    sync.RWMutex
	tableCache = make(map[tableKey]any)
)

func cachedTable(key tableKey) (any, bool) {
	tableMu.RLock()
	v, ok := tableCache[key]
	tableMu.RUnlock()
	return v, ok
}

func internTable(key tableKey, tab any) any {
	tableMu.Lock()
	defer tableMu.Unlock()
	if v, ok := tableCache[key]; ok {
		return v
	}
	tableCache[key] = tab
	return tab
}

func sigType[A, R any]() reflect.Type {
	return reflect.TypeOf((*func(A) R)(nil)).Elem()
}

// tableFor returns the operation table for payload type T under the
// signature (A, R), building and caching it on first use.
func tableFor[T, A, R any]() *table[A, R] {
	key := tableKey{payload: reflect.TypeOf((*T)(nil)).Elem(), sig: sigType[A, R]()}
	if v, ok := cachedTable(key); ok {
		return v.(*table[A, R])
	}
	tab := &table[A, R]{}
	if storeInline[T]() {
		tab.mode = modeInline
		tab.call = callInline[T, A, R]
		tab.destroy = destroyInlineFor[T]()
		tab.clone = cloneInline[T]
		tab.move = moveInline
	} else {
		tab.mode = modeBoxed
		tab.call = callBoxed[T, A, R]
		tab.destroy = destroyBoxed
		tab.clone = cloneBoxed[T]
		tab.move = moveHandle
	}
	return internTable(key, tab).(*table[A, R])
}

// funcTableFor returns the table for plain func(A) R payloads. The func
// value is pointer-shaped and lives directly in the handle slot; no invoke
// indirection and no box are needed.
func funcTableFor[A, R any]() *table[A, R] {
	key := tableKey{sig: sigType[A, R](), direct: true}
	if v, ok := cachedTable(key); ok {
		return v.(*table[A, R])
	}
	tab := &table[A, R]{
		mode:    modeDirect,
		call:    callFuncDirect[A, R],
		destroy: destroyShallow,
		clone:   cloneHandle,
		move:    moveHandle,
	}
	return internTable(key, tab).(*table[A, R])
}

// emptyTableFor returns the empty table of the signature (A, R).
func emptyTableFor[A, R any]() *table[A, R] {
	key := tableKey{sig: sigType[A, R]()}
	if v, ok := cachedTable(key); ok {
		return v.(*table[A, R])
	}
	tab := &table[A, R]{
		empty:   true,
		call:    emptyCall[A, R],
		destroy: destroyNop,
		clone:   cloneNop,
		move:    moveNop,
	}
	return internTable(key, tab).(*table[A, R])
}

// Call operations. The invoke travels in from the container; the table
// contributes only the typed assertion and storage access. Named generic
// functions produce static function values per instantiation, avoiding the
// heap allocation that anonymous closures incur.

func callInline[T, A, R any](invoke any, s *storage, a A) R {
	return invoke.(func(*T, A) R)((*T)(unsafe.Pointer(&s.inline)), a)
}

func callBoxed[T, A, R any](invoke any, s *storage, a A) R {
	return invoke.(func(*T, A) R)(s.handle.(*T), a)
}

func callFuncDirect[A, R any](_ any, s *storage, a A) R {
	return s.handle.(func(A) R)(a)
}

func emptyCall[A, R any](any, *storage, A) R {
	panic(new(BadCallError))
}

// Destroy operations. Destruction runs Dispose when the payload's pointer
// method set has one, then zeroes the storage so the moved-from or cleared
// container holds no stale references.

// destroyInlineFor picks the inline destroy operation for T. The Disposer
// probe runs once here rather than on every destroy.
func destroyInlineFor[T any]() func(*storage) {
	if _, ok := any((*T)(nil)).(Disposer); ok {
		return destroyInlineDispose[T]
	}
	return destroyShallow
}

func destroyInlineDispose[T any](s *storage) {
	any((*T)(unsafe.Pointer(&s.inline))).(Disposer).Dispose()
	*s = storage{}
}

func destroyBoxed(s *storage) {
	if d, ok := s.handle.(Disposer); ok {
		d.Dispose()
	}
	*s = storage{}
}

func destroyShallow(s *storage) {
	*s = storage{}
}

func destroyNop(*storage) {}

// Clone operations, used by the copyable containers only. A payload that
// implements Cloner controls its own duplication; anything else is copied
// by value.

func cloneInline[T any](dst, src *storage) {
	sp := (*T)(unsafe.Pointer(&src.inline))
	if c, ok := any(sp).(Cloner[T]); ok {
		*(*T)(unsafe.Pointer(&dst.inline)) = c.Clone()
		return
	}
	dst.inline = src.inline
}

func cloneBoxed[T any](dst, src *storage) {
	sp := src.handle.(*T)
	p := new(T)
	if c, ok := any(sp).(Cloner[T]); ok {
		*p = c.Clone()
	} else {
		*p = *sp
	}
	dst.handle = p
}

// cloneHandle duplicates a direct func payload. Func values are references
// in Go; copying the value is copying the callable.
func cloneHandle(dst, src *storage) {
	dst.handle = src.handle
}

func cloneNop(*storage, *storage) {}

// Move operations. Boxed and direct payloads move by handle transfer, which
// is why they never need a relocatability proof; inline payloads move by
// word copy, which their table admission already proved safe. The source is
// zeroed, never left aliasing the destination.

func moveInline(dst, src *storage) {
	dst.inline = src.inline
	*src = storage{}
}

func moveHandle(dst, src *storage) {
	dst.handle = src.handle
	*src = storage{}
}

func moveNop(*storage, *storage) {}
