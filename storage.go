// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fn

import (
	"reflect"
	"unsafe"
)

const wordSize = unsafe.Sizeof(uintptr(0))

// inlineCapacity is the small-buffer budget of the heap-fallback containers:
// two pointer widths, at pointer alignment.
const inlineCapacity = 2 * wordSize

// storage backs the heap-fallback containers. Go has no unions, so the two
// arms are separate fields: a payload lives either in the inline words or in
// the handle slot, never both. The inline words are uintptr-typed and
// invisible to the garbage collector, which is why only relocatable payloads
// may occupy them; the handle slot is an ordinary interface and keeps boxed
// payloads reachable.
type storage struct {
	inline [2]uintptr
	handle any
}

// storeMode selects how a payload occupies storage. Decided once per payload
// type when its operation table is built.
type storeMode uint8

const (
	// modeInline places a relocatable payload in the inline words.
	modeInline storeMode = iota
	// modeBoxed stores a *T handle to a heap-allocated payload.
	modeBoxed
	// modeDirect stores a pointer-shaped payload (a func value) in the
	// handle slot as-is, with no extra allocation.
	modeDirect
)

// storeInline reports whether T qualifies for the inline words:
//
//	size_of(T) <= inlineCapacity  AND  align_of(T) <= pointer alignment
//	AND relocatable(T)
//
// Relocatability stands in for nothrow-movability: a payload whose raw bytes
// can be copied to a new location with no one watching. In Go the hazard is
// not a throwing move constructor but the garbage collector, so the rule is
// "no pointers anywhere in T".
func storeInline[T any]() bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.Size() <= inlineCapacity &&
		uintptr(t.Align()) <= unsafe.Alignof(uintptr(0)) &&
		relocatable(t)
}

// relocatable reports whether t transitively contains no Go pointers.
// Strings, slices, maps, channels, funcs and interfaces all carry hidden
// pointers and disqualify a payload from raw-byte storage.
func relocatable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return relocatable(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !relocatable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// place constructs payload into s according to mode. The caller has already
// destroyed or zeroed s.
func place[T any](s *storage, mode storeMode, payload T) {
	switch mode {
	case modeInline:
		*(*T)(unsafe.Pointer(&s.inline)) = payload
	case modeBoxed:
		p := new(T)
		*p = payload
		s.handle = p
	case modeDirect:
		s.handle = payload
	}
}

// Sizing types for the fixed-capacity containers. Declared over uint64 so
// the buffer is machine-aligned; any relocatable payload that fits is
// placeable. Callers may declare their own sizing types instead.
type (
	Cap8  [1]uint64
	Cap16 [2]uint64
	Cap32 [4]uint64
	Cap64 [8]uint64
)
