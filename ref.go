// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fn

import "unsafe"

// Ref is a non-owning, always-bound callable view: a target word, the
// invoke function, and a trampoline. It owns nothing, so it has no
// destroy, clone or move machinery; the caller guarantees the target
// outlives the Ref. Ref models a short-lived, guaranteed-valid view and is
// not reseatable: binding a different target means constructing a new Ref.
//
// The zero Ref is not valid. Calling it is a precondition violation,
// asserted only under the fndebug build tag.
type Ref[A, R any] struct {
	target unsafe.Pointer
	invoke any
	call   func(invoke any, target unsafe.Pointer, a A) R
}

// RefTo returns a Ref viewing *target, invoked through invoke.
// The target must be non-nil and must outlive the Ref.
func RefTo[T, A, R any](target *T, invoke func(*T, A) R) Ref[A, R] {
	return Ref[A, R]{
		target: unsafe.Pointer(target),
		invoke: invoke,
		call:   callTarget[T, A, R],
	}
}

// RefFunc returns a Ref viewing a plain func value. The func value's own
// word is stored as the target, not the address of a local holding it, so
// the Ref stays valid after the constructor returns. The fn must be
// non-nil.
func RefFunc[A, R any](fn func(A) R) Ref[A, R] {
	return Ref[A, R]{
		target: funcWord(fn),
		call:   callFuncWord[A, R],
	}
}

// Call invokes the referenced callable.
func (r Ref[A, R]) Call(a A) R {
	if debugChecks && r.target == nil {
		panic("fn: call through zero Ref")
	}
	return r.call(r.invoke, r.target, a)
}

// callTarget is the trampoline for object targets. A named generic
// function yields one static function value per instantiation; no closure
// is allocated.
func callTarget[T, A, R any](invoke any, target unsafe.Pointer, a A) R {
	return invoke.(func(*T, A) R)((*T)(target), a)
}

// funcWord extracts a func value's word. A func value is a single pointer,
// so the value itself is the referent.
func funcWord[A, R any](fn func(A) R) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&fn))
}

// callFuncWord is the trampoline for func-value targets: the target word
// is reinterpreted back into a func value and called.
func callFuncWord[A, R any](_ any, target unsafe.Pointer, a A) R {
	fn := *(*func(A) R)(unsafe.Pointer(&target))
	return fn(a)
}
