// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fn

import "unsafe"

// Ptr is the nullable, reseatable sibling of [Ref]: the same non-owning
// target-plus-trampoline layout, but with a null state. The zero Ptr is
// null. Reseat by assigning a freshly constructed Ptr:
//
//	p = fn.PtrTo(&other, (*Counter).Add)
//
// Calling a null Ptr, or a Ptr whose target has been destroyed, is a
// documented precondition violation with no release-mode check; the
// fndebug build tag enables an assertion.
type Ptr[A, R any] struct {
	target unsafe.Pointer
	invoke any
	call   func(invoke any, target unsafe.Pointer, a A) R
}

// PtrTo returns a Ptr targeting *target, invoked through invoke.
// A nil target yields a null Ptr.
func PtrTo[T, A, R any](target *T, invoke func(*T, A) R) Ptr[A, R] {
	if target == nil {
		return Ptr[A, R]{}
	}
	return Ptr[A, R]{
		target: unsafe.Pointer(target),
		invoke: invoke,
		call:   callTarget[T, A, R],
	}
}

// PtrFunc returns a Ptr targeting a plain func value, storing the func
// value's own word as the target. A nil fn yields a null Ptr.
func PtrFunc[A, R any](fn func(A) R) Ptr[A, R] {
	if fn == nil {
		return Ptr[A, R]{}
	}
	return Ptr[A, R]{
		target: funcWord(fn),
		call:   callFuncWord[A, R],
	}
}

// Call invokes the targeted callable. Calling a null Ptr is a precondition
// violation.
func (p Ptr[A, R]) Call(a A) R {
	if debugChecks && p.target == nil {
		panic("fn: call through null Ptr")
	}
	return p.call(p.invoke, p.target, a)
}

// Bound reports whether p targets a callable.
func (p Ptr[A, R]) Bound() bool {
	return p.target != nil
}

// Clear resets p to the null state. The target is unaffected; nothing is
// owned.
func (p *Ptr[A, R]) Clear() {
	*p = Ptr[A, R]{}
}

// Swap exchanges the targets of p and other.
func (p *Ptr[A, R]) Swap(other *Ptr[A, R]) {
	*p, *other = *other, *p
}
