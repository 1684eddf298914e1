// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fn

// The call signature of every container is the type-parameter pair (A, R),
// read as func(A) R. Arity is not abstracted: signatures with several
// parameters pass a struct (such as Pair) through the argument position.

// Unit is the argument or result type for positions that carry no value.
type Unit = struct{}

// Pair holds two values. Use it to pass two-parameter signatures through
// the single argument position.
type Pair[A, B any] struct {
	Fst A
	Snd B
}

// Disposer is implemented by payloads that hold external resources.
// Owning containers call Dispose exactly once when the payload is
// destroyed: on Clear, on rebind, and on the overwritten side of Take and
// CopyFrom. Moves and swaps transfer ownership without disposing.
//
// Dispose is resolved against the payload's pointer method set, so value
// and pointer receivers both qualify.
type Disposer interface {
	Dispose()
}

// Cloner customizes payload duplication in the copyable containers.
// Payloads that do not implement it are duplicated by value copy, which
// shares any referenced state the payload points at.
type Cloner[T any] interface {
	Clone() T
}

// BadCallError is the panic value raised when an empty owning container
// is invoked.
type BadCallError struct{}

func (*BadCallError) Error() string { return "fn: container invoked while empty" }
