// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fn provides type-erased callable containers in Go.
//
// A container holds "any invocable matching a fixed call signature" behind a
// uniform interface. The signature is the type-parameter pair (A, R), read as
// func(A) R; multi-parameter signatures pass a [Pair] (or any struct) through
// the single argument position, and niladic or void positions use [Unit].
//
// A callable is bound in one of two forms:
//
//   - a payload value of any type T plus an invoke function func(*T, A) R,
//     typically a method expression such as (*Counter).Add
//   - a plain func(A) R value, via the constructors suffixed Func
//
// After construction the container carries no trace of T: every operation
// (call, destroy, clone, move) dispatches through a per-type operation table
// built once on first bind and cached for the life of the process.
//
// # Container Variants
//
// Six variants are assembled from one storage-and-dispatch core, differing in
// ownership, storage discipline and copy policy:
//
//   - [Ref]: non-owning, always bound. A view over a callable owned elsewhere.
//   - [Ptr]: non-owning, nullable and reseatable.
//   - [Func]: owning, move-only, small-buffer storage with heap fallback.
//   - [CopyFunc]: owning, copyable, small-buffer storage with heap fallback.
//   - [Inplace]: owning, move-only, caller-sized storage, never allocates.
//   - [InplaceCopy]: owning, copyable, caller-sized storage, never allocates.
//
// # Storage Policy
//
// Heap-fallback containers ([Func], [CopyFunc]) store a payload inline, inside
// the container's own footprint, when it fits two machine words and is
// relocatable; otherwise the payload is boxed on the heap and only the handle
// is stored. Relocatable means the payload type transitively contains no Go
// pointers, so moving it by plain copy cannot hide a reference from the
// garbage collector. Plain func(A) R payloads are pointer-shaped and are
// stored directly in the handle slot without allocation.
//
// Fixed-capacity containers ([Inplace], [InplaceCopy]) take a sizing type
// parameter S ([Cap8], [Cap16], [Cap32], [Cap64], or any caller-declared
// type) and never fall back to the heap: binding a payload that is oversized,
// over-aligned, or not relocatable panics at bind time with a descriptive
// message. A bound fixed-capacity container performs zero heap activity for
// its whole lifetime.
//
// # Value Semantics
//
// Go has no destructors and no deleted assignment operators, so ownership is
// explicit:
//
//   - Clear destroys the held payload and resets the container to empty
//   - Move/Take transfer the payload; the source is left empty
//   - Swap exchanges two payloads through a transient storage slot
//   - Clone/CopyFrom (copyable variants only) produce an independent payload
//
// The zero value of every owning variant is a valid empty container. Copying
// a non-empty owning container with plain assignment aliases the payload and
// is a precondition violation; transfer with Move, Take, or Clone instead.
//
// Payloads that hold external resources implement [Disposer]; Dispose runs
// exactly once when the payload is destroyed, however many times the
// container was moved or swapped beforehand. Payloads that need deep copies
// in copyable containers implement [Cloner].
//
// # Construction
//
//   - [Bind], [BindFunc], [Empty], [Rebind], [RebindFunc]: [Func]
//   - [BindCopy], [BindCopyFunc], [EmptyCopy], [RebindCopy], [RebindCopyFunc]: [CopyFunc]
//   - [BindInplace], [EmptyInplace], [RebindInplace]: [Inplace]
//   - [BindInplaceCopy], [EmptyInplaceCopy], [RebindInplaceCopy]: [InplaceCopy]
//   - [RefTo], [RefFunc]: [Ref]
//   - [PtrTo], [PtrFunc]: [Ptr]
//
// Rebind replaces the payload of an existing container in place: the old
// payload is destroyed through its table before the new one is constructed.
// For inline and fixed-capacity payloads a rebind performs no allocation.
//
// # Errors
//
// Calling an empty owning container panics with a *[BadCallError]. Bind-time
// contract violations of the fixed-capacity variants panic with an "fn:"
// prefixed message naming the payload type and the violated limit. Calling a
// null [Ptr] or a zero [Ref] is a documented precondition violation with no
// release-mode check; build with the fndebug tag to enable assertions on
// these zero-overhead paths.
//
// # Concurrency
//
// Containers are ordinary values with no internal synchronization. Concurrent
// calls through one container are as safe as the payload's own invoke.
// Concurrent mutation of one container must be externally synchronized.
// First-time binding of a payload type builds its operation table under a
// process-wide cache that is safe for concurrent first-use.
//
// # Example
//
//	type Counter struct{ n int }
//
//	func (c *Counter) Add(x int) int { c.n += x; return c.n }
//
//	f := fn.Bind(Counter{}, (*Counter).Add)
//	f.Call(2) // 2
//	f.Call(3) // 5
//
//	g := f.Move() // f is now empty; g continues from 5
//	g.Call(1)     // 6
package fn
