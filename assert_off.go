// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !fndebug

package fn

// debugChecks gates precondition assertions on the zero-overhead call
// paths of [Ref] and [Ptr]. Off by default; the guards compile away.
const debugChecks = false
