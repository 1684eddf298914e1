// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build fndebug

package fn

// debugChecks is enabled by the fndebug build tag for test builds that
// want calls through a zero [Ref] or null [Ptr] caught loudly.
const debugChecks = true
