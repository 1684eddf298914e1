// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fn_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/fn"
)

// TestConcurrentFirstBind races the very first bind of a payload type from
// many goroutines. Table construction must be idempotent: every container
// works regardless of which goroutine's table won the interning race.
func TestConcurrentFirstBind(t *testing.T) {
	type fresh struct{ n int }
	invoke := func(f *fresh, x int) int { return f.n + x }

	const goroutines = 64
	var wg sync.WaitGroup
	results := make([]int, goroutines)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		i := i
		go func() {
			defer wg.Done()
			f := fn.Bind(fresh{n: i}, invoke)
			results[i] = f.Call(1)
		}()
	}
	wg.Wait()

	for i, got := range results {
		if got != i+1 {
			t.Fatalf("goroutine %d: Call(1) = %d; want %d", i, got, i+1)
		}
	}
}

func TestConcurrentCalls(t *testing.T) {
	const goroutines = 32
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			f := fn.Bind(counter{}, (*counter).add)
			for n := 0; n < 100; n++ {
				f.Call(1)
			}
			if got := f.Call(0); got != 100 {
				t.Errorf("Call(0) = %d; want 100", got)
			}
		}()
	}
	wg.Wait()
}

// TestDistinctInvokes binds the same payload type through two different
// invoke functions; the containers must not share dispatch.
func TestDistinctInvokes(t *testing.T) {
	f := fn.Bind(counter{n: 10}, (*counter).add)
	g := fn.Bind(counter{n: 10}, (*counter).sub)
	if got := f.Call(3); got != 13 {
		t.Fatalf("add Call(3) = %d; want 13", got)
	}
	if got := g.Call(3); got != 7 {
		t.Fatalf("sub Call(3) = %d; want 7", got)
	}
}

// TestBindSiblingClosures binds one payload type through two closures
// built from the same func literal with different captures. The closures
// share a code body, so each container must carry its own invoke; neither
// may see the other's captured environment.
func TestBindSiblingClosures(t *testing.T) {
	mk := func(k int) func(*counter, int) int {
		return func(c *counter, x int) int { return k * x }
	}
	f := fn.Bind(counter{}, mk(1))
	g := fn.Bind(counter{}, mk(100))
	if got := f.Call(3); got != 3 {
		t.Fatalf("f.Call(3) = %d; want 3", got)
	}
	if got := g.Call(3); got != 300 {
		t.Fatalf("g.Call(3) = %d; want 300", got)
	}

	// Same shape on the copyable container, and across a clone.
	a := fn.BindCopy(counter{}, mk(2))
	b := fn.BindCopy(counter{}, mk(200))
	ac := a.Clone()
	if got := a.Call(3); got != 6 {
		t.Fatalf("a.Call(3) = %d; want 6", got)
	}
	if got := b.Call(3); got != 600 {
		t.Fatalf("b.Call(3) = %d; want 600", got)
	}
	if got := ac.Call(3); got != 6 {
		t.Fatalf("clone Call(3) = %d; want 6", got)
	}
}

func TestInplaceSiblingClosures(t *testing.T) {
	mk := func(k int) func(*counter, int) int {
		return func(c *counter, x int) int { return k * x }
	}
	f := fn.BindInplace[fn.Cap16](counter{}, mk(1))
	g := fn.BindInplace[fn.Cap16](counter{}, mk(100))
	if got := f.Call(3); got != 3 {
		t.Fatalf("f.Call(3) = %d; want 3", got)
	}
	if got := g.Call(3); got != 300 {
		t.Fatalf("g.Call(3) = %d; want 300", got)
	}
}

// TestSwapExchangesInvokes: two containers with one payload type but
// different invoke functions must exchange behavior along with storage.
func TestSwapExchangesInvokes(t *testing.T) {
	f := fn.Bind(counter{n: 10}, (*counter).add)
	g := fn.Bind(counter{n: 10}, (*counter).sub)
	f.Swap(&g)
	if got := f.Call(3); got != 7 {
		t.Fatalf("f.Call(3) = %d after Swap; want 7 (sub)", got)
	}
	if got := g.Call(3); got != 13 {
		t.Fatalf("g.Call(3) = %d after Swap; want 13 (add)", got)
	}
}

// TestDistinctSignaturesSamePayload binds one payload type under two
// signatures; the tables are keyed by both and must not collide.
func TestDistinctSignaturesSamePayload(t *testing.T) {
	f := fn.Bind(counter{n: 2}, (*counter).add)
	g := fn.Bind(counter{n: 2}, func(c *counter, _ fn.Unit) int { return c.n * 10 })
	if got := f.Call(1); got != 3 {
		t.Fatalf("Call(1) = %d; want 3", got)
	}
	if got := g.Call(fn.Unit{}); got != 20 {
		t.Fatalf("Call(Unit{}) = %d; want 20", got)
	}
}

func TestConcurrentInplaceFirstBind(t *testing.T) {
	type fresh struct{ n uint64 }
	invoke := func(f *fresh, x uint64) uint64 { return f.n * x }

	const goroutines = 64
	var wg sync.WaitGroup
	results := make([]uint64, goroutines)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		i := i
		go func() {
			defer wg.Done()
			f := fn.BindInplace[fn.Cap16](fresh{n: uint64(i)}, invoke)
			results[i] = f.Call(2)
		}()
	}
	wg.Wait()

	for i, got := range results {
		if got != uint64(i)*2 {
			t.Fatalf("goroutine %d: Call(2) = %d; want %d", i, got, i*2)
		}
	}
}
