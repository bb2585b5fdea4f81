package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int32

	gate := make(chan struct{})
	fn := func() (any, error) {
		calls.Add(1)
		<-gate
		return "payload", nil
	}

	const workers = 20
	results := make([]any, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err, _ := g.Do("odds:2026-09-01", fn)
			if err != nil {
				t.Errorf("Do() error = %v", err)
			}
			results[i] = v
		}(i)
	}

	close(gate)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("fn executed %d times, want 1", got)
	}
	for i, v := range results {
		if v != "payload" {
			t.Fatalf("results[%d] = %v, want payload", i, v)
		}
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int32

	fn := func() (any, error) {
		calls.Add(1)
		return nil, nil
	}

	if _, _, shared := g.Do("a", fn); shared {
		t.Fatalf("first call reported shared = true")
	}
	if _, _, shared := g.Do("b", fn); shared {
		t.Fatalf("distinct key reported shared = true")
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("fn executed %d times, want 2", got)
	}
}
