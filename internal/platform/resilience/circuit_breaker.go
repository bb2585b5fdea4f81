package resilience

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrCircuitOpen is returned when the breaker rejects a request without
// attempting the upstream call.
var ErrCircuitOpen = errors.New("resilience: circuit open")

type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker is a consecutive-failure breaker. It is safe for
// concurrent use. A zero FailureThreshold disables the breaker and
// Allow always succeeds.
type CircuitBreaker struct {
	cfg BreakerConfig

	mu         sync.Mutex
	state      BreakerState
	failures   int
	openedAt   time.Time
	halfOpenIn int
	now        func() time.Time
}

func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg: cfg.withDefaults(),
		now: time.Now,
	}
}

// Allow reports whether a request may proceed. Callers must pair a
// successful Allow with exactly one RecordSuccess or RecordFailure.
func (b *CircuitBreaker) Allow() error {
	if b.cfg.FailureThreshold <= 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.toHalfOpen()
		fallthrough
	case StateHalfOpen:
		if b.halfOpenIn >= b.cfg.HalfOpenMax {
			return ErrCircuitOpen
		}
		b.halfOpenIn++
		return nil
	default:
		return nil
	}
}

func (b *CircuitBreaker) RecordSuccess() {
	if b.cfg.FailureThreshold <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.toClosed()
	}
}

func (b *CircuitBreaker) RecordFailure() {
	if b.cfg.FailureThreshold <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.toOpen()
		}
	case StateHalfOpen:
		b.toOpen()
	}
}

// State returns the current state, transitioning open to half-open when
// the open timeout has elapsed.
func (b *CircuitBreaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		b.toHalfOpen()
	}
	return b.state
}

func (b *CircuitBreaker) toClosed() {
	b.state = StateClosed
	b.failures = 0
	b.halfOpenIn = 0
}

func (b *CircuitBreaker) toOpen() {
	b.state = StateOpen
	b.openedAt = b.now()
	b.halfOpenIn = 0
}

func (b *CircuitBreaker) toHalfOpen() {
	b.state = StateHalfOpen
	b.halfOpenIn = 0
}
