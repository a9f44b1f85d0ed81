package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes breaker transitions. It runs outside the breaker
// lock, so it may call back into the breaker.
type StateChangeFunc func(name string, from, to CircuitState)

type transition struct {
	from, to CircuitState
}

// CircuitBreaker guards one upstream dependency. It opens after a run of
// consecutive failures, admits up to halfOpenMaxReq trial calls once openTimeout
// has passed, and closes again when those calls succeed.
type CircuitBreaker struct {
	mu sync.Mutex

	name             string
	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int
	onStateChange    StateChangeFunc

	state               CircuitState
	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
	halfOpenSuccesses   int
	now                 func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	if openTimeout <= 0 {
		openTimeout = 15 * time.Second
	}
	if halfOpenMaxReq < 1 {
		halfOpenMaxReq = 1
	}

	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		openTimeout:      openTimeout,
		halfOpenMaxReq:   halfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// Name is the dependency label given in CircuitBreakerConfig.
func (b *CircuitBreaker) Name() string {
	return b.name
}

// Allow reports ErrCircuitOpen while the breaker rejects calls. A nil result
// must be followed by RecordSuccess or RecordFailure.
func (b *CircuitBreaker) Allow() error {
	return b.apply(func() (transition, error) {
		var change transition
		if b.state == CircuitStateOpen {
			if b.now().Sub(b.openedAt) < b.openTimeout {
				return change, ErrCircuitOpen
			}
			change = b.moveTo(CircuitStateHalfOpen)
		}

		if b.state == CircuitStateHalfOpen {
			if b.halfOpenInFlight >= b.halfOpenMaxReq {
				return change, ErrCircuitOpen
			}
			b.halfOpenInFlight++
		}
		return change, nil
	})
}

func (b *CircuitBreaker) RecordSuccess() {
	_ = b.apply(func() (transition, error) {
		switch b.state {
		case CircuitStateClosed:
			b.consecutiveFailures = 0
		case CircuitStateHalfOpen:
			b.releaseHalfOpenSlot()
			b.halfOpenSuccesses++
			if b.halfOpenSuccesses >= b.halfOpenMaxReq && b.halfOpenInFlight == 0 {
				return b.moveTo(CircuitStateClosed), nil
			}
		}
		return transition{}, nil
	})
}

func (b *CircuitBreaker) RecordFailure() {
	_ = b.apply(func() (transition, error) {
		switch b.state {
		case CircuitStateClosed:
			b.consecutiveFailures++
			if b.consecutiveFailures >= b.failureThreshold {
				return b.moveTo(CircuitStateOpen), nil
			}
		case CircuitStateHalfOpen:
			b.releaseHalfOpenSlot()
			return b.moveTo(CircuitStateOpen), nil
		case CircuitStateOpen:
			b.openedAt = b.now()
		}
		return transition{}, nil
	})
}

// State reports half-open for an open breaker whose timeout has passed, even
// before the next Allow moves it there.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) apply(fn func() (transition, error)) error {
	b.mu.Lock()
	change, err := fn()
	b.mu.Unlock()

	if change.from != change.to && b.onStateChange != nil {
		b.onStateChange(b.name, change.from, change.to)
	}
	return err
}

func (b *CircuitBreaker) releaseHalfOpenSlot() {
	if b.halfOpenInFlight > 0 {
		b.halfOpenInFlight--
	}
}

func (b *CircuitBreaker) moveTo(to CircuitState) transition {
	change := transition{from: b.state, to: to}
	b.state = to
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0

	switch to {
	case CircuitStateClosed:
		b.consecutiveFailures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	return change
}
