package replica

import (
	"context"
	"sync"
)

// FutureState is the settlement state of a Future.
type FutureState uint8

// Future states.
const (
	Pending FutureState = iota
	Fulfilled
	Rejected
)

func (s FutureState) String() string {
	switch s {
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Future is a value that settles, at some later point, to a success payload
// or a failure reason. Handlers registered with Then never run inline: they
// are dispatched on a goroutine once the future settles.
type Future struct {
	Attributes

	mu       sync.Mutex
	state    FutureState
	value    any
	handlers []futureHandler
	done     chan struct{}
}

type futureHandler struct {
	onFulfilled func(any)
	onRejected  func(any)
}

// NewFuture creates a pending future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved creates a future already fulfilled with v.
func Resolved(v any) *Future {
	f := NewFuture()
	f.Resolve(v)
	return f
}

// RejectedWith creates a future already rejected with reason.
func RejectedWith(reason any) *Future {
	f := NewFuture()
	f.Reject(reason)
	return f
}

// Resolve fulfills the future with v. Only the first settlement counts;
// later calls return false.
func (f *Future) Resolve(v any) bool {
	return f.settle(Fulfilled, v)
}

// Reject fails the future with reason. Only the first settlement counts;
// later calls return false.
func (f *Future) Reject(reason any) bool {
	return f.settle(Rejected, reason)
}

func (f *Future) settle(state FutureState, v any) bool {
	f.mu.Lock()
	if f.state != Pending {
		f.mu.Unlock()
		return false
	}
	f.state = state
	f.value = v
	handlers := f.handlers
	f.handlers = nil
	close(f.done)
	f.mu.Unlock()

	if len(handlers) > 0 {
		go func() {
			for _, h := range handlers {
				h.run(state, v)
			}
		}()
	}
	return true
}

func (h futureHandler) run(state FutureState, v any) {
	switch state {
	case Fulfilled:
		if h.onFulfilled != nil {
			h.onFulfilled(v)
		}
	case Rejected:
		if h.onRejected != nil {
			h.onRejected(v)
		}
	}
}

// Then registers completion handlers. Either may be nil.
func (f *Future) Then(onFulfilled, onRejected func(any)) {
	h := futureHandler{onFulfilled: onFulfilled, onRejected: onRejected}

	f.mu.Lock()
	if f.state == Pending {
		f.handlers = append(f.handlers, h)
		f.mu.Unlock()
		return
	}
	state, v := f.state, f.value
	f.mu.Unlock()

	go h.run(state, v)
}

// State returns the current settlement state.
func (f *Future) State() FutureState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Done returns a channel closed once the future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx ends. A rejection is
// returned as the reason itself when it is an error, otherwise wrapped in
// a RejectionError.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	f.mu.Lock()
	state, v := f.state, f.value
	f.mu.Unlock()

	if state == Rejected {
		if err, ok := v.(error); ok {
			return nil, err
		}
		return nil, &RejectionError{Reason: v}
	}
	return v, nil
}
