package view

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// State is a snapshot of a Loader
type State[T any] struct {
	Value      T
	Loading    bool
	Err        error
	Generation uint64
}

// Loader runs fetches asynchronously and keeps only the result of the most
// recently started one.
type Loader[T any] struct {
	gate   Gate
	logger zerolog.Logger

	mu       sync.RWMutex
	state    State[T]
	onChange func(State[T])

	wg sync.WaitGroup
}

// NewLoader creates an empty loader
func NewLoader[T any](logger zerolog.Logger) *Loader[T] {
	return &Loader[T]{logger: logger}
}

// OnChange registers fn to receive every committed state, in commit order.
// fn must not call back into the loader.
func (l *Loader[T]) OnChange(fn func(State[T])) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// Load starts fetch under a fresh ticket, superseding any request still in
// flight. The state holds pending until fetch returns. Load returns the
// generation assigned to this request.
func (l *Loader[T]) Load(ctx context.Context, pending T, fetch func(context.Context) (T, error)) uint64 {
	if l.gate.Closed() {
		return l.gate.Latest()
	}

	ticket, reqCtx := l.gate.Begin(ctx)
	l.gate.Commit(ticket, func() {
		l.update(func(s *State[T]) {
			s.Value = pending
			s.Loading = true
			s.Err = nil
			s.Generation = ticket.Seq()
		})
	})

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		value, err := fetch(reqCtx)
		applied := l.gate.Commit(ticket, func() {
			l.update(func(s *State[T]) {
				s.Loading = false
				s.Err = err
				s.Value = value
				if err != nil {
					s.Value = pending
				}
			})
		})
		if !applied {
			l.logger.Debug().Uint64("generation", ticket.Seq()).Msg("Discarded superseded response")
		}
	}()

	return ticket.Seq()
}

// Reset supersedes any request in flight and clears the state
func (l *Loader[T]) Reset(ctx context.Context) uint64 {
	ticket, _ := l.gate.Begin(ctx)
	l.gate.Commit(ticket, func() {
		l.update(func(s *State[T]) {
			*s = State[T]{Generation: ticket.Seq()}
		})
	})
	return ticket.Seq()
}

func (l *Loader[T]) update(fn func(*State[T])) {
	l.mu.Lock()
	fn(&l.state)
	snapshot := l.state
	onChange := l.onChange
	l.mu.Unlock()

	if onChange != nil {
		onChange(snapshot)
	}
}

// State returns the current snapshot
func (l *Loader[T]) State() State[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.state
}

// Wait blocks until every started fetch has returned
func (l *Loader[T]) Wait() {
	l.wg.Wait()
}

// Close cancels the request in flight and freezes the state
func (l *Loader[T]) Close() {
	l.gate.Close()
}
