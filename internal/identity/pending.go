package identity

import "context"

type result[T any] struct {
	val T
	err error
}

// Pending is an in-flight lookup that the game loop polls once per tick.
// Nothing blocks on it; the first Poll after completion returns the value.
type Pending[T any] struct {
	ch     chan result[T]
	cancel context.CancelFunc

	done bool
	val  T
	err  error
}

// Start runs fn on its own goroutine and returns a handle to poll
func Start[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Pending[T] {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pending[T]{
		ch:     make(chan result[T], 1),
		cancel: cancel,
	}
	go func() {
		v, err := fn(ctx)
		p.ch <- result[T]{val: v, err: err}
	}()
	return p
}

// Poll reports whether the lookup has finished, without blocking
func (p *Pending[T]) Poll() (T, bool, error) {
	if p.done {
		return p.val, true, p.err
	}
	select {
	case r := <-p.ch:
		p.done = true
		p.val, p.err = r.val, r.err
		p.cancel()
		return p.val, true, p.err
	default:
		var zero T
		return zero, false, nil
	}
}

// Wait blocks until the lookup finishes. Intended for tests and tools, never
// for the game loop.
func (p *Pending[T]) Wait() (T, error) {
	if !p.done {
		r := <-p.ch
		p.done = true
		p.val, p.err = r.val, r.err
		p.cancel()
	}
	return p.val, p.err
}

// Cancel abandons the lookup. A later Poll reports the context error once the
// goroutine notices.
func (p *Pending[T]) Cancel() {
	p.cancel()
}
