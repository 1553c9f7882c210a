package core

import "context"

// Future is the pending result of an operation started with Go.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fn on its own goroutine. fn receives a context that is detached from
// ctx's cancellation, so once started the operation always settles; ctx values
// are still visible to it.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	detached := context.WithoutCancel(ctx)
	go func() {
		defer close(f.done)
		f.value, f.err = fn(detached)
	}()
	return f
}

// Await blocks until the operation settles or ctx is done. Giving up on the wait
// does not abort the operation.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the operation has settled.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Settled reports whether the operation has finished.
func (f *Future[T]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
