package result

import "context"

// Stream is a cold sequence of Results. Nothing runs until a consumer
// subscribes; each subscription runs the generator from the start.
// Cancelling the subscriber's context stops further emissions but does not
// undo side effects the generator already performed.
type Stream[T any] struct {
	run func(ctx context.Context, emit func(Result[T]) bool)
}

// NewStream wraps a generator. The generator must stop when emit returns
// false, which happens once the subscriber's context is done.
func NewStream[T any](run func(ctx context.Context, emit func(Result[T]) bool)) *Stream[T] {
	return &Stream[T]{run: run}
}

// Of returns a stream that emits the given results in order.
func Of[T any](results ...Result[T]) *Stream[T] {
	return NewStream(func(ctx context.Context, emit func(Result[T]) bool) {
		for _, r := range results {
			if !emit(r) {
				return
			}
		}
	})
}

// Subscribe starts the generator in a goroutine and returns its emissions.
// The channel is closed when the generator finishes or ctx is cancelled.
func (s *Stream[T]) Subscribe(ctx context.Context) <-chan Result[T] {
	out := make(chan Result[T])
	go func() {
		defer close(out)
		s.run(ctx, func(r Result[T]) bool {
			select {
			case out <- r:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()
	return out
}

// Collect drains the stream and returns every emission in order.
func (s *Stream[T]) Collect(ctx context.Context) []Result[T] {
	var results []Result[T]
	for r := range s.Subscribe(ctx) {
		results = append(results, r)
	}
	return results
}

// Last drains the stream and returns the final emission. A stream that emits
// nothing before ctx is cancelled yields Loading.
func (s *Stream[T]) Last(ctx context.Context) Result[T] {
	last := Loading[T]()
	for r := range s.Subscribe(ctx) {
		last = r
	}
	return last
}
