package client

import (
	"context"
	"errors"
)

// ErrClosed is returned by Await when the channel closed without a result.
var ErrClosed = errors.New("client: result channel closed")

// Result is the single outcome of an operation. Exactly one of Value and
// Err is meaningful: Err is nil on success.
type Result[T any] struct {
	Value T
	Err   error
}

// Await blocks until ch delivers or ctx is done. Abandoning the wait does
// not cancel the request; the buffered channel still receives its result.
func Await[T any](ctx context.Context, ch <-chan Result[T]) (T, error) {
	var zero T
	select {
	case r, ok := <-ch:
		if !ok {
			return zero, ErrClosed
		}
		return r.Value, r.Err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
