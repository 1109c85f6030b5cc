package replica

import "context"

var defaultCloner = NewCloner(WithName("default"))

// Clone returns a deep copy of v using the default cloner.
//
// Cyclic input is not supported: it exhausts the depth budget and Clone
// panics with a *CodedError wrapping ErrDepthExceeded. Use TryClone to get
// the failure as an error.
func Clone[T any](v T) T {
	out, err := cloneAs(context.Background(), defaultCloner, v)
	if err != nil {
		panic(err)
	}
	return out
}

// TryClone returns a deep copy of v using the default cloner.
func TryClone[T any](ctx context.Context, v T) (T, error) {
	return cloneAs(ctx, defaultCloner, v)
}

// CloneWith returns a deep copy of v using c, keeping v's static type.
func CloneWith[T any](ctx context.Context, c *Cloner, v T) (T, error) {
	return cloneAs(ctx, c, v)
}
