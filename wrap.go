package fzgo

import (
	"context"
	"iter"
)

// Wrap composes an item-producing function with the finder: the returned
// function calls source and pipes whatever it yields through Run with the
// given fixed options. Sugar over Run; nothing here is load-bearing.
func Wrap[T any](f *Finder, source func(context.Context) (iter.Seq[T], error), opts ...RunOption) func(context.Context) (Selection[T], error) {
	return func(ctx context.Context) (Selection[T], error) {
		items, err := source(ctx)
		if err != nil {
			var zero Selection[T]
			return zero, err
		}
		return Run(ctx, f, items, opts...)
	}
}

// WrapSlice is Wrap for sources that return a slice.
func WrapSlice[T any](f *Finder, source func(context.Context) ([]T, error), opts ...RunOption) func(context.Context) (Selection[T], error) {
	return func(ctx context.Context) (Selection[T], error) {
		items, err := source(ctx)
		if err != nil {
			var zero Selection[T]
			return zero, err
		}
		return RunSlice(ctx, f, items, opts...)
	}
}
