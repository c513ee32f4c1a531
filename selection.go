package fzgo

// Selection holds the outcome of one Run: the picked values in the order the
// finder emitted them, plus the return shape the active flags called for.
//
// In a statically-typed rendition the "single value or list" contract
// becomes a bit on the result: a single-shaped selection answers Item, a
// list-shaped one answers Items. Items always works; Item refuses to guess
// when the run was list-shaped.
type Selection[T any] struct {
	items  []T
	single bool
}

// Items returns the selected values in emission order. For a list-shaped
// selection this may be empty.
func (s Selection[T]) Items() []T {
	return s.items
}

// Len returns the number of selected values.
func (s Selection[T]) Len() int {
	return len(s.items)
}

// IsSingle reports whether the single-return policy applied: an explicit
// no-multi flag was set, or no multi flag was set and exactly one line came
// back.
func (s Selection[T]) IsSingle() bool {
	return s.single
}

// Item returns the single selected value. It returns ErrNoSelection when
// nothing was selected and ErrNotSingle when the selection is list-shaped.
func (s Selection[T]) Item() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrNoSelection
	}
	if !s.single {
		return zero, ErrNotSingle
	}
	return s.items[0], nil
}
