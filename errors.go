package fzgo

import "errors"

var (
	// ErrExecutableNotFound is returned by New when no explicit executable
	// path was given and the finder binary is not on PATH.
	ErrExecutableNotFound = errors.New("fzgo: cannot find 'fzf' on PATH (" + FinderURL + ")")

	// ErrNoSelection is returned by Run when the finder produced no output
	// and multi-select mode was not active, and by Selection.Item when the
	// selection is empty. An interactive single pick that produced nothing
	// is a cancel; returning a zero value silently would hide that.
	ErrNoSelection = errors.New("fzgo: no selection made")

	// ErrNotSingle is returned by Selection.Item when the selection is
	// list-shaped (multi-select was active); use Items instead.
	ErrNotSingle = errors.New("fzgo: selection is list-shaped, use Items")

	// ErrUnknownSelection is returned by Run when the finder emits a line
	// that was never sent to it. This indicates a delimiter mismatch or a
	// misbehaving finder, and is surfaced rather than silently dropped.
	ErrUnknownSelection = errors.New("fzgo: finder returned an unknown selection")
)
