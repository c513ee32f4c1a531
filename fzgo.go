// Package fzgo drives an external fuzzy-finder executable (fzf or a
// compatible tool) from Go. Candidates are streamed to the finder's stdin,
// the user picks interactively in the finder's own terminal UI, and the
// originally-supplied values matching the picked lines come back out.
//
// The package does no matching, ranking, or rendering of its own; the finder
// binary owns all of that. What lives here is the option-descriptor parser,
// the process plumbing, and the mapping from selected text back to original
// values.
package fzgo

import (
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// DefaultExecutable is the finder binary looked up on PATH when no explicit
// path is configured.
const DefaultExecutable = "fzf"

// FinderURL points at the finder project, for the not-found error message.
const FinderURL = "https://github.com/junegunn/fzf"

// Finder is a handle to a resolved finder executable plus a set of default
// option flags applied to every run. It is immutable after New and safe for
// concurrent use; each Run owns its own process and lookup state.
type Finder struct {
	path     string
	defaults []string
	logger   *slog.Logger
}

// Option configures a Finder at construction time.
type Option func(*finderOptions) error

type finderOptions struct {
	path     string
	defaults []string
	logger   *slog.Logger
}

// WithExecutable sets an explicit finder executable. The path is used
// verbatim; no PATH lookup is performed.
func WithExecutable(path string) Option {
	return func(o *finderOptions) error {
		o.path = path
		return nil
	}
}

// WithDefaultOptions sets option descriptors applied to every run, in any
// shape accepted by ParseOptions. They are parsed once, here; a malformed
// descriptor fails New, not Run.
func WithDefaultOptions(descriptors ...any) Option {
	return func(o *finderOptions) error {
		for _, d := range descriptors {
			flags, err := ParseOptions(d)
			if err != nil {
				return err
			}
			o.defaults = append(o.defaults, flags...)
		}
		return nil
	}
}

// WithLogger sets the logger for debug-level diagnostics (resolved argv,
// candidate and selection counts). The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *finderOptions) error {
		o.logger = logger
		return nil
	}
}

// New resolves the finder executable and builds a Finder.
//
// Resolution order: an explicit WithExecutable path is used verbatim;
// otherwise the default binary name is looked up on PATH. If neither
// works New fails immediately with ErrExecutableNotFound — the failure is
// never deferred to Run.
func New(opts ...Option) (*Finder, error) {
	var o finderOptions
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	path := o.path
	if path == "" {
		if _, err := exec.LookPath(DefaultExecutable); err != nil {
			return nil, ErrExecutableNotFound
		}
		path = DefaultExecutable
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Finder{path: path, defaults: o.defaults, logger: logger}, nil
}

// DefaultOptions returns a copy of the parsed default flags.
func (f *Finder) DefaultOptions() []string {
	out := make([]string, len(f.defaults))
	copy(out, f.defaults)
	return out
}

// Executable returns the resolved finder executable path or name.
func (f *Finder) Executable() string {
	return f.path
}

func (f *Finder) String() string {
	return fmt.Sprintf("Finder(executable=%s, default_options=%q)", f.path, strings.Join(f.defaults, " "))
}
