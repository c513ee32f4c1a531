package fzgo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"os/exec"
	"slices"
	"strings"
	"syscall"

	"github.com/google/shlex"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// RunOption configures a single Run invocation.
type RunOption func(*runConfig)

type runConfig struct {
	descriptors []any
	delimiter   string
	enc         encoding.Encoding
}

// WithOptions adds call-time option descriptors, in any shape accepted by
// ParseOptions. Call-time flags are placed before the Finder's defaults on
// the command line; the finder's own last-flag-wins rule decides which takes
// effect.
func WithOptions(descriptors ...any) RunOption {
	return func(c *runConfig) {
		c.descriptors = append(c.descriptors, descriptors...)
	}
}

// WithFlagValue adds a single key/value option, e.g. WithFlagValue("height",
// "40%"). The key is normalized and the value shell-quoted as in
// ParseOptions.
func WithFlagValue(key string, value any) RunOption {
	return func(c *runConfig) {
		c.descriptors = append(c.descriptors, FlagValue{Key: key, Value: value})
	}
}

// WithDelimiter sets the record separator written between candidates and
// used to split the finder's output. Default is "\n". An empty delimiter
// falls back to "\n" when splitting, since splitting on nothing is
// degenerate.
func WithDelimiter(delimiter string) RunOption {
	return func(c *runConfig) {
		c.delimiter = delimiter
	}
}

// WithEncoding converts both directions of the finder's text streams through
// the given character encoding. Candidates are encoded on the way in and the
// selection decoded on the way out. Default is plain UTF-8, untransformed.
func WithEncoding(enc encoding.Encoding) RunOption {
	return func(c *runConfig) {
		c.enc = enc
	}
}

func resolveRunConfig(opts []RunOption) runConfig {
	cfg := runConfig{delimiter: "\n"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Run streams the candidate sequence to the finder, blocks until the user
// picks (or cancels), and maps the picked line(s) back to original values.
//
// Candidates are consumed at most once, in order, and identified by their
// fmt.Sprint form; two candidates with the same string form collapse to the
// later one (last write wins). Cancelling ctx kills the finder and Run
// returns ctx.Err().
//
// With no multi-select flag active, exactly one pick comes back
// single-shaped and an empty pick is ErrNoSelection. With multi-select
// active the result is always list-shaped, empty included.
func Run[T any](ctx context.Context, f *Finder, items iter.Seq[T], opts ...RunOption) (Selection[T], error) {
	var zero Selection[T]
	cfg := resolveRunConfig(opts)

	flags := make([]string, 0, len(f.defaults))
	for _, d := range cfg.descriptors {
		parsed, err := ParseOptions(d)
		if err != nil {
			return zero, err
		}
		flags = append(flags, parsed...)
	}
	flags = append(flags, f.defaults...)

	// The command line is assembled as one string and re-split with
	// shell-word rules so quoted values keep embedded spaces.
	line := strings.TrimSpace(f.path + " " + strings.Join(flags, " "))
	argv, err := shlex.Split(line)
	if err != nil {
		return zero, fmt.Errorf("fzgo: splitting command line: %w", err)
	}
	if len(argv) == 0 {
		return zero, errors.New("fzgo: empty command line")
	}
	multi, noMulti := selectMode(argv[1:])

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return zero, fmt.Errorf("fzgo: opening stdin pipe: %w", err)
	}

	var out bytes.Buffer
	var decoder *transform.Writer
	if cfg.enc != nil {
		decoder = transform.NewWriter(&out, cfg.enc.NewDecoder())
		cmd.Stdout = decoder
	} else {
		cmd.Stdout = &out
	}

	var in io.Writer = stdin
	closeInput := stdin.Close
	if cfg.enc != nil {
		encoder := transform.NewWriter(stdin, cfg.enc.NewEncoder())
		in = encoder
		closeInput = func() error {
			err := encoder.Close()
			if cerr := stdin.Close(); err == nil {
				err = cerr
			}
			return err
		}
	}

	if err := cmd.Start(); err != nil {
		return zero, fmt.Errorf("fzgo: starting %s: %w", argv[0], err)
	}
	f.logger.Debug("finder started", "argv", argv)

	lookup := make(map[string]T)
	sent := 0
	for item := range items {
		form := fmt.Sprint(item)
		lookup[form] = item
		if _, err := io.WriteString(in, form+cfg.delimiter); err != nil {
			if closedPipe(err) {
				// The finder went away before consuming every candidate:
				// the user already picked or cancelled. Expected; stop
				// feeding and collect whatever it produced.
				break
			}
			_ = closeInput()
			_ = cmd.Wait()
			return zero, fmt.Errorf("fzgo: writing candidates: %w", err)
		}
		sent++
	}
	_ = closeInput()

	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return zero, ctx.Err()
	}
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return zero, fmt.Errorf("fzgo: waiting for %s: %w", argv[0], waitErr)
	}
	// A non-zero exit (no match, cancel) is not an error in itself; the
	// output, or its absence, decides the result.
	if decoder != nil {
		if err := decoder.Close(); err != nil {
			return zero, fmt.Errorf("fzgo: decoding finder output: %w", err)
		}
	}

	tokens := splitSelection(out.String(), cfg.delimiter)
	results := make([]T, 0, len(tokens))
	for _, tok := range tokens {
		item, ok := lookup[tok]
		if !ok {
			return zero, fmt.Errorf("%w: %q", ErrUnknownSelection, tok)
		}
		results = append(results, item)
	}
	f.logger.Debug("finder done", "candidates", sent, "selected", len(results))

	if multi {
		return Selection[T]{items: results}, nil
	}
	if len(results) == 0 {
		return zero, ErrNoSelection
	}
	if noMulti || len(results) == 1 {
		return Selection[T]{items: results, single: true}, nil
	}
	return Selection[T]{items: results}, nil
}

// RunSlice is Run over an in-memory candidate slice.
func RunSlice[T any](ctx context.Context, f *Finder, items []T, opts ...RunOption) (Selection[T], error) {
	return Run(ctx, f, slices.Values(items), opts...)
}

// Pick is the common string case: present the given lines and return the
// pick(s).
func (f *Finder) Pick(ctx context.Context, items []string, opts ...RunOption) (Selection[string], error) {
	return RunSlice(ctx, f, items, opts...)
}

// selectMode reports whether the assembled flags leave the finder in
// multi-select mode, and whether multi-select was explicitly negated. Both
// spellings of multi-select count, and a later flag overrides an earlier
// one, matching the finder's own precedence. An explicit negation forces
// the single return shape regardless of how many lines come back.
func selectMode(args []string) (multi, noMulti bool) {
	for _, arg := range args {
		switch {
		case arg == "--multi" || arg == "-m" || strings.HasPrefix(arg, "--multi="):
			multi, noMulti = true, false
		case arg == "--no-multi":
			multi, noMulti = false, true
		}
	}
	return multi, noMulti
}

// splitSelection turns the finder's raw output into the ordered selected
// lines. One trailing newline is stripped; an empty delimiter falls back to
// newline splitting.
func splitSelection(text, delimiter string) []string {
	if text == "" {
		return nil
	}
	if delimiter == "" {
		delimiter = "\n"
	}
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, delimiter)
}

// closedPipe reports whether a write failed because the reader end is gone.
func closedPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe)
}
