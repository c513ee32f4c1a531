package fzgo

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Descriptors are the typed shapes a caller can hand to ParseOptions (and to
// WithDefaultOptions / WithOptions). Untyped shapes — plain strings, slices,
// and two-element key/value pairs — are classified into these before any flag
// is rendered, so the rest of the pipeline never sees raw input.

// Flag is a bare option key. It is normalized before use: keys already
// starting with "-" or "+" pass through, single-rune keys get a single dash,
// longer keys get a double dash.
type Flag string

// FlagValue is an option key with a value. The value may be any type; it is
// rendered with fmt.Sprint and shell-quoted. A value that is empty or all
// whitespace renders as a bare flag.
type FlagValue struct {
	Key   string
	Value any
}

// Raw is a pre-assembled option string such as "--reverse -p 50%". It is
// passed through as a single element, unmodified; the caller is responsible
// for its quoting.
type Raw string

// OptionError reports a descriptor that does not match any accepted shape:
// a key/value pair whose key is not a string, a pair with an element count
// other than two, or a descriptor that is neither a string nor a sequence.
type OptionError struct {
	Descriptor any
	Reason     string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("fzgo: bad option descriptor %v: %s", e.Descriptor, e.Reason)
}

// ParseOptions normalizes caller-supplied option descriptors into the flag
// strings handed to the finder executable, in input order.
//
// Accepted shapes:
//   - a plain string: blank yields nothing; no internal whitespace is treated
//     as one bare key and normalized; with whitespace it is assumed to be a
//     pre-assembled option string and passed through as a single element
//   - Flag, FlagValue, Raw
//   - a sequence ([]any, []string, [][]string) whose elements are strings
//     (blank skipped, others normalized as bare keys), typed descriptors, or
//     two-element key/value pairs ([]any{key, value}, []string, [2]string)
//
// Anything else fails with *OptionError before any process is spawned.
func ParseOptions(descriptors any) ([]string, error) {
	switch d := descriptors.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(d) == "" {
			return nil, nil
		}
		if !strings.ContainsAny(d, " \t\n") {
			return []string{normalizeKey(d)}, nil
		}
		// Assume a pre-assembled option string.
		return []string{d}, nil
	case Flag, FlagValue, Raw:
		return parseSequence([]any{d})
	case []string:
		seq := make([]any, len(d))
		for i, s := range d {
			seq[i] = s
		}
		return parseSequence(seq)
	case [][]string:
		seq := make([]any, len(d))
		for i, p := range d {
			seq[i] = p
		}
		return parseSequence(seq)
	case []any:
		return parseSequence(d)
	default:
		return nil, &OptionError{Descriptor: descriptors, Reason: "expected a string or a sequence of options"}
	}
}

func parseSequence(seq []any) ([]string, error) {
	flags := make([]string, 0, len(seq))
	for _, el := range seq {
		switch opt := el.(type) {
		case string:
			if strings.TrimSpace(opt) == "" {
				continue
			}
			flags = append(flags, normalizeKey(opt))
		case Flag:
			if strings.TrimSpace(string(opt)) == "" {
				continue
			}
			flags = append(flags, normalizeKey(string(opt)))
		case Raw:
			if strings.TrimSpace(string(opt)) == "" {
				continue
			}
			flags = append(flags, string(opt))
		case FlagValue:
			flags = append(flags, renderFlagValue(opt))
		case [2]string:
			flags = append(flags, renderFlagValue(FlagValue{Key: opt[0], Value: opt[1]}))
		case []string:
			if len(opt) != 2 {
				return nil, &OptionError{Descriptor: el, Reason: fmt.Sprintf("expected exactly two elements (key, value), got %d", len(opt))}
			}
			flags = append(flags, renderFlagValue(FlagValue{Key: opt[0], Value: opt[1]}))
		case []any:
			if len(opt) != 2 {
				return nil, &OptionError{Descriptor: el, Reason: fmt.Sprintf("expected exactly two elements (key, value), got %d", len(opt))}
			}
			key, ok := opt[0].(string)
			if !ok {
				return nil, &OptionError{Descriptor: el, Reason: fmt.Sprintf("key must be a string, got %T", opt[0])}
			}
			flags = append(flags, renderFlagValue(FlagValue{Key: key, Value: opt[1]}))
		default:
			return nil, &OptionError{Descriptor: el, Reason: "expected a string or a two-element key/value pair"}
		}
	}
	return flags, nil
}

func renderFlagValue(fv FlagValue) string {
	value := fmt.Sprint(fv.Value)
	if strings.TrimSpace(value) == "" {
		return normalizeKey(fv.Key)
	}
	return normalizeKey(fv.Key) + "=" + quoteValue(value)
}

// normalizeKey turns a bare option key into the finder's flag spelling.
// Keys the caller already punctuated ("-x", "--preview", "+s") pass through.
func normalizeKey(key string) string {
	if strings.HasPrefix(key, "-") || strings.HasPrefix(key, "+") {
		return key
	}
	if utf8.RuneCountInString(key) == 1 {
		return "-" + key
	}
	return "--" + key
}

// safeValue matches values that need no quoting at all.
var safeValue = regexp.MustCompile(`^[\w@%+=:,./-]+$`)

// quoteValue wraps a flag value so that it survives POSIX shell-word
// splitting as a single word. Embedded single quotes use the '"'"' escape.
func quoteValue(s string) string {
	if s == "" {
		return "''"
	}
	if safeValue.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
