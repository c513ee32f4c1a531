package fzgo

import (
	"fmt"
	"testing"

	"github.com/google/shlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Key normalization tests ---

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"x", "-x"},
		{"m", "-m"},
		{"preview", "--preview"},
		{"no-mouse", "--no-mouse"},
		{"-x", "-x"},
		{"--preview", "--preview"},
		{"+x", "+x"},
		{"+s", "+s"},
		{"é", "-é"}, // single rune, not single byte
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeKey(tt.key))
		})
	}
}

// --- ParseOptions string-shape tests ---

func TestParseOptions_BlankString(t *testing.T) {
	flags, err := ParseOptions("")
	require.NoError(t, err)
	assert.Empty(t, flags)

	flags, err = ParseOptions("   ")
	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestParseOptions_BareKeyString(t *testing.T) {
	flags, err := ParseOptions("reverse")
	require.NoError(t, err)
	assert.Equal(t, []string{"--reverse"}, flags)

	flags, err = ParseOptions("x")
	require.NoError(t, err)
	assert.Equal(t, []string{"-x"}, flags)
}

func TestParseOptions_PreassembledString(t *testing.T) {
	// A string with whitespace is assumed to be a constructed option string
	// and passes through as one element.
	flags, err := ParseOptions("--reverse --bold")
	require.NoError(t, err)
	assert.Equal(t, []string{"--reverse --bold"}, flags)
}

func TestParseOptions_Nil(t *testing.T) {
	flags, err := ParseOptions(nil)
	require.NoError(t, err)
	assert.Empty(t, flags)
}

// --- ParseOptions sequence tests ---

func TestParseOptions_SequencePreservesOrder(t *testing.T) {
	flags, err := ParseOptions([]any{"--no-mouse", "m", []any{"height", "50%"}, "reverse"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--no-mouse", "-m", "--height=50%", "--reverse"}, flags)
}

func TestParseOptions_SequenceSkipsBlankStrings(t *testing.T) {
	flags, err := ParseOptions([]any{"", "reverse", "   ", "m"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--reverse", "-m"}, flags)
}

func TestParseOptions_StringSlice(t *testing.T) {
	flags, err := ParseOptions([]string{"reverse", "-x", "multi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--reverse", "-x", "--multi"}, flags)
}

func TestParseOptions_NoDeduplication(t *testing.T) {
	flags, err := ParseOptions([]any{"reverse", "reverse"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--reverse", "--reverse"}, flags)
}

func TestParseOptions_TypedDescriptors(t *testing.T) {
	flags, err := ParseOptions([]any{
		Flag("reverse"),
		FlagValue{Key: "height", Value: "40%"},
		Raw("--reverse -p 50%"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"--reverse", "--height=40%", "--reverse -p 50%"}, flags)
}

func TestParseOptions_SingleTypedDescriptor(t *testing.T) {
	flags, err := ParseOptions(Flag("multi"))
	require.NoError(t, err)
	assert.Equal(t, []string{"--multi"}, flags)

	flags, err = ParseOptions(FlagValue{Key: "info", Value: "default"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--info=default"}, flags)
}

// --- Key/value pair tests ---

func TestParseOptions_PairShapes(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"any pair", []any{[]any{"height", "50%"}}, []string{"--height=50%"}},
		{"string pair", []any{[]string{"info", "default"}}, []string{"--info=default"}},
		{"array pair", []any{[2]string{"prompt", "pick"}}, []string{"--prompt=pick"}},
		{"int value", []any{[]any{"height", 50}}, []string{"--height=50"}},
		{"single char key", []any{[]any{"p", "50%"}}, []string{"-p=50%"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := ParseOptions(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, flags)
		})
	}
}

func TestParseOptions_BlankValueIsFlagOnly(t *testing.T) {
	flags, err := ParseOptions([]any{[]any{"multi", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"--multi"}, flags)

	flags, err = ParseOptions([]any{[]any{"multi", "   "}})
	require.NoError(t, err)
	assert.Equal(t, []string{"--multi"}, flags)
}

// --- Option-shape error tests ---

func TestParseOptions_NonStringKey(t *testing.T) {
	_, err := ParseOptions([]any{[]any{42, "50%"}})
	var optErr *OptionError
	require.ErrorAs(t, err, &optErr)
	assert.Contains(t, optErr.Error(), "key must be a string")
}

func TestParseOptions_WrongPairLength(t *testing.T) {
	for _, in := range []any{
		[]any{[]any{"height"}},
		[]any{[]any{"height", "50%", "extra"}},
		[]any{[]string{"height", "50%", "extra"}},
	} {
		_, err := ParseOptions(in)
		var optErr *OptionError
		require.ErrorAs(t, err, &optErr, "input %v", in)
	}
}

func TestParseOptions_UnsupportedDescriptor(t *testing.T) {
	_, err := ParseOptions(42)
	var optErr *OptionError
	require.ErrorAs(t, err, &optErr)

	_, err = ParseOptions([]any{3.14})
	require.ErrorAs(t, err, &optErr)
}

// --- Quoting tests ---

func TestQuoteValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"plain", "plain"},
		{"50%", "50%"},
		{"a/b.c", "a/b.c"},
		{"hello world", "'hello world'"},
		{`say "hi"`, `'say "hi"'`},
		{"it's", `'it'"'"'s'`},
		{"$HOME", "'$HOME'"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, quoteValue(tt.in))
		})
	}
}

// Rendered key/value flags must survive shell-word splitting as a single
// word that unescapes back to <normalized-key>=<value>.
func TestRenderedFlagsRoundTripThroughShlex(t *testing.T) {
	values := []string{
		"plain",
		"hello world",
		`double "quoted" part`,
		"single 'quoted' part",
		"mixed '\" both",
		"$VAR and `backticks`",
		"semi;colon & pipe|",
		"TRBL",
		"50%",
	}
	for _, value := range values {
		t.Run(value, func(t *testing.T) {
			flags, err := ParseOptions([]any{[]any{"margin", value}})
			require.NoError(t, err)
			require.Len(t, flags, 1)

			words, err := shlex.Split(flags[0])
			require.NoError(t, err)
			require.Len(t, words, 1, "quoted value split into multiple words")
			assert.Equal(t, "--margin="+value, words[0])
		})
	}
}

func TestRenderedFlagsSplitWithinCommandLine(t *testing.T) {
	flags, err := ParseOptions([]any{"reverse", []any{"prompt", "pick one "}})
	require.NoError(t, err)

	line := fmt.Sprintf("fzf %s %s", flags[0], flags[1])
	words, err := shlex.Split(line)
	require.NoError(t, err)
	assert.Equal(t, []string{"fzf", "--reverse", "--prompt=pick one "}, words)
}
