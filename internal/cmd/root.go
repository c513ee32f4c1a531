// Package cmd implements the fzpick command tree.
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/runger/fzgo"
	"github.com/runger/fzgo/internal/config"
	"github.com/runger/fzgo/internal/logging"
)

// Exit codes.
// These match the expectations of shell scripts:
//
//	0 = selection made (use the result)
//	1 = cancelled by user (no selection)
//	2 = usage or environment failure
const (
	exitSuccess   = 0
	exitCancelled = 1
	exitError     = 2
)

// maxCandidateLen is the maximum length of a single candidate line in bytes.
const maxCandidateLen = 1 << 20 // 1 MB

var (
	pickExec      string
	pickMulti     bool
	pickOptions   []string
	pickDelimiter string
	pickConfig    string
	pickDebug     bool
)

var rootCmd = &cobra.Command{
	Use:   "fzpick [file...]",
	Short: "pipe lines through an external fuzzy finder",
	Long: `fzpick - pipe lines through an external fuzzy finder

Reads candidate lines from stdin (or from the given files), hands them to
the configured finder for interactive selection, and prints the selected
line(s) to stdout.

Examples:
  ls | fzpick                          # pick one entry
  fzpick --multi todo.txt              # pick several lines from a file
  fzpick -o '--reverse --height=40%'   # extra finder options`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runPick,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&pickExec, "exec", "", "finder executable (overrides config)")
	rootCmd.Flags().BoolVarP(&pickMulti, "multi", "m", false, "allow selecting more than one line")
	rootCmd.Flags().StringArrayVarP(&pickOptions, "option", "o", nil, "extra finder option string (repeatable)")
	rootCmd.Flags().StringVar(&pickDelimiter, "delimiter", "", "candidate record separator (default newline)")
	rootCmd.Flags().StringVar(&pickConfig, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&pickDebug, "debug", false, "enable debug logging on stderr")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, fzgo.ErrNoSelection) {
			return exitCancelled
		}
		fmt.Fprintf(os.Stderr, "fzpick: %v\n", err)
		return exitError
	}
	return exitSuccess
}

func runPick(cmd *cobra.Command, args []string) error {
	logger := logging.New(&logging.Config{Debug: pickDebug})

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	finder, err := buildFinder(cfg, logger)
	if err != nil {
		return err
	}

	items, err := readCandidates(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	sel, err := finder.Pick(cmd.Context(), items, buildRunOptions(cfg)...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, item := range sel.Items() {
		fmt.Fprintln(out, item)
	}
	if sel.Len() == 0 {
		// Multi-select with nothing picked: still a cancel for shell callers.
		return fzgo.ErrNoSelection
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if pickConfig != "" {
		return config.LoadFromFile(pickConfig)
	}
	return config.Load()
}

func buildFinder(cfg *config.Config, logger *slog.Logger) (*fzgo.Finder, error) {
	opts := []fzgo.Option{fzgo.WithLogger(logger)}

	executable := cfg.Executable
	if pickExec != "" {
		executable = pickExec
	}
	if executable != "" {
		opts = append(opts, fzgo.WithExecutable(executable))
	}

	for _, raw := range cfg.DefaultOptions {
		opts = append(opts, fzgo.WithDefaultOptions(fzgo.Raw(raw)))
	}

	return fzgo.New(opts...)
}

func buildRunOptions(cfg *config.Config) []fzgo.RunOption {
	var opts []fzgo.RunOption
	if pickMulti {
		opts = append(opts, fzgo.WithOptions("--multi"))
	}
	for _, raw := range pickOptions {
		opts = append(opts, fzgo.WithOptions(fzgo.Raw(raw)))
	}

	delimiter := cfg.Delimiter
	if pickDelimiter != "" {
		delimiter = pickDelimiter
	}
	if delimiter != "" {
		opts = append(opts, fzgo.WithDelimiter(delimiter))
	}
	return opts
}

// readCandidates collects candidate lines from the given files, or from r
// when no files are named.
func readCandidates(r io.Reader, files []string) ([]string, error) {
	if len(files) == 0 {
		return scanLines(r)
	}

	var items []string
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading candidates: %w", err)
		}
		lines, err := scanLines(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		items = append(items, lines...)
	}
	return items, nil
}

func scanLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxCandidateLen)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning candidates: %w", err)
	}
	return lines, nil
}
