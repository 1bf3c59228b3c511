package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/flame/internal/builtins"
	"github.com/cwbudde/flame/internal/interp"
	"github.com/cwbudde/flame/internal/lexer"
	"github.com/cwbudde/flame/internal/parser"
	"github.com/cwbudde/flame/internal/sema"
)

var runCmd = &cobra.Command{
	Use:   "run sources...",
	Short: "Run one or more flame source files",
	Long: `Lex, parse, analyze, and evaluate one or more flame source files in
order (spec §6 "flame [options] sources..."). A failure in one file is
rendered to stderr and does not stop the rest of the queue; the process
exits non-zero if any file failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(runCmd)
	// The bare `flame sources...` form (no subcommand) runs exactly like
	// `flame run sources...` (spec §6's literal invocation has no verb).
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("flame version %s\n", Version)
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("no input files")
		}
		return runSources(cmd, args)
	}
	rootCmd.Args = cobra.ArbitraryArgs
}

// runSources processes every path in order, rendering (not stopping on) a
// per-file failure, then reports a combined non-zero exit if any file
// failed (spec §6 "continue on per-file errors").
func runSources(cmd *cobra.Command, paths []string) error {
	failed := false
	for _, path := range paths {
		if err := runOneSource(path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("one or more source files failed")
	}
	return nil
}

func runOneSource(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	l := lexer.New(path, content)
	toks, lexErrs := l.Tokenize()
	if len(lexErrs) > 0 {
		return lexErrs[0]
	}
	sm := l.SourceMap()

	prog, parseErr := parser.New(path, toks).ParseProgram()
	if parseErr != nil {
		return parseErr
	}

	analyzer, semaErr := sema.Run(prog, sm)
	if semaErr != nil {
		return semaErr
	}

	ip := interp.New(sm, path, os.Stdout, builtins.New(), nil)
	if _, err := ip.Run(prog, analyzer.Root); err != nil {
		return err
	}
	return nil
}
