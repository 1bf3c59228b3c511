// Package cmd implements the flame CLI's cobra command tree, grounded on
// the teacher's cmd/dwscript/cmd package: a root command carrying the
// spec's literal `-h`/`-v` flags (spec §6 "flame [options] sources..."), a
// version template fed by build-time-injected vars, and one subcommand per
// pipeline stage (lex, parse, run) for debugging a single file.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version, GitCommit, and BuildDate are overridden at build time via
// -ldflags "-X github.com/cwbudde/flame/cmd/flame/cmd.Version=...", matching
// the teacher's own build-flag injection (cmd/dwscript/cmd/root.go).
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "flame [options] sources...",
	Short: "flame is an expression-oriented, statically-typed scripting language",
	Long: `flame is a small expression-oriented, statically-typed scripting
language: a hand-written lexer and Pratt/precedence-climbing parser feed a
semantic analyzer (name resolution, overload resolution, generics) whose
output a tree-walking evaluator runs directly against scope-slot addressing
computed ahead of time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, exiting the process with a non-zero status
// on failure (spec §7 "every failure ... exits with a non-zero status").
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "print version, exit 0 (spec §6)")
}
