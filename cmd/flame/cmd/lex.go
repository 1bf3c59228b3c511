package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/flame/internal/lexer"
)

var (
	lexShowPos bool
	lexEval    string
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a flame source file and print the resulting tokens",
	Long: `Tokenize (lex) a flame program and print the resulting tokens, one per
line. Useful for debugging the lexer and understanding how flame source is
tokenized (spec §4.1).

Examples:
  flame lex script.fl
  flame lex -e "let x = 42;"
  flame lex --show-pos script.fl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline source instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column position")
}

func runLex(cmd *cobra.Command, args []string) error {
	file, src, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(file, src)
	toks, lexErrs := l.Tokenize()

	for _, tok := range toks {
		line := fmt.Sprintf("%-14s %q", tok.Kind, tok.Literal)
		if lexShowPos {
			line += fmt.Sprintf(" @%d:%d", tok.Span.Start.Line, tok.Span.Start.Column)
		}
		fmt.Println(line)
	}

	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("found %d lex error(s)", len(lexErrs))
	}
	return nil
}

// readSource returns the file name and bytes to feed the lexer: inline
// source via -e/--eval, a file path from args, or an error if neither was
// given (spec §6 CLI surface never reads stdin — every flame invocation
// names its sources explicitly).
func readSource(eval string, args []string) (string, []byte, error) {
	if eval != "" {
		return "<eval>", []byte(eval), nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", nil, fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return args[0], content, nil
	}
	return "", nil, fmt.Errorf("either provide a file path or use -e/--eval for inline source")
}
