package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/lexer"
	"github.com/cwbudde/flame/internal/parser"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a flame source file and print its AST",
	Long: `Parse flame source into an AST and pretty-print it back out (spec §4.2,
§2 "bytes -> Lexer -> Parser -> AST").

Examples:
  flame parse script.fl
  flame parse -e "let x = 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading from a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	file, src, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	prog, err := parseSource(file, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return fmt.Errorf("parsing %s failed", file)
	}

	fmt.Print(prog.String())
	return nil
}

// parseSource tokenizes and parses one file; shared by the parse and run
// subcommands so both see the same lex/parse behavior.
func parseSource(file string, src []byte) (*ast.Program, error) {
	l := lexer.New(file, src)
	toks, lexErrs := l.Tokenize()
	if len(lexErrs) > 0 {
		return nil, lexErrs[0]
	}
	p := parser.New(file, toks)
	prog, parseErr := p.ParseProgram()
	if parseErr != nil {
		return nil, parseErr
	}
	return prog, nil
}
