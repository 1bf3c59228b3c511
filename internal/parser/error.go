package parser

import (
	"fmt"

	"github.com/cwbudde/flame/internal/diag"
)

// Error codes, mirroring the reference parser's structured-error taxonomy
// (internal/parser/error.go in the DWScript front end) but trimmed to the
// productions this grammar actually has.
const (
	ErrUnexpectedToken  = "E_UNEXPECTED_TOKEN"
	ErrMissingSemicolon = "E_MISSING_SEMICOLON"
	ErrMissingLParen    = "E_MISSING_LPAREN"
	ErrMissingRParen    = "E_MISSING_RPAREN"
	ErrMissingRBracket  = "E_MISSING_RBRACKET"
	ErrMissingLBrace    = "E_MISSING_LBRACE"
	ErrMissingRBrace    = "E_MISSING_RBRACE"
	ErrExpectedIdent    = "E_EXPECTED_IDENT"
	ErrExpectedType     = "E_EXPECTED_TYPE"
	ErrNoPrefixParse    = "E_NO_PREFIX_PARSE"
	ErrInvalidSyntax    = "E_INVALID_SYNTAX"
	ErrMissingColon     = "E_MISSING_COLON"
	ErrMissingArrow     = "E_MISSING_ARROW"
	ErrContinueOutsideLoop = "E_CONTINUE_OUTSIDE_LOOP"
	ErrBreakOutsideLoop    = "E_BREAK_OUTSIDE_LOOP"
)

// ParseError is raised at the first offending token with a message and an
// optional chain of notes (spec §4.2 "Error recovery: none").
type ParseError struct {
	Code  string
	Msg   string
	Span  diag.Span
	Notes []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Span.Start.File, e.Span.Start.Line, e.Span.Start.Column, e.Msg)
}

func newError(code string, span diag.Span, format string, args ...interface{}) *ParseError {
	return &ParseError{Code: code, Msg: fmt.Sprintf(format, args...), Span: span}
}
