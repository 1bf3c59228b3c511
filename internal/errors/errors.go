// Package errors formats uncaught runtime exceptions with source context,
// line/column information, and a caret pointing at the failing expression —
// the CLI's rendering for a script that panics or throws without a matching
// catch (spec §5 "uncaught throw halts the program and the CLI reports
// failing statement, location, and (if available) a one-line stack trace").
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/flame/internal/diag"
)

// RuntimeError represents an uncaught exception surfaced from the evaluator,
// together with the source it occurred in so the CLI can show context.
type RuntimeError struct {
	Message string
	Source  string
	File    string
	Pos     diag.Position
	Stack   StackTrace
}

// NewRuntimeError creates a new runtime error.
func NewRuntimeError(pos diag.Position, message, source, file string) *RuntimeError {
	return &RuntimeError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context. If color is true,
// ANSI color codes are used for terminal output.
func (e *RuntimeError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	if len(e.Stack) > 0 {
		sb.WriteString("\n\nCall stack:\n")
		sb.WriteString(e.Stack.String())
	}

	return sb.String()
}

func (e *RuntimeError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}

	return lines[lineNum-1]
}
