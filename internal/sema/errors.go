package sema

import (
	"fmt"

	"github.com/cwbudde/flame/internal/diag"
)

// Tag enumerates the SemaError taxonomy named across spec §4.5 and §7.
type Tag string

const (
	ErrInvalidInheritance Tag = "InvalidInheritance"
	ErrAmbiguousName      Tag = "AmbiguousName"
	ErrUnknownName        Tag = "UnknownName"
	ErrMissingArgument     Tag = "MissingArgument"
	ErrNoMatch            Tag = "NoMatch"
	ErrAmbiguousCall      Tag = "AmbiguousCall"
	ErrBadOverride        Tag = "BadOverride"
	ErrEmptyReturn        Tag = "EmptyReturn"
	ErrNotWritable        Tag = "NotWritable"
	ErrTypeMismatch       Tag = "TypeMismatch"
	ErrDeductCannot       Tag = "TI_CannotDeductType"
	ErrDeductMismatch     Tag = "TI_Arg_TypeMismatch"
)

// Error is a semantic-analysis failure: it aborts analysis for the current
// file and the evaluator never runs (spec §7).
type Error struct {
	Tag     Tag
	Pos     diag.Position
	Message string
	Notes   []diag.Note
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.File, e.Pos.Line, e.Pos.Column, e.Tag, e.Message)
}

func (e *Error) Diagnostic() *diag.Diagnostic {
	return &diag.Diagnostic{Severity: diag.SeverityError, Pos: e.Pos, Message: e.Message, Notes: e.Notes}
}

func newErr(tag Tag, pos diag.Position, format string, args ...interface{}) *Error {
	return &Error{Tag: tag, Pos: pos, Message: fmt.Sprintf(format, args...)}
}
