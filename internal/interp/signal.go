package interp

import "github.com/cwbudde/flame/internal/errors"

// signalKind distinguishes the non-local control transfers a statement can
// produce, mirroring the explicit ControlFlow state the teacher's evaluator
// threads through its ExecutionContext rather than using Go panics for
// ordinary break/continue/return (spec §4.6 "Call-stack ... used to
// implement return", "Loop-stack ... break/continue flag the innermost").
type signalKind int

const (
	sigNone signalKind = iota
	sigBreak
	sigContinue
	sigReturn
	sigException
)

// signal is threaded back up through every exec call. A nil signal (or one
// with kind sigNone) means "keep executing the next statement".
type signal struct {
	kind      signalKind
	returnVal Value
	exc       *Exception
}

// Exception carries a thrown value up to the nearest matching catcher
// (spec §4.6 "throw evaluates its expression ... and throws the object").
// TypeName is the declared type a catcher must match: the dynamic type of
// Value for a user throw, or one of the err* kind constants below for a
// built-in failure (spec §7 "cannot be caught ... unless the catcher's
// declared type matches the built-in error kind"). Exported so
// internal/builtins, implementing the Builtins interface from outside this
// package, can raise the same kind of failure a built-in evaluator call
// would.
type Exception struct {
	Value    Value
	TypeName string
	Stack    errors.StackTrace
}

const (
	errDividedByZero   = "DividedByZero"
	errStackOverflow   = "StackOverflow"
	errIndexOutOfRange = "IndexOutOfRange"
	errUnassigned      = "UnassignedVariable"
)

func runtimeException(kind string, msg string, stack errors.StackTrace) *Exception {
	return &Exception{Value: StringValue(msg), TypeName: kind, Stack: stack}
}

// NewException lets a Builtins implementation outside this package raise a
// runtime failure the same way the evaluator's own built-in dispatch does
// (e.g. a JSON builtin rejecting malformed input with a "TypeError").
func NewException(kind, msg string) *Exception {
	return &Exception{Value: StringValue(msg), TypeName: kind}
}

// userException wraps a thrown value, naming its TypeName the way a
// `catch name: T` clause names it: a class/enum's own declared name, or the
// primitive kind for everything else (spec §4.6 "finds the first catcher
// whose declared type equals the object's runtime type").
func userException(v Value, stack errors.StackTrace) *Exception {
	name := v.Type()
	switch tv := v.(type) {
	case *InstanceValue:
		name = tv.Class.Name
	case *EnumValue:
		name = tv.Enum.Name
	}
	return &Exception{Value: v, TypeName: name, Stack: stack}
}
