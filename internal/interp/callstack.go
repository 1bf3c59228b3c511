package interp

import (
	"fmt"

	"github.com/cwbudde/flame/internal/diag"
	"github.com/cwbudde/flame/internal/errors"
)

// defaultMaxCallDepth is the evaluator's recursion limit (spec §4.6
// "Recursion limit: if the evaluator's var-stack exceeds a configured
// maximum (default 416 frames), raise RuntimeError::StackOverflow").
const defaultMaxCallDepth = 416

// callStack tracks active function invocations for stack-overflow detection
// and for rendering a call stack alongside an uncaught exception, adapted
// from the teacher's runtime.CallStack down to the operations the evaluator
// actually needs.
type callStack struct {
	frames   errors.StackTrace
	maxDepth int
}

func newCallStack(maxDepth int) *callStack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxCallDepth
	}
	return &callStack{frames: errors.NewStackTrace(), maxDepth: maxDepth}
}

func (cs *callStack) push(functionName, file string, pos diag.Position) error {
	if len(cs.frames) >= cs.maxDepth {
		return fmt.Errorf("stack overflow: maximum recursion depth (%d) exceeded in %q", cs.maxDepth, functionName)
	}
	cs.frames = append(cs.frames, errors.NewStackFrame(functionName, file, &pos))
	return nil
}

func (cs *callStack) pop() {
	if len(cs.frames) > 0 {
		cs.frames = cs.frames[:len(cs.frames)-1]
	}
}

func (cs *callStack) depth() int { return len(cs.frames) }

// snapshot returns a copy of the current trace, captured at the moment a
// throw happens so later unwinding cannot mutate it (spec §4.6 "throw ...
// captures the current ... call-stack ... snapshot").
func (cs *callStack) snapshot() errors.StackTrace {
	out := make(errors.StackTrace, len(cs.frames))
	copy(out, cs.frames)
	return out
}
