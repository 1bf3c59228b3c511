package diag

import (
	"fmt"
	"strings"
)

// Note is a secondary message chained to a primary Diagnostic, e.g. pointing
// at a conflicting earlier declaration.
type Note struct {
	Pos     Position
	Message string
}

// Diagnostic is anything that can be rendered by the driver's error sink:
// a severity, a primary location, a message, and zero or more chained notes.
type Diagnostic struct {
	Severity Severity
	Pos      Position
	Message  string
	Notes    []Note
}

func (d *Diagnostic) Error() string { return d.Render(nil, false) }

// Render formats the diagnostic in the driver's boxed style:
//
//	path:line:col: error: message
//	      | <prev line>
//	  line| <offending line>
//	      |       ^
//	      | <next line>
//
// sm supplies surrounding source lines; it may be nil if unavailable, in
// which case only the header line is rendered. When color is true, the
// severity word and caret are ANSI-colored.
func (d *Diagnostic) Render(sm *SourceMap, color bool) string {
	var sb strings.Builder

	sev := d.Severity.String()
	if color {
		sev = colorFor(d.Severity) + sev + reset
	}
	file := d.Pos.File
	if file == "" {
		file = "<input>"
	}
	fmt.Fprintf(&sb, "%s:%d:%d: %s: %s\n", file, d.Pos.Line, d.Pos.Column, sev, d.Message)

	if sm != nil {
		gutter := fmt.Sprintf("%5d", d.Pos.Line)
		blank := strings.Repeat(" ", len(gutter))

		if d.Pos.Line > 1 {
			fmt.Fprintf(&sb, "%s| %s\n", blank, sm.Line(d.Pos.Line-1))
		}
		fmt.Fprintf(&sb, "%s| %s\n", gutter, sm.Line(d.Pos.Line))

		caretPad := strings.Repeat(" ", max(d.Pos.Column-1, 0))
		caret := "^"
		if color {
			caret = colorFor(d.Severity) + caret + reset
		}
		fmt.Fprintf(&sb, "%s|       %s%s\n", blank, caretPad, caret)

		if d.Pos.Line < sm.LineCount() {
			fmt.Fprintf(&sb, "%s| %s\n", blank, sm.Line(d.Pos.Line+1))
		}
	}

	for _, n := range d.Notes {
		fmt.Fprintf(&sb, "%s:%d:%d: note: %s\n", file, n.Pos.Line, n.Pos.Column, n.Message)
	}

	return strings.TrimRight(sb.String(), "\n")
}

const reset = "\033[0m"

func colorFor(s Severity) string {
	switch s {
	case SeverityError:
		return "\033[1;31m"
	case SeverityWarning:
		return "\033[1;33m"
	case SeverityNote:
		return "\033[1;36m"
	default:
		return ""
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
