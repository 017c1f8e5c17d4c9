package syntax

import (
	"hilite/internal/diag"
	"hilite/internal/source"
)

// Unit is the result of one parse: the Document root and the diagnostics
// collected while building it.
type Unit struct {
	Root        Node
	Diagnostics []diag.Diagnostic
}

// File returns the file the unit was parsed from.
func (u Unit) File() *source.File {
	return u.Root.Span.Source()
}

// HasErrors reports whether any diagnostic has error severity.
func (u Unit) HasErrors() bool {
	for _, d := range u.Diagnostics {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}
