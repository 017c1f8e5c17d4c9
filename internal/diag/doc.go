// Package diag defines the diagnostic model shared by the decoration engine,
// the driver and the CLI.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (LEX1001, IO4001, ...), a short Message, the Primary
// source.Span and optional Notes.
//
// Producers emit through a Reporter; BagReporter collects into a Bag, which
// is bounded, sortable and deduplicable. Rendering lives in
// internal/diagfmt, never here.
//
// The decoration engine emits exactly one code, LexEndOfFileUnexpected, when
// a string literal or a comment is still open at end of input. It never
// aborts a parse.
package diag
