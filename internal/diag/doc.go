// Package diag defines the diagnostic model shared by the lexer, parser and
// formatter.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string form (LEX1002, SYN2001, FMT3001, ...), a short Message, the Primary
// span and optional Notes.
//
// Phases emit through a Reporter so they never depend on storage; BagReporter
// collects into a Bag, which sorts, deduplicates and caps the list, and
// DedupReporter drops repeats before they reach it. Package diag performs no
// IO; internal/diagfmt owns rich presentation, and FormatGoldenDiagnostics
// gives the one-line form used by tests and `coral parse --format short`.
package diag
