// Package numfmt is the incremental currency/decimal formatting engine behind
// moneymask fields.
//
// Every keystroke delivers the full text of a field to [Formatter.Apply]. The
// text is canonicalized by [Tokenize] (prefix and grouping separators
// stripped, at most one decimal separator kept), compared with the value the
// field's [State] remembers, and, when a reformat is warranted, rendered back
// as a grouped, precision-limited display string with the caret pinned to its
// end.
//
// Writing the display string back into a field usually triggers another edit
// event carrying that same text. The State makes that re-entry a no-op, so a
// host does not need to detach its change listener around the write-back.
//
// A Formatter is immutable and may be shared between fields. A State belongs
// to exactly one field and is not safe for concurrent use; its owner
// serializes access.
package numfmt
