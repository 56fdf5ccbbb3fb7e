// Package mask turns a mask descriptor into a Masker.
//
// The descriptor "currency" selects the incremental number formatter with
// the configured prefix; "currency/<prefix>" selects it with an explicit
// prefix, for example "currency/R$ ". Any other descriptor names a pattern
// mask, such as "+1 ([000]) [000]-[0000]", which is handed to a PatternMask
// engine supplied by the caller.
package mask
