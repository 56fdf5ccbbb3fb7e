// Package logging is the structured logging facade used by the formatter,
// field bindings, the metrics server and batch runs.
//
// Components take a Logger and fall back to NopLogger through OrNop, so a
// library caller that never configures logging pays nothing. The CLI wires
// a zerolog console logger; tests use NewLogger to capture JSON lines.
package logging
