// Package format holds small, pure display helpers shared by the CLI, the
// TUI and the formatting engine: digit grouping, durations and rates.
package format
