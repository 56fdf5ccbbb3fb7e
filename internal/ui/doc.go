// Package ui holds the color themes shared by the REPL and the TUI.
//
// A theme pairs ANSI escape codes, used by line-oriented output, with a
// lipgloss palette for the TUI. Colors are off when the user asks for
// -no-color or sets NO_COLOR.
package ui
