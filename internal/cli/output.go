// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayField], [DisplayEvent], [DisplayConversions].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatField], [FormatEvent].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteConversionsToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/moneymask/internal/field"
	"github.com/agbru/moneymask/internal/ui"
)

// CaretMarker is drawn at the caret position by FormatField.
const CaretMarker = "|"

// OutputConfig holds configuration for conversion output.
type OutputConfig struct {
	// OutputFile is the path to save the conversions (empty for no file output).
	OutputFile string
	// Quiet mode prints only the converted values.
	Quiet bool
	// Descriptor is the mask descriptor recorded in the file header.
	Descriptor string
}

// Conversion pairs an input with its masked or unmasked form.
type Conversion struct {
	Input  string
	Output string
}

// FormatField renders a field's text with CaretMarker inserted at the caret
// rune offset. Offsets outside the text are clamped.
func FormatField(text string, caret int) string {
	runes := []rune(text)
	caret = max(0, min(caret, len(runes)))
	return string(runes[:caret]) + CaretMarker + string(runes[caret:])
}

// DisplayField writes the current text and caret of a field.
func DisplayField(out io.Writer, f *field.MemoryField) {
	fmt.Fprintf(out, "  %s%s%s\n", ui.ColorBold(), FormatField(f.Text(), f.Caret()), ui.ColorReset())
}

// FormatEvent describes one edit event on a single line.
func FormatEvent(e field.Event) string {
	if e.Outcome.Changed() {
		return fmt.Sprintf("%-14s %q -> %q", e.Outcome.Kind, e.Text, e.Outcome.Result.DisplayText)
	}
	return fmt.Sprintf("%-14s %q", e.Outcome.Kind, e.Text)
}

// DisplayEvent writes an edit event, colored by whether it changed the text.
func DisplayEvent(out io.Writer, e field.Event) {
	color := ui.ColorDim()
	if e.Outcome.Changed() {
		color = ui.ColorGreen()
	}
	fmt.Fprintf(out, "    %s%s%s\n", color, FormatEvent(e), ui.ColorReset())
}

// FormatConversion formats a conversion. Quiet mode returns the output alone.
func FormatConversion(c Conversion, quiet bool) string {
	if quiet {
		return c.Output
	}
	return fmt.Sprintf("%s\t%s", c.Input, c.Output)
}

// DisplayConversions writes one line per conversion and, when requested,
// saves them to a file.
//
// Parameters:
//   - out: The output writer.
//   - convs: The conversions, in input order.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayConversions(out io.Writer, convs []Conversion, config OutputConfig) error {
	for _, c := range convs {
		fmt.Fprintln(out, FormatConversion(c, config.Quiet))
	}

	if config.OutputFile != "" {
		if err := WriteConversionsToFile(convs, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}

// WriteConversionsToFile writes conversions as tab-separated lines under a
// commented header.
//
// Parameters:
//   - convs: The conversions to write.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteConversionsToFile(convs []Conversion, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# moneymask conversions\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Mask: %s\n", config.Descriptor)
	fmt.Fprintf(file, "# Values: %d\n", len(convs))
	fmt.Fprintf(file, "\n")

	for _, c := range convs {
		if _, err := fmt.Fprintln(file, FormatConversion(c, false)); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}
	return nil
}
