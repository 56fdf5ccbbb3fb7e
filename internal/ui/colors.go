package ui

// Helpers returning escape codes of the active theme. With colors off they
// return "", so callers embed them unconditionally.

func ColorReset() string { return Current().Reset }
func ColorBold() string  { return Current().Bold }

// ColorRed is the error color.
func ColorRed() string { return Current().Error }

// ColorGreen is the success color.
func ColorGreen() string { return Current().Success }

// ColorYellow is the warning color.
func ColorYellow() string { return Current().Warning }

// ColorCyan is the accent color, used for values and prompts.
func ColorCyan() string { return Current().Accent }

// ColorMagenta is the info color.
func ColorMagenta() string { return Current().Info }

// ColorDim is the muted color.
func ColorDim() string { return Current().Muted }
