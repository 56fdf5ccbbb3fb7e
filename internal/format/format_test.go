package format

import (
	"testing"
	"time"
)

// TestFormatExecutionDuration verifies duration formatting.
func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0\u00b5s"},
		{10 * time.Microsecond, "10\u00b5s"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
		{1234567890 * time.Nanosecond, "1.235s"},
		{90 * time.Second, "1m30s"},
	}

	for _, tt := range tests {
		got := FormatExecutionDuration(tt.d)
		if got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatRate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		count int
		d     time.Duration
		want  string
	}{
		{10, 0, "-"},
		{500, time.Second, "500/s"},
		{25000, 2 * time.Second, "12,500/s"},
		{3, 10 * time.Millisecond, "300/s"},
	}
	for _, tt := range tests {
		if got := FormatRate(tt.count, tt.d); got != tt.want {
			t.Errorf("FormatRate(%d, %v) = %q; want %q", tt.count, tt.d, got, tt.want)
		}
	}
}

// TestFormatNumberString verifies thousand separator formatting.
func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
	}

	for _, tt := range tests {
		got := FormatNumberString(tt.input)
		if got != tt.expected {
			t.Errorf("FormatNumberString(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

// TestGroupDigits verifies grouping with custom separators and group sizes.
func TestGroupDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		digits string
		sep    rune
		size   int
		want   string
	}{
		{"empty", "", ',', 3, ""},
		{"single group", "999", ',', 3, "999"},
		{"exact multiple", "123456789", ',', 3, "123,456,789"},
		{"dot separator", "1234567", '.', 3, "1.234.567"},
		{"multibyte separator", "1234567", '\u202f', 3, "1\u202f234\u202f567"},
		{"group of four", "123456789", ',', 4, "1,2345,6789"},
		{"size zero leaves digits", "123456", ',', 0, "123456"},
		{"leading zeros kept", "0001234", ',', 3, "0,001,234"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GroupDigits(tt.digits, tt.sep, tt.size); got != tt.want {
				t.Errorf("GroupDigits(%q, %q, %d) = %q; want %q", tt.digits, tt.sep, tt.size, got, tt.want)
			}
		})
	}
}
