package format

import (
	"strings"
	"unicode/utf8"
)

// DefaultGroupSize is the number of digits between grouping separators in
// standard thousands grouping.
const DefaultGroupSize = 3

// FormatNumberString inserts a comma every three digits from the right.
// A leading minus sign is preserved: "-1234" becomes "-1,234".
//
// Parameters:
//   - s: A string of decimal digits, optionally prefixed with '-'.
//
// Returns:
//   - string: The grouped representation.
func FormatNumberString(s string) string {
	if strings.HasPrefix(s, "-") {
		return "-" + GroupDigits(s[1:], ',', DefaultGroupSize)
	}
	return GroupDigits(s, ',', DefaultGroupSize)
}

// GroupDigits inserts sep between every group of size digits, counting from
// the right. The input is treated as opaque digits; no sign handling is done.
// A size below 1 returns digits unchanged.
//
// Parameters:
//   - digits: The digit run to group.
//   - sep: The grouping separator rune.
//   - size: The number of digits per group.
//
// Returns:
//   - string: The grouped digits.
func GroupDigits(digits string, sep rune, size int) string {
	n := len(digits)
	if size < 1 || n <= size {
		return digits
	}

	var b strings.Builder
	b.Grow(n + (n-1)/size*utf8.RuneLen(sep))

	lead := n % size
	if lead == 0 {
		lead = size
	}
	b.WriteString(digits[:lead])
	for i := lead; i < n; i += size {
		b.WriteRune(sep)
		b.WriteString(digits[i : i+size])
	}
	return b.String()
}
