package numfmt

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	apperrors "github.com/agbru/moneymask/internal/errors"
)

// localeProbe has enough integer digits to show grouping in locales with a
// minimum grouping of two, and one fraction digit to show the decimal mark.
const localeProbe = 1234567.5

// SeparatorsForLocale returns the grouping and decimal separators CLDR
// defines for a BCP 47 language tag, e.g. "de-DE" yields '.' and ','.
//
// The separators are read back from a probe number rendered by an
// x/text message printer.
func SeparatorsForLocale(tag string) (grouping, decimal rune, err error) {
	t, err := language.Parse(tag)
	if err != nil {
		return 0, 0, apperrors.WrapConfigError(err, "unknown locale %q", tag)
	}

	p := message.NewPrinter(t)
	probe := p.Sprint(number.Decimal(localeProbe, number.MinFractionDigits(1), number.MaxFractionDigits(1)))

	var marks []rune
	for _, r := range probe {
		if !unicode.IsDigit(r) {
			marks = append(marks, r)
		}
	}
	if len(marks) < 2 {
		return 0, 0, apperrors.NewConfigError("locale %q renders %q without grouping", tag, probe)
	}
	grouping, decimal = marks[0], marks[len(marks)-1]
	for _, m := range marks[:len(marks)-1] {
		if m != grouping {
			return 0, 0, apperrors.NewConfigError("locale %q renders %q with mixed grouping marks", tag, probe)
		}
	}
	if grouping == decimal {
		return 0, 0, apperrors.NewConfigError("locale %q renders %q with identical separators", tag, probe)
	}
	return grouping, decimal, nil
}

// CurrencyPrecision returns the number of fraction digits the ISO 4217
// standard uses for a currency code: 2 for USD, 0 for JPY, 3 for KWD.
func CurrencyPrecision(iso string) (int, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(iso))
	if err != nil {
		return 0, apperrors.WrapConfigError(err, "unknown currency %q", iso)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale, nil
}

// HostLocale reports the numeric locale of the process as a BCP 47 tag,
// looking at LC_ALL, LC_NUMERIC and LANG in that order. POSIX values such as
// "de_DE.UTF-8@euro" are converted to "de-DE"; "C" and "POSIX" are ignored.
func HostLocale() (string, bool) {
	for _, key := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		if tag, ok := posixToBCP47(os.Getenv(key)); ok {
			return tag, true
		}
	}
	return "", false
}

func posixToBCP47(v string) (string, bool) {
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if v == "" || v == "C" || v == "POSIX" {
		return "", false
	}
	return strings.ReplaceAll(v, "_", "-"), true
}
