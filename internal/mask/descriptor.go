package mask

import (
	"strings"

	apperrors "github.com/agbru/moneymask/internal/errors"
)

// Kind tells which engine a descriptor selects.
type Kind int

const (
	KindCurrency Kind = iota
	KindPattern
)

func (k Kind) String() string {
	if k == KindPattern {
		return "pattern"
	}
	return "currency"
}

const currencyKeyword = "currency"

// Descriptor is a parsed mask descriptor.
type Descriptor struct {
	Kind Kind
	// Prefix is the explicit currency prefix. It is only meaningful when
	// HasPrefix is set; "currency/" yields an explicit empty prefix.
	Prefix    string
	HasPrefix bool
	// Pattern is the raw pattern for KindPattern.
	Pattern string
}

// ParseDescriptor parses a mask descriptor. The currency keyword is matched
// case-insensitively; everything after the first '/' is the literal prefix.
func ParseDescriptor(s string) (Descriptor, error) {
	if s == "" {
		return Descriptor{}, apperrors.ValidationError{Field: "mask", Message: "descriptor is empty"}
	}

	head, prefix, found := strings.Cut(s, "/")
	if strings.EqualFold(head, currencyKeyword) {
		return Descriptor{Kind: KindCurrency, Prefix: prefix, HasPrefix: found}, nil
	}
	return Descriptor{Kind: KindPattern, Pattern: s}, nil
}

func (d Descriptor) String() string {
	switch {
	case d.Kind == KindPattern:
		return d.Pattern
	case d.HasPrefix:
		return currencyKeyword + "/" + d.Prefix
	default:
		return currencyKeyword
	}
}
