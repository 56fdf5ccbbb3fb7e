package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/moneymask/internal/errors"
)

// Profile is a file of named field configurations:
//
//	default = "amount"
//
//	[fields.amount]
//	mask = "currency/$"
//	precision = 2
//
//	[fields.price_eur]
//	mask = "currency/€"
//	locale = "de-DE"
type Profile struct {
	Default string                  `toml:"default" yaml:"default"`
	Fields  map[string]FieldProfile `toml:"fields" yaml:"fields"`
}

// FieldProfile configures one field. Unset entries leave the flag default in
// place.
type FieldProfile struct {
	Mask         *string `toml:"mask,omitempty" yaml:"mask,omitempty"`
	Prefix       *string `toml:"prefix,omitempty" yaml:"prefix,omitempty"`
	Precision    *int    `toml:"precision,omitempty" yaml:"precision,omitempty"`
	Grouping     *string `toml:"grouping,omitempty" yaml:"grouping,omitempty"`
	Decimal      *string `toml:"decimal,omitempty" yaml:"decimal,omitempty"`
	Locale       *string `toml:"locale,omitempty" yaml:"locale,omitempty"`
	Currency     *string `toml:"currency,omitempty" yaml:"currency,omitempty"`
	Rounding     *string `toml:"rounding,omitempty" yaml:"rounding,omitempty"`
	EmptyInteger *string `toml:"empty_integer,omitempty" yaml:"empty_integer,omitempty"`
	Negative     *bool   `toml:"negative,omitempty" yaml:"negative,omitempty"`
	WriteBack    *string `toml:"write_back,omitempty" yaml:"write_back,omitempty"`
}

type profileFormat int

const (
	formatTOML profileFormat = iota
	formatYAML
)

func formatFor(path string) (profileFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, apperrors.NewConfigError("unsupported profile format %q (want .toml, .yaml or .yml)", path)
}

// LoadProfile reads a TOML or YAML profile, chosen by file extension.
func LoadProfile(path string) (*Profile, error) {
	format, err := formatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.WrapConfigError(err, "reading profile")
	}

	var p Profile
	switch format {
	case formatTOML:
		err = toml.Unmarshal(data, &p)
	case formatYAML:
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, apperrors.WrapConfigError(err, "parsing profile %s", path)
	}
	return &p, nil
}

// SaveProfile writes a profile in the format chosen by file extension.
func SaveProfile(path string, p *Profile) error {
	format, err := formatFor(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch format {
	case formatTOML:
		err = toml.NewEncoder(&buf).Encode(p)
	case formatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(p)
		if err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return apperrors.WrapError(err, "encoding profile")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return apperrors.WrapError(err, "writing profile")
	}
	return nil
}

// Lookup returns the named field, or the default field when name is empty.
// A profile with a single field needs no default.
func (p *Profile) Lookup(name string) (FieldProfile, error) {
	if name == "" {
		name = p.Default
	}
	if name == "" && len(p.Fields) == 1 {
		for only := range p.Fields {
			name = only
		}
	}
	fp, ok := p.Fields[name]
	if !ok {
		return FieldProfile{}, apperrors.NewConfigError("profile has no field %q (have %s)", name, strings.Join(p.Names(), ", "))
	}
	return fp, nil
}

// Names returns the field names in sorted order.
func (p *Profile) Names() []string {
	names := make([]string, 0, len(p.Fields))
	for name := range p.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfileFrom captures the formatter settings of a configuration.
func ProfileFrom(c AppConfig) FieldProfile {
	fp := FieldProfile{
		Mask:         &c.Mask,
		Rounding:     &c.Rounding,
		EmptyInteger: &c.EmptyInteger,
		Negative:     &c.Negative,
		WriteBack:    &c.WriteBack,
	}
	if c.Prefix != "" {
		fp.Prefix = &c.Prefix
	}
	if c.Precision != PrecisionAuto {
		fp.Precision = &c.Precision
	}
	if c.Grouping != "" {
		fp.Grouping = &c.Grouping
	}
	if c.Decimal != "" {
		fp.Decimal = &c.Decimal
	}
	if c.Locale != "" {
		fp.Locale = &c.Locale
	}
	if c.Currency != "" {
		fp.Currency = &c.Currency
	}
	return fp
}

// applyProfile copies the profile values whose flag was not set on the
// command line. Environment overrides are applied afterwards.
func applyProfile(c *AppConfig, fp FieldProfile, fs *flag.FlagSet) {
	setString := func(flagName string, dst *string, v *string) {
		if v != nil && !isFlagSet(fs, flagName) {
			*dst = *v
		}
	}
	setString("mask", &c.Mask, fp.Mask)
	setString("prefix", &c.Prefix, fp.Prefix)
	setString("grouping", &c.Grouping, fp.Grouping)
	setString("decimal", &c.Decimal, fp.Decimal)
	setString("locale", &c.Locale, fp.Locale)
	setString("currency", &c.Currency, fp.Currency)
	setString("rounding", &c.Rounding, fp.Rounding)
	setString("empty-integer", &c.EmptyInteger, fp.EmptyInteger)
	setString("write-back", &c.WriteBack, fp.WriteBack)

	if fp.Precision != nil && !isFlagSet(fs, "precision") {
		c.Precision = *fp.Precision
	}
	if fp.Negative != nil && !isFlagSet(fs, "negative") {
		c.Negative = *fp.Negative
	}
}
