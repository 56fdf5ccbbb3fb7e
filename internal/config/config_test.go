package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/moneymask/internal/errors"
	"github.com/agbru/moneymask/internal/field"
	"github.com/agbru/moneymask/internal/numfmt"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("moneymask", nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, ModeREPL, cfg.Mode)
	assert.Equal(t, DefaultMask, cfg.Mask)
	assert.Equal(t, PrecisionAuto, cfg.Precision)
	assert.Equal(t, "truncate", cfg.Rounding)
	assert.Equal(t, "zero", cfg.EmptyInteger)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "-", cfg.Input)
	assert.Empty(t, cfg.Args)
}

func TestParseConfigFlags(t *testing.T) {
	args := []string{
		"-mode", "format", "-prefix", "R$ ", "-precision", "3",
		"-grouping", ".", "-decimal", ",", "-rounding", "half-even",
		"-negative", "-write-back", "guard", "-o", "out.txt", "-q",
		"1234,5678", "-12",
	}
	cfg, err := ParseConfig("moneymask", args, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, ModeFormat, cfg.Mode)
	assert.Equal(t, "R$ ", cfg.Prefix)
	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, "out.txt", cfg.OutputFile)
	assert.True(t, cfg.Quiet)
	assert.True(t, cfg.Negative)
	assert.Equal(t, []string{"1234,5678", "-12"}, cfg.Args)

	wb, err := cfg.WriteBackStrategy()
	require.NoError(t, err)
	assert.Equal(t, field.GuardOnly, wb)

	opts, err := cfg.FormatterOptions()
	require.NoError(t, err)
	f := numfmt.New(numfmt.MustConfig(opts...))
	assert.Equal(t, "R$ 1.234,568", f.Format("1234,5675"))
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown mode", []string{"-mode", "gui"}},
		{"unknown flag", []string{"-frobnicate"}},
		{"long grouping", []string{"-grouping", "ab"}},
		{"same separators", []string{"-grouping", ".", "-decimal", "."}},
		{"bad rounding", []string{"-rounding", "nearest"}},
		{"bad empty integer", []string{"-empty-integer", "none"}},
		{"bad write back", []string{"-write-back", "never"}},
		{"bad precision", []string{"-precision", "-2"}},
		{"bad currency", []string{"-currency", "QQQ"}},
		{"bad locale", []string{"-locale", "!!"}},
		{"format without values", []string{"-mode", "format"}},
		{"zero timeout", []string{"-timeout", "0s"}},
		{"empty mask", []string{"-mask", ""}},
		{"unknown theme", []string{"-theme", "sepia"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("moneymask", tt.args, io.Discard)
			require.Error(t, err)
			assert.True(t, apperrors.IsConfigError(err), "want ConfigError, got %T: %v", err, err)
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	_, err := ParseConfig("moneymask", []string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"PRECISION", "4")
	t.Setenv(EnvPrefix+"PREFIX", "€")
	t.Setenv(EnvPrefix+"TIMEOUT", "5s")
	t.Setenv(EnvPrefix+"JSON", "yes")
	t.Setenv(EnvPrefix+"WORKERS", "not a number")
	t.Setenv(EnvPrefix+"METRICS_ADDR", ":9191")
	t.Setenv(EnvPrefix+"THEME", "light")

	cfg, err := ParseConfig("moneymask", []string{"-prefix", "$"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Precision, "env applies when the flag is unset")
	assert.Equal(t, "$", cfg.Prefix, "flag wins over env")
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.JSON)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers, "invalid env values are ignored")
	assert.Equal(t, ":9191", cfg.MetricsAddr)
	assert.Equal(t, "light", cfg.Theme)
}

func TestEnvOverridesRespectShortFlags(t *testing.T) {
	t.Setenv(EnvPrefix+"QUIET", "no")
	t.Setenv(EnvPrefix+"OUTPUT", "env.tsv")
	t.Setenv(EnvPrefix+"PRECISION", "abc")

	cfg, err := ParseConfig("moneymask", []string{"-q", "-o", "flag.tsv"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, "flag.tsv", cfg.OutputFile)
	assert.Equal(t, PrecisionAuto, cfg.Precision, "a rejected value keeps the default")
}

func TestEnvKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "MONEYMASK_METRICS_ADDR", EnvKey("metrics-addr"))
	assert.Equal(t, "MONEYMASK_NO_COLOR", EnvKey("no-color"))
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	assert.True(t, parseBoolEnv("TRUE", false))
	assert.True(t, parseBoolEnv("1", false))
	assert.False(t, parseBoolEnv("no", true))
	assert.True(t, parseBoolEnv("maybe", true))
}

const tomlProfile = `
default = "amount"

[fields.amount]
mask = "currency/$"
precision = 3
rounding = "half-up"

[fields.price]
mask = "currency/€"
locale = "de-DE"
negative = true
`

const yamlProfile = `
fields:
  total:
    mask: "currency/USD "
    currency: USD
    empty_integer: blank
    write_back: guard
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestProfilePriority(t *testing.T) {
	path := writeFile(t, "fields.toml", tomlProfile)

	cfg, err := ParseConfig("moneymask", []string{"-profile", path}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "currency/$", cfg.Mask)
	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, "half-up", cfg.Rounding)

	cfg, err = ParseConfig("moneymask", []string{"-profile", path, "-field", "price"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "de-DE", cfg.Locale)
	assert.True(t, cfg.Negative)

	t.Setenv(EnvPrefix+"PRECISION", "1")
	cfg, err = ParseConfig("moneymask", []string{"-profile", path, "-rounding", "floor"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Precision, "env wins over profile")
	assert.Equal(t, "floor", cfg.Rounding, "flag wins over profile")
}

func TestProfileFromEnv(t *testing.T) {
	path := writeFile(t, "fields.yaml", yamlProfile)
	t.Setenv(EnvPrefix+"PROFILE", path)

	cfg, err := ParseConfig("moneymask", nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "currency/USD ", cfg.Mask)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "blank", cfg.EmptyInteger)
	assert.Equal(t, "guard", cfg.WriteBack)
}

func TestProfileErrors(t *testing.T) {
	_, err := ParseConfig("moneymask", []string{"-profile", "fields.ini"}, io.Discard)
	assert.True(t, apperrors.IsConfigError(err))

	_, err = ParseConfig("moneymask", []string{"-profile", filepath.Join(t.TempDir(), "missing.toml")}, io.Discard)
	assert.True(t, apperrors.IsConfigError(err))

	bad := writeFile(t, "bad.toml", "fields = [")
	_, err = ParseConfig("moneymask", []string{"-profile", bad}, io.Discard)
	assert.True(t, apperrors.IsConfigError(err))

	good := writeFile(t, "fields.toml", tomlProfile)
	_, err = ParseConfig("moneymask", []string{"-profile", good, "-field", "nope"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount, price")
}

func TestSaveProfile(t *testing.T) {
	t.Parallel()
	cfg := AppConfig{
		Mask: "currency", Prefix: "$", Precision: 3, Rounding: "half-up",
		EmptyInteger: "zero", WriteBack: "detach",
	}
	for _, name := range []string{"saved.toml", "saved.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, SaveProfile(path, &Profile{Default: "a", Fields: map[string]FieldProfile{"a": ProfileFrom(cfg)}}))

		p, err := LoadProfile(path)
		require.NoError(t, err, name)
		fp, err := p.Lookup("")
		require.NoError(t, err, name)
		require.NotNil(t, fp.Prefix, name)
		assert.Equal(t, "$", *fp.Prefix, name)
		require.NotNil(t, fp.Precision, name)
		assert.Equal(t, 3, *fp.Precision, name)
		assert.Nil(t, fp.Locale, name)
	}
}

func TestLookupSingleField(t *testing.T) {
	t.Parallel()
	mask := "currency"
	p := &Profile{Fields: map[string]FieldProfile{"only": {Mask: &mask}}}
	fp, err := p.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, "currency", *fp.Mask)
}

func TestFormatterOptionsKeepsLocaleSeparator(t *testing.T) {
	t.Parallel()
	cfg := AppConfig{Locale: "de-DE", Grouping: " ", Precision: PrecisionAuto, Rounding: "truncate"}
	opts, err := cfg.FormatterOptions()
	require.NoError(t, err)
	c := numfmt.MustConfig(opts...)
	assert.Equal(t, ' ', c.GroupingSeparator())
	assert.Equal(t, ',', c.DecimalSeparator())
}

func TestApplyDefaultsHostLocale(t *testing.T) {
	t.Setenv("LC_ALL", "de_DE.UTF-8")
	cfg := ApplyDefaults(AppConfig{Locale: "host", Workers: 2})
	assert.Equal(t, "de-DE", cfg.Locale)
	assert.Equal(t, 2, cfg.Workers)
}
