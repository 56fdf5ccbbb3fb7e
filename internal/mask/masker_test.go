package mask_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/moneymask/internal/errors"
	"github.com/agbru/moneymask/internal/field"
	"github.com/agbru/moneymask/internal/mask"
	"github.com/agbru/moneymask/internal/mask/mocks"
	"github.com/agbru/moneymask/internal/numfmt"
)

func TestResolveCurrency(t *testing.T) {
	t.Parallel()
	tests := []struct {
		descriptor string
		opts       []numfmt.Option
		input      string
		wantMask   string
		wantUnmask string
	}{
		{"currency", nil, "1234.567", "1,234.56", "1234.56"},
		{"currency", []numfmt.Option{numfmt.WithPrefix("$")}, "1234", "$1,234", "1234"},
		{"currency/R$ ", []numfmt.Option{numfmt.WithPrefix("$"), numfmt.WithSeparators('.', ',')}, "1234,5", "R$ 1.234,5", "1234.5"},
		{"currency/", []numfmt.Option{numfmt.WithPrefix("$")}, "99", "99", "99"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.descriptor, func(t *testing.T) {
			t.Parallel()
			m, err := mask.ResolveString(tt.descriptor, mask.WithFormatterOptions(tt.opts...))
			if err != nil {
				t.Fatalf("ResolveString(%q) error = %v", tt.descriptor, err)
			}
			got := m.Mask(tt.input)
			if got != tt.wantMask {
				t.Errorf("Mask(%q) = %q, want %q", tt.input, got, tt.wantMask)
			}
			if un := m.Unmask(got); un != tt.wantUnmask {
				t.Errorf("Unmask(%q) = %q, want %q", got, un, tt.wantUnmask)
			}
		})
	}
}

func TestResolveCurrencyListener(t *testing.T) {
	t.Parallel()
	m, err := mask.ResolveString("currency/$")
	if err != nil {
		t.Fatalf("ResolveString error = %v", err)
	}
	f := field.NewMemoryField("$")
	field.Bind(f, m.NewListener())
	f.Type("1000000")
	if f.Text() != "$1,000,000" {
		t.Errorf("Text() = %q, want $1,000,000", f.Text())
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()
	if _, err := mask.ResolveString("[000]"); !apperrors.IsConfigError(err) {
		t.Errorf("pattern without factory error = %v, want ConfigError", err)
	}
	if _, err := mask.ResolveString("currency", mask.WithFormatterOptions(numfmt.WithPrecision(-1))); !apperrors.IsConfigError(err) {
		t.Errorf("invalid precision error = %v, want ConfigError", err)
	}

	boom := errors.New("bad pattern")
	_, err := mask.ResolveString("[", mask.WithPatternFactory(func(string) (mask.PatternMask, error) { return nil, boom }))
	if !errors.Is(err, boom) {
		t.Errorf("factory error = %v, want wrapped %v", err, boom)
	}
	if _, err := mask.ResolveString(""); err == nil {
		t.Error("empty descriptor should fail")
	}
}

func TestPatternMasker(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	pm := mocks.NewMockPatternMask(ctrl)
	pm.EXPECT().Apply("5551234", true).Return(mask.Result{Formatted: "555-1234", Extracted: "5551234", Complete: true}).Times(2)

	m, err := mask.ResolveString("[000]-[0000]", mask.WithPatternFactory(func(pattern string) (mask.PatternMask, error) {
		if pattern != "[000]-[0000]" {
			t.Errorf("factory got pattern %q", pattern)
		}
		return pm, nil
	}))
	if err != nil {
		t.Fatalf("ResolveString error = %v", err)
	}
	if got := m.Mask("5551234"); got != "555-1234" {
		t.Errorf("Mask = %q", got)
	}
	if got := m.Unmask("5551234"); got != "5551234" {
		t.Errorf("Unmask = %q", got)
	}
	if p, ok := m.(*mask.PatternMasker); !ok || p.Pattern() != "[000]-[0000]" {
		t.Errorf("Resolve returned %T", m)
	}
}

func TestPatternListenerChangesOnlyWhenRequired(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	pm := mocks.NewMockPatternMask(ctrl)
	gomock.InOrder(
		pm.EXPECT().Apply("5", true).Return(mask.Result{Formatted: "(5"}),
		pm.EXPECT().Apply("(55", true).Return(mask.Result{Formatted: "(55"}),
	)

	l := mask.NewPatternMasker("([00])", pm).NewListener()

	res, ok := l.OnEdit("5")
	if !ok || res.DisplayText != "(5" || res.CaretOffset != 2 {
		t.Errorf("OnEdit(5) = %+v, %v", res, ok)
	}
	if _, ok := l.OnEdit("(5"); ok {
		t.Error("OnEdit of own output should not write back")
	}
	if _, ok := l.OnEdit("(55"); ok {
		t.Error("OnEdit should not write back text the mask leaves alone")
	}
}

func TestPatternListenerInField(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	pm := mocks.NewMockPatternMask(ctrl)
	pm.EXPECT().Apply(gomock.Any(), true).DoAndReturn(func(text string, _ bool) mask.Result {
		return mask.Result{Formatted: "<" + text + ">"}
	})

	f := field.NewMemoryField("")
	field.Bind(f, mask.NewPatternMasker("x", pm).NewListener(), field.WithWriteBack(field.GuardOnly))
	f.SetText("a")
	if f.Text() != "<a>" || f.Violations() != 0 {
		t.Errorf("Text() = %q, Violations() = %d", f.Text(), f.Violations())
	}
}
