package field

import (
	"strings"
	"testing"

	"github.com/agbru/moneymask/internal/numfmt"
)

func dollarListener() *NumberListener {
	return NewNumberListener(numfmt.New(numfmt.MustConfig(numfmt.WithPrefix("$"))))
}

type recorder struct {
	kinds          []numfmt.OutcomeKind
	bound, unbound int
}

func (r *recorder) ObserveEdit(e Event) { r.kinds = append(r.kinds, e.Outcome.Kind) }
func (r *recorder) FieldBound()         { r.bound++ }
func (r *recorder) FieldUnbound()       { r.unbound++ }

func TestBindingStrategies(t *testing.T) {
	t.Parallel()
	for _, strategy := range []WriteBack{DetachDuringWriteBack, GuardOnly} {
		strategy := strategy
		t.Run(strategy.String(), func(t *testing.T) {
			t.Parallel()
			f := NewMemoryField("$")
			b := Bind(f, dollarListener(), WithWriteBack(strategy))

			f.Type("1234.567")
			if got := f.Text(); got != "$1,234.56" {
				t.Errorf("Text() = %q, want %q", got, "$1,234.56")
			}
			if f.Caret() != 9 {
				t.Errorf("Caret() = %d, want 9", f.Caret())
			}
			if f.Violations() != 0 {
				t.Errorf("Violations() = %d, want 0", f.Violations())
			}
			if f.Watchers() != 1 {
				t.Errorf("Watchers() = %d, want 1", f.Watchers())
			}
			if b.Strategy() != strategy {
				t.Errorf("Strategy() = %v, want %v", b.Strategy(), strategy)
			}
		})
	}
}

func TestGuardOnlySeesItsOwnOutput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		strategy WriteBack
		want     []numfmt.OutcomeKind
	}{
		{DetachDuringWriteBack, []numfmt.OutcomeKind{numfmt.Reformatted}},
		{GuardOnly, []numfmt.OutcomeKind{numfmt.Reformatted, numfmt.NoOpUnchanged}},
	}

	for _, tt := range tests {
		rec := &recorder{}
		f := NewMemoryField("$")
		Bind(f, dollarListener(), WithWriteBack(tt.strategy), WithObserver(rec))
		f.Type("7")
		if len(rec.kinds) != len(tt.want) {
			t.Fatalf("%v: events = %v, want %v", tt.strategy, rec.kinds, tt.want)
		}
		for i := range tt.want {
			if rec.kinds[i] != tt.want[i] {
				t.Errorf("%v: event %d = %v, want %v", tt.strategy, i, rec.kinds[i], tt.want[i])
			}
		}
	}
}

func TestDeletionIntoPrefix(t *testing.T) {
	t.Parallel()
	f := NewMemoryField("R$ ")
	Bind(f, NewNumberListener(numfmt.New(numfmt.MustConfig(numfmt.WithPrefix("R$ ")))))

	f.Type("12")
	f.Backspace()
	f.Backspace()
	f.Backspace()
	if got := f.Text(); got != "R$ " {
		t.Errorf("Text() = %q, want %q", got, "R$ ")
	}
	if f.Caret() != 3 {
		t.Errorf("Caret() = %d, want 3", f.Caret())
	}
}

// echoListener always rewrites the text, so without detaching it re-enters
// forever.
type echoListener struct{}

func (echoListener) OnEdit(text string) (numfmt.EditResult, bool) {
	out := text + "!"
	return numfmt.EditResult{DisplayText: out, CaretOffset: len(out)}, true
}

func TestDepthCapStopsRunawayListener(t *testing.T) {
	t.Parallel()
	f := NewMemoryField("")
	f.SetMaxDepth(4)
	Bind(f, echoListener{}, WithWriteBack(GuardOnly))

	f.SetText("a")
	if f.Violations() != 1 {
		t.Errorf("Violations() = %d, want 1", f.Violations())
	}
	if got := f.Text(); got != "a!!!!" {
		t.Errorf("Text() = %q, want %q", got, "a!!!!")
	}
}

func TestDetachRunawayListenerIsSafe(t *testing.T) {
	t.Parallel()
	f := NewMemoryField("")
	Bind(f, echoListener{})
	f.SetText("a")
	if f.Violations() != 0 || f.Text() != "a!" {
		t.Errorf("Text() = %q, Violations() = %d; want %q, 0", f.Text(), f.Violations(), "a!")
	}
}

func TestDetach(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	l := dollarListener()
	f := NewMemoryField("$")
	b := Bind(f, l, WithObserver(rec), WithName("amount"))

	f.Type("5")
	b.Detach()
	b.Detach()

	if b.Attached() {
		t.Error("Attached() should be false after Detach")
	}
	if f.Watchers() != 0 {
		t.Errorf("Watchers() = %d, want 0", f.Watchers())
	}
	if _, ok := l.State().Last(); ok {
		t.Error("listener state should be discarded on Detach")
	}
	f.Type("1234")
	if got := f.Text(); got != "$51234" {
		t.Errorf("Text() = %q, want unformatted %q", got, "$51234")
	}
	if rec.bound != 1 || rec.unbound != 1 {
		t.Errorf("bound/unbound = %d/%d, want 1/1", rec.bound, rec.unbound)
	}
}

func TestRebindReplacesListener(t *testing.T) {
	t.Parallel()
	f := NewMemoryField("")
	b := Bind(f, dollarListener())

	euro := NewNumberListener(numfmt.New(numfmt.MustConfig(numfmt.WithPrefix("€"), numfmt.WithSeparators('.', ','))))
	b.Rebind(euro)
	if f.Watchers() != 1 {
		t.Fatalf("Watchers() = %d, want 1", f.Watchers())
	}
	if b.Listener() != euro {
		t.Error("Listener() should return the new listener")
	}

	f.Type("1234,5")
	if got := f.Text(); got != "€1.234,5" {
		t.Errorf("Text() = %q, want %q", got, "€1.234,5")
	}
}

func TestPlainListenerEvents(t *testing.T) {
	t.Parallel()
	var kinds []string
	f := NewMemoryField("")
	Bind(f, echoListener{}, WithObserver(ObserverFunc(func(e Event) {
		kinds = append(kinds, e.Outcome.Kind.String())
	})))
	f.SetText("x")
	if strings.Join(kinds, ",") != "reformatted" {
		t.Errorf("kinds = %v, want [reformatted]", kinds)
	}
}

func TestMemoryField(t *testing.T) {
	t.Parallel()
	f := NewMemoryField("€1")
	if f.Caret() != 2 {
		t.Errorf("Caret() = %d, want 2", f.Caret())
	}
	f.SetSelection(10)
	if f.Caret() != 2 {
		t.Errorf("SetSelection should clamp, Caret() = %d", f.Caret())
	}
	f.SetSelection(-1)
	if f.Caret() != 0 {
		t.Errorf("SetSelection should clamp, Caret() = %d", f.Caret())
	}
	f.Backspace()
	f.Backspace()
	f.Backspace()
	if f.Text() != "" {
		t.Errorf("Text() = %q, want empty", f.Text())
	}
	if f.Writes() != 2 {
		t.Errorf("Writes() = %d, want 2", f.Writes())
	}
}
