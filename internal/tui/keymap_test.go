package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/moneymask/internal/ui"
)

func TestKeyMapRouting(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want *key.Binding
	}{
		{"esc quits", tea.KeyMsg{Type: tea.KeyEsc}, &km.Quit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, &km.Quit},
		{"ctrl+r resets", tea.KeyMsg{Type: tea.KeyCtrlR}, &km.Reset},
		{"tab toggles events", tea.KeyMsg{Type: tea.KeyTab}, &km.ToggleEvents},
		{"q is typed", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, nil},
		{"digits are typed", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("7")}, nil},
		{"backspace is typed", tea.KeyMsg{Type: tea.KeyBackspace}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, b := range []*key.Binding{&km.Quit, &km.Reset, &km.ToggleEvents} {
				if got := key.Matches(tt.msg, *b); got != (b == tt.want) {
					t.Errorf("key.Matches(%q, %v) = %v", tt.msg.String(), b.Keys(), got)
				}
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	short := km.ShortHelp()
	if len(short) != 3 {
		t.Fatalf("ShortHelp() has %d bindings, want 3", len(short))
	}
	for _, b := range short {
		if b.Help().Key == "" || b.Help().Desc == "" {
			t.Errorf("binding %v has no help", b.Keys())
		}
	}
	if len(km.FullHelp()) != 1 {
		t.Errorf("FullHelp() has %d rows, want 1", len(km.FullHelp()))
	}
}

func TestHeaderView(t *testing.T) {
	s := NewStyles(ui.NoColorTheme.TUI)
	tests := []struct {
		version string
		want    string
		absent  string
	}{
		{"v1.2.0", "Moneymask v1.2.0 | mask currency/R$ | write-back detach", ""},
		{"dev", "Moneymask | mask currency/R$", "dev"},
	}
	for _, tt := range tests {
		h := NewHeaderModel(tt.version, "currency/R$", "detach", s)
		h.SetWidth(70)
		view := h.View()
		if !strings.Contains(view, tt.want) {
			t.Errorf("View() = %q, want it to contain %q", view, tt.want)
		}
		if tt.absent != "" && strings.Contains(view, tt.absent) {
			t.Errorf("View() = %q, should not contain %q", view, tt.absent)
		}
	}
}
