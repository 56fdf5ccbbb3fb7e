package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/moneymask/internal/errors"
)

// These tests swap the package-level theme and do not run in parallel.

func keepTheme(t *testing.T) {
	t.Helper()
	prev := Current()
	t.Cleanup(func() { Use(prev) })
}

func TestSetTheme(t *testing.T) {
	keepTheme(t)

	for _, name := range []string{"dark", "LIGHT", "none"} {
		if err := SetTheme(name); err != nil {
			t.Fatalf("SetTheme(%q): %v", name, err)
		}
	}
	if Current().Name != "none" {
		t.Errorf("active theme = %q, want none", Current().Name)
	}

	err := SetTheme("sepia")
	if !apperrors.IsConfigError(err) {
		t.Errorf("SetTheme(sepia) = %v, want a ConfigError", err)
	}
	if Current().Name != "none" {
		t.Error("an unknown theme must leave the active theme alone")
	}
}

func TestThemeNames(t *testing.T) {
	got := ThemeNames()
	want := []string{"dark", "light", "none"}
	if len(got) != len(want) {
		t.Fatalf("ThemeNames() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ThemeNames() = %v, want %v", got, want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	keepTheme(t)

	if err := InitTheme("light", true); err != nil {
		t.Fatal(err)
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("colors should be empty with noColor")
	}
	if _, ok := CurrentTUI().Accent.(lipgloss.NoColor); !ok {
		t.Error("TUI palette should be colorless with noColor")
	}

	if err := InitTheme("", false); err != nil || Current().Name != "dark" {
		t.Errorf("empty name: theme %q, err %v", Current().Name, err)
	}

	t.Setenv("NO_COLOR", "")
	if err := InitTheme("light", false); err != nil || Current().Name != "none" {
		t.Errorf("NO_COLOR: theme %q, err %v", Current().Name, err)
	}
}

func TestColorHelpersFollowTheme(t *testing.T) {
	keepTheme(t)

	prev := Use(LightTheme)
	if prev.Name == "" {
		t.Error("Use should return the replaced theme")
	}
	if ColorGreen() != LightTheme.Success || ColorCyan() != LightTheme.Accent || ColorBold() != "\033[1m" {
		t.Error("color helpers should read the active theme")
	}
	if CurrentTUI() != LightTheme.TUI {
		t.Error("CurrentTUI should return the light palette")
	}
}
