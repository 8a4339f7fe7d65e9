package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/carpool/internal/registry"
)

func TestThemesCoverEveryStatusAndTariff(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, s := range registry.Statuses {
			if th.StatusColors[s] == "" {
				t.Fatalf("%s: no color for status %q", name, s)
			}
		}
		for _, tr := range registry.Tariffs {
			if th.TariffColors[tr] == "" {
				t.Fatalf("%s: no color for tariff %q", name, tr)
			}
		}
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme_FallsBack(t *testing.T) {
	if got := GetTheme("Unknown").Name; got != DefaultThemeName {
		t.Fatalf("GetTheme(Unknown).Name = %q, want %q", got, DefaultThemeName)
	}
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
}

func TestThemeNamesIsACopy(t *testing.T) {
	names := ThemeNames()
	names[0] = "mutated"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames exposed internal slice")
	}
}

func TestBgStyleRenderKeepsSpacing(t *testing.T) {
	bg := NewBgStyle("#101010")
	style := lipgloss.NewStyle().Bold(true)
	for _, text := range []string{"Refresh", "History  back", " padded "} {
		if got := lipgloss.Width(bg.Render(text, style)); got != len(text) {
			t.Fatalf("Render(%q) width = %d, want %d", text, got, len(text))
		}
	}
	if got := bg.Render("", style); got != "" {
		t.Fatalf("Render(\"\") = %q, want empty", got)
	}
}
