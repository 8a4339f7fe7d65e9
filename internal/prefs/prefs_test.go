package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func writePrefs(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "prefs.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p := Load("")
	if p.Theme != defaultTheme || p.Role != "" {
		t.Fatalf("prefs = %+v, want theme %q and no role", p, defaultTheme)
	}
}

func TestLoad_ReadsDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "carpool")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	writePrefs(t, dir, "theme = \"Slate\"\nrole = \"Driver\"\n")

	p := Load("")
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
	if p.Role != "driver" {
		t.Fatalf("Role = %q, want %q", p.Role, "driver")
	}
}

func TestLoad_UnknownRoleDropped(t *testing.T) {
	p := Load(writePrefs(t, t.TempDir(), "role = \"admin\"\n"))
	if p.Role != "" {
		t.Fatalf("Role = %q, want empty", p.Role)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "subdir", "prefs.toml")

	if err := Save(prefsFile, Prefs{Theme: "Kanagawa", Role: "passenger"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded := Load(prefsFile)
	if loaded.Theme != "Kanagawa" || loaded.Role != "passenger" {
		t.Fatalf("loaded = %+v, want Kanagawa/passenger", loaded)
	}
}

func TestLoad_FallsBackOnBadContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty theme", "theme = \"\"\n"},
		{"invalid toml", "not valid toml {{{\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Load(writePrefs(t, t.TempDir(), tt.body))
			if p.Theme != defaultTheme {
				t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
			}
		})
	}
}
