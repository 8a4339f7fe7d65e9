package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/carpool/internal/logtail"
)

func TestStartLocation(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "", want: "/"},
		{raw: "/trips/driver?tariff=Business&from=North", want: "/trips/driver?from=North&tariff=Business"},
		{raw: "http://localhost/passenger/trip-details/7", want: "/passenger/trip-details/7"},
		{raw: "/nowhere", wantErr: true},
		{raw: "/trips/pilot", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			loc, err := startLocation(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("startLocation(%q) = %q, want error", tt.raw, loc.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("startLocation(%q) returned error: %v", tt.raw, err)
			}
			if loc.String() != tt.want {
				t.Fatalf("startLocation(%q) = %q, want %q", tt.raw, loc.String(), tt.want)
			}
		})
	}
}

func TestOpenLogger_WritesJSONRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "carpool.log")
	logger, closeLog, err := openLogger(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("openLogger returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("visible", "component", "app", "trip_id", "7")
	closeLog()

	records, err := logtail.ReadRecords(path, 10)
	if err != nil {
		t.Fatalf("ReadRecords returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1 (debug filtered)", len(records))
	}
	if records[0].Message != "visible" || records[0].Component != "app" {
		t.Fatalf("record = %+v", records[0])
	}
}

func TestOpenLogger_EmptyPathDiscards(t *testing.T) {
	logger, closeLog, err := openLogger("", slog.LevelDebug)
	if err != nil {
		t.Fatalf("openLogger returned error: %v", err)
	}
	defer closeLog()
	logger.Info("dropped")
}

func TestRun_ConfigErrorsAreReported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("page_size = 7\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	err := Run(context.Background(), Options{ConfigPath: path, PrefsPath: filepath.Join(dir, "prefs.toml")})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Run error = %v, want load config failure", err)
	}
}

func TestRun_RejectsUnknownStartLocation(t *testing.T) {
	dir := t.TempDir()
	err := Run(context.Background(), Options{
		ConfigPath: filepath.Join(dir, "missing.toml"),
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		Open:       "/somewhere/else",
	})
	if err == nil || !strings.Contains(err.Error(), "open:") {
		t.Fatalf("Run error = %v, want open failure", err)
	}
}
