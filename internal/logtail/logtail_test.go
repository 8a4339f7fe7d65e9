package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"zero", 0, nil},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParseRecord(t *testing.T) {
	line := `{"time":"2025-10-08T21:01:05.123Z","level":"WARN","msg":"trip update failed","component":"lifecycle","trip_id":"t1","error":"update trip \"t1\": registry returned status 500","status":500}`
	rec := ParseRecord(line)
	if rec.Level != "WARN" || rec.Message != "trip update failed" || rec.Component != "lifecycle" {
		t.Fatalf("record = %+v", rec)
	}
	if rec.Time.IsZero() {
		t.Fatalf("time not parsed")
	}
	keys := make([]string, 0, len(rec.Attrs))
	for _, a := range rec.Attrs {
		keys = append(keys, a.Key)
	}
	if !reflect.DeepEqual(keys, []string{"error", "status", "trip_id"}) {
		t.Fatalf("attr keys = %v, want sorted error/status/trip_id", keys)
	}
	if s := rec.String(); !strings.Contains(s, "[lifecycle] trip update failed") || !strings.Contains(s, "status=500") {
		t.Fatalf("String() = %q", s)
	}

	plain := ParseRecord("panic: something")
	if plain.Raw != "panic: something" || plain.String() != "panic: something" {
		t.Fatalf("plain record = %+v", plain)
	}
}

func TestReadRecords_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carpool.log")
	body := `{"level":"INFO","msg":"one"}` + "\n\n" + `{"level":"DEBUG","msg":"two"}` + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	records, err := ReadRecords(path, 10)
	if err != nil {
		t.Fatalf("ReadRecords error = %v", err)
	}
	if len(records) != 2 || records[1].Message != "two" {
		t.Fatalf("records = %+v", records)
	}
}
