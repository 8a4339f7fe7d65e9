package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Record is one decoded log line.
type Record struct {
	Time      time.Time
	Level     string
	Message   string
	Component string
	Attrs     []Attr
	// Raw holds the line as written when it was not JSON.
	Raw string
}

// Attr is a key/value pair beyond the standard fields.
type Attr struct {
	Key   string
	Value string
}

// ReadRecords returns up to maxLines decoded records from the end of the
// JSON log at path.
func ReadRecords(path string, maxLines int) ([]Record, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, ParseRecord(line))
	}
	return records, nil
}

// ParseRecord decodes a line written by slog's JSON handler. Lines that are
// not JSON objects come back with only Raw set.
func ParseRecord(line string) Record {
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return Record{Raw: line}
	}

	rec := Record{
		Level:     stringField(fields, "level"),
		Message:   stringField(fields, "msg"),
		Component: stringField(fields, "component"),
	}
	if ts := stringField(fields, "time"); ts != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Time = parsed
		}
	}
	for _, key := range []string{"time", "level", "msg", "component"} {
		delete(fields, key)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rec.Attrs = append(rec.Attrs, Attr{Key: k, Value: formatValue(fields[k])})
	}
	return rec
}

// String renders the record on one line.
func (r Record) String() string {
	if r.Raw != "" {
		return r.Raw
	}
	var b strings.Builder
	if !r.Time.IsZero() {
		b.WriteString(r.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(r.Level)
	if r.Component != "" {
		b.WriteString(" [" + r.Component + "]")
	}
	b.WriteString(" " + r.Message)
	for _, a := range r.Attrs {
		b.WriteString(" " + a.Key + "=" + a.Value)
	}
	return b.String()
}

func stringField(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case nil:
		return "null"
	case float64, bool:
		return fmt.Sprint(val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(encoded)
	}
}
