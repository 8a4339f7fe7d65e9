// Package logtail reads the end of carpool's own log file for display.
//
// Read extracts the last N lines with a ring buffer, so memory use is
// O(N) regardless of file size. ReadRecords decodes those lines as the JSON
// records slog writes, pulling out time, level, message and component and
// keeping the rest as sorted key/value pairs.
//
// A missing log file is not an error: it yields no lines.
package logtail
