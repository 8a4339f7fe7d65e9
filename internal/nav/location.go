// Package nav models the navigable location of the client: a path plus a
// query string, and the history of locations visited.
//
// The query string is kept in canonical form (keys sorted, values escaped),
// so two locations that carry the same parameters compare equal with ==
// regardless of the order the parameters were written in.
package nav

import (
	"fmt"
	"net/url"
	"strings"
)

// Location is a path plus canonical query.
type Location struct {
	Path     string
	RawQuery string
}

// Root is the home location.
var Root = Location{Path: "/"}

// Parse reads a location such as "/trips/driver?tariff=Business".
// Scheme and host, when present, are ignored.
func Parse(raw string) (Location, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Root, nil
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: %w", raw, err)
	}
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return Location{}, fmt.Errorf("parse location query %q: %w", u.RawQuery, err)
	}
	return Location{Path: cleanPath(u.Path), RawQuery: values.Encode()}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(raw string) Location {
	loc, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return loc
}

// String renders the location as it would appear in an address bar.
func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = "/"
	}
	if l.RawQuery == "" {
		return path
	}
	return path + "?" + l.RawQuery
}

// Query returns a fresh copy of the query parameters.
func (l Location) Query() url.Values {
	values, err := url.ParseQuery(l.RawQuery)
	if err != nil {
		return url.Values{}
	}
	return values
}

// Get returns the first value of key, or "" when absent.
func (l Location) Get(key string) string {
	return l.Query().Get(key)
}

// Has reports whether key is present at all.
func (l Location) Has(key string) bool {
	return l.Query().Has(key)
}

// With returns a copy with key set to value. An empty value removes the key
// instead of writing it empty.
func (l Location) With(key, value string) Location {
	values := l.Query()
	if strings.TrimSpace(value) == "" {
		values.Del(key)
	} else {
		values.Set(key, value)
	}
	l.RawQuery = values.Encode()
	return l
}

// WithPath returns a location at path with no query.
func WithPath(path string) Location {
	return Location{Path: cleanPath(path)}
}

func cleanPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
