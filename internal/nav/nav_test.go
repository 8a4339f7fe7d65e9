package nav

import "testing"

func TestParse_CanonicalQuery(t *testing.T) {
	a := MustParse("/trips/driver?tariff=Business&from=North")
	b := MustParse("/trips/driver/?from=North&tariff=Business")
	if a != b {
		t.Fatalf("locations differ: %q vs %q", a, b)
	}
	if a.String() != "/trips/driver?from=North&tariff=Business" {
		t.Fatalf("String() = %q", a.String())
	}
	if got := MustParse("http://localhost:5173/trips/passenger?tariff=Comfort").String(); got != "/trips/passenger?tariff=Comfort" {
		t.Fatalf("String() = %q, want host stripped", got)
	}
	if got := MustParse(""); got != Root {
		t.Fatalf("Parse(\"\") = %q, want root", got)
	}
}

func TestLocation_WithRemovesEmpty(t *testing.T) {
	loc := MustParse("/trips/driver?from=North")
	loc = loc.With("tariff", "Economy")
	if loc.Get("tariff") != "Economy" || loc.Get("from") != "North" {
		t.Fatalf("With set = %q", loc)
	}
	loc = loc.With("from", "")
	if loc.Has("from") {
		t.Fatalf("With(\"\") kept key: %q", loc)
	}
	if loc.String() != "/trips/driver?tariff=Economy" {
		t.Fatalf("String() = %q", loc.String())
	}
}

func TestLocation_EscapesValues(t *testing.T) {
	loc := WithPath("/trips/driver").With("from", "New York & Co")
	again := MustParse(loc.String())
	if again.Get("from") != "New York & Co" {
		t.Fatalf("round trip from = %q", again.Get("from"))
	}
}

func TestHistory_PushReplaceBackForward(t *testing.T) {
	h := NewHistory(Root)
	if h.CanBack() || h.CanForward() {
		t.Fatalf("fresh history can move")
	}
	h.Push(TripsPath(RoleDriver))
	if !h.CanBack() {
		t.Fatalf("CanBack() = false after Push")
	}
	h.Replace(TripsPath(RoleDriver).With("tariff", "Business"))
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (replace must not add)", h.Len())
	}
	h.Push(DetailsPath(RoleDriver, "7"))

	loc, ok := h.Back()
	if !ok || loc.Get("tariff") != "Business" {
		t.Fatalf("Back() = %q, %v; want list with tariff", loc, ok)
	}
	loc, ok = h.Forward()
	if !ok || Match(loc).TripID != "7" {
		t.Fatalf("Forward() = %q, %v; want details 7", loc, ok)
	}
	if _, ok := h.Forward(); ok {
		t.Fatalf("Forward() at end moved")
	}

	h.Back()
	h.Back()
	if h.CanBack() || !h.CanForward() {
		t.Fatalf("at start: CanBack() = %v, CanForward() = %v", h.CanBack(), h.CanForward())
	}
	h.Push(NewTripPath)
	if h.CanForward() {
		t.Fatalf("Push kept forward entries")
	}
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", Route{Page: PageHome}},
		{"/trips/driver", Route{Page: PageTrips, Role: RoleDriver}},
		{"/trips/passenger?from=North", Route{Page: PageTrips, Role: RolePassenger}},
		{"/new-trip", Route{Page: PageNewTrip, Role: RolePassenger}},
		{"/driver/trip-details/42", Route{Page: PageTripDetails, Role: RoleDriver, TripID: "42"}},
		{"/passenger/trip-details/abc", Route{Page: PageTripDetails, Role: RolePassenger, TripID: "abc"}},
		{"/trips/admin", Route{Page: PageNotFound}},
		{"/nowhere", Route{Page: PageNotFound}},
	}
	for _, tt := range tests {
		if got := Match(MustParse(tt.path)); got != tt.want {
			t.Fatalf("Match(%q) = %+v, want %+v", tt.path, got, tt.want)
		}
	}
}
