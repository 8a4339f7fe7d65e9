package registryserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/five82/carpool/internal/registry"
	"github.com/five82/carpool/internal/state"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestStore(t *testing.T) *state.Store {
	t.Helper()
	seed, err := DefaultSeed()
	if err != nil {
		t.Fatalf("DefaultSeed returned error: %v", err)
	}
	return state.NewStore(seed.Regions, seed.Trips)
}

func serve(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListTrips_PaginatesWithEnvelope(t *testing.T) {
	trips := make([]registry.Trip, 23)
	for i := range trips {
		trips[i] = registry.Trip{
			ID:     string(rune('a' + i)),
			From:   "North",
			To:     "Airport",
			Tariff: registry.TariffEconomy,
			Status: registry.StatusPlanned,
		}
	}
	r := NewRouter(state.NewStore(nil, trips), nil)

	w := serve(t, r, http.MethodGet, "/trips?_page=3&_per_page=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got pageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Items != 23 || got.Pages != 3 || got.Last != 3 || got.First != 1 {
		t.Fatalf("envelope = %+v, want items=23 pages=3 last=3", got)
	}
	if got.Prev == nil || *got.Prev != 2 {
		t.Fatalf("prev = %v, want 2", got.Prev)
	}
	if got.Next != nil {
		t.Fatalf("next = %d, want null on last page", *got.Next)
	}
	if len(got.Data) != 3 {
		t.Fatalf("len(data) = %d, want 3", len(got.Data))
	}

	w = serve(t, r, http.MethodGet, "/trips?_page=1&_per_page=10", "")
	if !strings.Contains(w.Body.String(), `"prev":null`) {
		t.Fatalf("body = %s, want prev null on first page", w.Body.String())
	}
}

func TestListTrips_Filters(t *testing.T) {
	r := NewRouter(newTestStore(t), nil)

	w := serve(t, r, http.MethodGet, "/trips?from=Downtown&tariff=Economy&status=Planned&_page=1&_per_page=20", "")
	var got pageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Items == 0 {
		t.Fatalf("items = 0, want matches from seed")
	}
	for _, trip := range got.Data {
		if trip.Region != "Downtown" || trip.Tariff != registry.TariffEconomy || trip.Status != registry.StatusPlanned {
			t.Fatalf("trip %+v does not match filter", trip)
		}
	}
}

func TestListTrips_UnpagedReturnsArray(t *testing.T) {
	r := NewRouter(newTestStore(t), nil)
	w := serve(t, r, http.MethodGet, "/trips?status=Completed", "")
	var got []registry.Trip
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode array: %v (body %s)", err, w.Body.String())
	}
	if len(got) == 0 {
		t.Fatalf("len = 0, want completed trips")
	}
}

func TestListTrips_RejectsBadPage(t *testing.T) {
	r := NewRouter(newTestStore(t), nil)
	for _, target := range []string{"/trips?_page=0", "/trips?_page=x", "/trips?_page=1&_per_page=-2"} {
		if w := serve(t, r, http.MethodGet, target, ""); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", target, w.Code)
		}
	}
}

func TestListTrips_PagePastEndIsEmpty(t *testing.T) {
	r := NewRouter(newTestStore(t), nil)
	targets := []string{
		"/trips?_page=99&_per_page=4",
		"/trips?_page=4611686018427387904&_per_page=4",
		"/trips?_page=2&_per_page=9223372036854775807",
	}
	for _, target := range targets {
		w := serve(t, r, http.MethodGet, target, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200 (body %s)", target, w.Code, w.Body.String())
		}
		var got pageResponse
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("%s: decode: %v", target, err)
		}
		if len(got.Data) != 0 {
			t.Fatalf("%s: data has %d trips, want none", target, len(got.Data))
		}
		if got.Items == 0 || got.Next != nil {
			t.Fatalf("%s: envelope = %+v, want items counted and no next page", target, got)
		}
	}
}

func TestTripByID(t *testing.T) {
	r := NewRouter(newTestStore(t), nil)

	if w := serve(t, r, http.MethodGet, "/trips/1", ""); w.Code != http.StatusOK {
		t.Fatalf("GET /trips/1 status = %d, want 200", w.Code)
	}
	w := serve(t, r, http.MethodGet, "/trips/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /trips/missing status = %d, want 404", w.Code)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("response missing %s", requestIDHeader)
	}
}

func TestReplaceTrip(t *testing.T) {
	r := NewRouter(newTestStore(t), nil)

	body := `{"id":"1","from":"Downtown","to":"Airport Terminal 1","tariff":"Economy","status":"InProgress","note":"gate B"}`
	w := serve(t, r, http.MethodPut, "/trips/1", body)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var got registry.Trip
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != registry.StatusInProgress {
		t.Fatalf("status = %q, want InProgress", got.Status)
	}
	if string(got.Extra["note"]) != `"gate B"` {
		t.Fatalf("extra note = %s, want preserved", got.Extra["note"])
	}

	if w := serve(t, r, http.MethodPut, "/trips/nope", body); w.Code != http.StatusNotFound {
		t.Fatalf("PUT unknown status = %d, want 404", w.Code)
	}
	if w := serve(t, r, http.MethodPut, "/trips/1", `{"from":"","to":"x","tariff":"Economy","status":"Planned"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("PUT invalid status = %d, want 400", w.Code)
	}
}

func TestCreateTrip(t *testing.T) {
	store := newTestStore(t)
	r := NewRouter(store, nil)
	before := store.Len()

	w := serve(t, r, http.MethodPost, "/trips", `{"from":"Harbor","to":"Stadium","tariff":"Comfort","region":"Harbor"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	var got registry.Trip
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID == "" || got.Status != registry.StatusPlanned {
		t.Fatalf("created = %+v, want id and Planned", got)
	}
	if store.Len() != before+1 {
		t.Fatalf("store len = %d, want %d", store.Len(), before+1)
	}

	if w := serve(t, r, http.MethodPost, "/trips", `{"from":"Harbor","to":"","tariff":"Comfort","region":"Harbor"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("POST invalid status = %d, want 400", w.Code)
	}
}

func TestNoRouteIsJSON(t *testing.T) {
	r := NewRouter(newTestStore(t), nil)
	w := serve(t, r, http.MethodGet, "/nowhere", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := NewRouter(newTestStore(t), nil)
	req := httptest.NewRequest(http.MethodGet, "/regions", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("%s = %q, want abc-123", requestIDHeader, got)
	}
}

// The client and dev server agree on the wire contract end to end.
func TestClientAgainstServer(t *testing.T) {
	server := httptest.NewServer(NewRouter(newTestStore(t), nil))
	t.Cleanup(server.Close)

	client, err := registry.NewClient(server.URL, 2*time.Second, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	regions, err := client.ListRegions(ctx)
	if err != nil || len(regions) == 0 {
		t.Fatalf("ListRegions = %v, %v; want regions", regions, err)
	}

	page, err := client.ListTrips(ctx, registry.TripQuery{Status: registry.StatusPlanned, Page: 1, PerPage: 5})
	if err != nil {
		t.Fatalf("ListTrips returned error: %v", err)
	}
	if page.CurrentPage != 1 || len(page.Data) == 0 || len(page.Data) > 5 {
		t.Fatalf("page = %+v, want first page of at most 5", page)
	}

	trip := page.Data[0]
	updated, err := client.UpdateTripStatus(ctx, trip.ID, trip.WithStatus(registry.StatusInProgress))
	if err != nil {
		t.Fatalf("UpdateTripStatus returned error: %v", err)
	}
	if updated.Status != registry.StatusInProgress {
		t.Fatalf("status = %q, want InProgress", updated.Status)
	}

	_, err = client.GetTrip(ctx, "does-not-exist")
	var nf *registry.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("GetTrip error = %v, want *NotFoundError", err)
	}

	created, err := client.CreateTrip(ctx, registry.NewTrip{From: "Airport", To: "Harbor", Tariff: registry.TariffBusiness, Region: "Airport"})
	if err != nil {
		t.Fatalf("CreateTrip returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("created id empty")
	}
}
