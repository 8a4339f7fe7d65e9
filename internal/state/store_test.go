package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/five82/carpool/internal/registry"
)

func seedStore() *Store {
	return NewStore(
		[]registry.Region{{ID: "1", Name: "North"}, {ID: "2", Name: "South"}},
		[]registry.Trip{
			{ID: "a", From: "1 Main St", To: "Airport", Tariff: registry.TariffEconomy, Status: registry.StatusPlanned, Region: "North"},
			{ID: "b", From: "South", To: "Station", Tariff: registry.TariffBusiness, Status: registry.StatusPlanned},
			{ID: "c", From: "2 Side St", To: "Port", Tariff: registry.TariffBusiness, Status: registry.StatusCompleted, Region: "North"},
		},
	)
}

func TestStore_ListFilters(t *testing.T) {
	s := seedStore()
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"a", "b", "c"}},
		{"region", Filter{Region: "North"}, []string{"a", "c"}},
		{"region via from", Filter{Region: "South"}, []string{"b"}},
		{"tariff and status", Filter{Tariff: registry.TariffBusiness, Status: registry.StatusPlanned}, []string{"b"}},
		{"no match", Filter{Region: "East"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, trip := range s.List(tt.filter) {
				got = append(got, trip.ID)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("List(%+v) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestStore_ReplaceAndSnapshotClone(t *testing.T) {
	s := seedStore()
	trip, err := s.Get("a")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	trip.Extra = map[string]json.RawMessage{"note": json.RawMessage(`"gate 4"`)}
	trip.Status = registry.StatusInProgress

	stored, err := s.Replace("a", trip)
	if err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}
	stored.Extra["note"] = json.RawMessage(`"changed"`)

	again, _ := s.Get("a")
	if again.Status != registry.StatusInProgress || string(again.Extra["note"]) != `"gate 4"` {
		t.Fatalf("stored trip = %+v, want InProgress with original note", again)
	}

	if _, err := s.Replace("zzz", trip); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Replace(unknown) error = %v, want ErrNotFound", err)
	}
	trip.Status = "Lost"
	if _, err := s.Replace("a", trip); err == nil {
		t.Fatalf("Replace with invalid status returned nil error")
	}
}

func TestStore_Create(t *testing.T) {
	s := seedStore()
	created, err := s.Create(registry.NewTrip{From: "x", To: "y", Tariff: "comfort", Region: "South"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" || created.Status != registry.StatusPlanned || created.Tariff != registry.TariffComfort {
		t.Fatalf("created = %+v", created)
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
	if _, err := s.Create(registry.NewTrip{From: "x"}); err == nil {
		t.Fatalf("Create with missing fields returned nil error")
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := seedStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Create(registry.NewTrip{From: "a", To: "b", Tariff: registry.TariffEconomy, Region: "North"})
		}()
		go func() {
			defer wg.Done()
			_ = s.List(Filter{Region: "North"})
		}()
	}
	wg.Wait()
	if s.Len() != 11 {
		t.Fatalf("Len = %d, want 11", s.Len())
	}
}
