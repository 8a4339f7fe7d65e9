package state

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/five82/carpool/internal/registry"
)

// ErrNotFound is returned for an unknown trip id.
var ErrNotFound = errors.New("trip not found")

// Filter selects trips. Empty fields match everything.
type Filter struct {
	Region string
	Tariff registry.Tariff
	Status registry.Status
}

func (f Filter) match(t registry.Trip) bool {
	if f.Region != "" && t.Region != f.Region && t.From != f.Region {
		return false
	}
	if f.Tariff != "" && t.Tariff != f.Tariff {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	return true
}

// Store is an in-memory trip registry safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	trips   []registry.Trip
	regions []registry.Region
	newID   func() string
}

// NewStore returns a store seeded with copies of regions and trips.
func NewStore(regions []registry.Region, trips []registry.Trip) *Store {
	s := &Store{newID: uuid.NewString}
	s.regions = slices.Clone(regions)
	s.trips = cloneTrips(trips)
	return s
}

// Regions returns a copy of the region list.
func (s *Store) Regions() []registry.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.regions)
}

// List returns the trips matching f, oldest first.
func (s *Store) List(f Filter) []registry.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []registry.Trip
	for _, t := range s.trips {
		if f.match(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Get returns the trip with id.
func (s *Store) Get(id string) (registry.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(id); i >= 0 {
		return s.trips[i].Clone(), nil
	}
	return registry.Trip{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
}

// Replace overwrites the trip with id by doc. The stored id is always id.
func (s *Store) Replace(id string, doc registry.Trip) (registry.Trip, error) {
	doc.ID = id
	if err := registry.ValidateTrip(doc); err != nil {
		return registry.Trip{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return registry.Trip{}, fmt.Errorf("replace %q: %w", id, ErrNotFound)
	}
	s.trips[i] = doc.Clone()
	return doc.Clone(), nil
}

// Create stores a new planned trip and returns it with its assigned id.
func (s *Store) Create(req registry.NewTrip) (registry.Trip, error) {
	if err := req.Validate(); err != nil {
		return registry.Trip{}, err
	}
	tariff, _ := registry.ParseTariff(string(req.Tariff))
	trip := registry.Trip{
		From:   req.From,
		To:     req.To,
		Tariff: tariff,
		Status: registry.StatusPlanned,
		Region: req.Region,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	trip.ID = s.newID()
	s.trips = append(s.trips, trip)
	return trip.Clone(), nil
}

// Len returns the number of stored trips.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trips)
}

func (s *Store) index(id string) int {
	for i, t := range s.trips {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTrips(trips []registry.Trip) []registry.Trip {
	if len(trips) == 0 {
		return nil
	}
	dup := make([]registry.Trip, len(trips))
	for i, t := range trips {
		dup[i] = t.Clone()
	}
	return dup
}
