// Package state holds the trips and regions served by the development
// registry.
//
// Store is guarded by a sync.RWMutex: many readers, one writer at a time.
// Every value going in or out is copied, including each trip's preserved
// unknown fields, so callers never share memory with the store.
//
// Filtering mirrors the registry's query semantics: a region filter matches
// a trip's region or, for trips created without one, its from address;
// tariff and status match by equality.
package state
