// Package registry provides an HTTP client for the trip registry.
//
// # Overview
//
// The registry stores trips and the regions used to filter them. This package
// wraps its small JSON surface and turns every failure into one of four typed
// errors so that callers can decide what to show without string matching.
//
// # Endpoints
//
//   - GET /regions: region reference list
//   - GET /trips?from=&tariff=&status=&_page=&_per_page=: one page of trips
//   - GET /trips/:id: a single trip
//   - PUT /trips/:id: full-document replace
//   - POST /trips: create a trip
//
// Absent filter values are omitted from the query string. The registry treats
// an empty value as a filter on the empty string, which matches nothing.
//
// # Errors
//
//   - *NetworkError: transport failure, the request never got an answer
//   - *RegistryError: non-success status, or a body that did not decode
//   - *NotFoundError: GET /trips/:id answered with a non-success status
//   - *UpdateError: PUT /trips/:id answered with a non-success status
//
// Use errors.As to classify and Message to produce the user-facing text.
//
// # Request Handling
//
// Every request carries Accept: application/json, a carpool User-Agent and a
// fresh X-Request-ID. The id is attached to the debug log record for the
// request so registry-side logs can be correlated.
//
// The client performs no caching and no retries.
package registry
