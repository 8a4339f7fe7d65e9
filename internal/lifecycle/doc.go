// Package lifecycle governs the status of a single trip.
//
// Trips move Planned, InProgress, Arrived, Completed and never back. Only a
// driver is offered the next step; passengers see the trip read-only and a
// completed trip offers nothing to anyone. The registry is not prevented
// from accepting other writes; this package only decides what is offered.
package lifecycle
