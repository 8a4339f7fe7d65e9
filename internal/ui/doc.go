// Package ui provides the Bubble Tea terminal interface for carpool.
//
// # Architecture
//
// Model is the root tea.Model. It owns a navigation history whose current
// location selects the page, and at most one live page controller:
//
//   - home.go: role chooser at "/"
//   - trips.go: trip list at /trips/{role}, driven by a listing.Controller
//   - details.go: one trip at /{role}/trip-details/{id}, driven by a
//     lifecycle.Controller
//   - newtrip.go: the passenger's booking form at /new-trip
//   - logs.go: overlay tailing carpool's own log file
//
// # Concurrency
//
// Controllers are only touched inside Update. Registry calls run in tea.Cmd
// closures (commands.go) that return typed messages; each message carries
// the controller that issued it so results for an unmounted page are
// dropped by that controller.
//
// # Navigation
//
// Filter changes replace the current history entry; opening a page pushes a
// new one. "[" and "]" walk the history, and the list re-reads its filters
// from the location it lands on.
package ui
