package lifecycle

import (
	"strings"

	"github.com/five82/carpool/internal/registry"
)

// Role is the actor viewing a trip.
type Role string

const (
	RoleDriver    Role = "driver"
	RolePassenger Role = "passenger"
)

// ParseRole reads a role name, ignoring case.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleDriver:
		return RoleDriver, true
	case RolePassenger:
		return RolePassenger, true
	}
	return "", false
}

// CanTransition reports whether the role may change trip status.
func (r Role) CanTransition() bool {
	return r == RoleDriver
}

// Action is a driver command that advances a trip.
type Action string

const (
	ActionStartTrip Action = "start"
	ActionArrive    Action = "arrive"
	ActionComplete  Action = "complete"
)

// Transition is a single allowed edge in the trip lifecycle.
type Transition struct {
	From   registry.Status
	To     registry.Status
	Action Action
	Label  string
}

var transitionsTable = []Transition{
	{From: registry.StatusPlanned, To: registry.StatusInProgress, Action: ActionStartTrip, Label: "Start trip"},
	{From: registry.StatusInProgress, To: registry.StatusArrived, Action: ActionArrive, Label: "Arrived"},
	{From: registry.StatusArrived, To: registry.StatusCompleted, Action: ActionComplete, Label: "Complete trip"},
}

// TransitionFor returns the edge leaving from via action.
func TransitionFor(from registry.Status, action Action) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Action == action {
			return tr, true
		}
	}
	return Transition{}, false
}

// NextTransition returns the single forward edge leaving from. Completed has
// none.
func NextTransition(from registry.Status) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from {
			return tr, true
		}
	}
	return Transition{}, false
}
