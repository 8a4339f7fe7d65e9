package registry

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxAddressLength bounds the from/to fields of a trip.
const MaxAddressLength = 200

// Tariff is the fare class of a trip.
type Tariff string

const (
	TariffEconomy  Tariff = "Economy"
	TariffComfort  Tariff = "Comfort"
	TariffBusiness Tariff = "Business"
)

// Tariffs lists every tariff in display order.
var Tariffs = []Tariff{TariffEconomy, TariffComfort, TariffBusiness}

// ParseTariff returns the tariff named by s. Matching ignores case and
// surrounding whitespace.
func ParseTariff(s string) (Tariff, bool) {
	trimmed := strings.TrimSpace(s)
	for _, t := range Tariffs {
		if strings.EqualFold(string(t), trimmed) {
			return t, true
		}
	}
	return "", false
}

// Status is a trip's lifecycle position.
type Status string

const (
	StatusPlanned    Status = "Planned"
	StatusInProgress Status = "InProgress"
	StatusArrived    Status = "Arrived"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPlanned, StatusInProgress, StatusArrived, StatusCompleted}

// ParseStatus returns the status named by s, ignoring case.
func ParseStatus(s string) (Status, bool) {
	trimmed := strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(string(st), trimmed) {
			return st, true
		}
	}
	return "", false
}

// Label returns a human readable status name.
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "In progress"
	case "":
		return "Unknown"
	default:
		return string(s)
	}
}

// Terminal reports whether no further lifecycle step exists.
func (s Status) Terminal() bool {
	return s == StatusCompleted
}

// Trip mirrors a trip document held by the registry.
//
// Keys the client does not know about are kept in Extra so that a
// full-document update sends them back unchanged.
type Trip struct {
	ID     string
	From   string
	To     string
	Tariff Tariff
	Status Status
	Region string
	Extra  map[string]json.RawMessage
}

type tripWire struct {
	ID     string `json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Tariff Tariff `json:"tariff"`
	Status Status `json:"status"`
	Region string `json:"region,omitempty"`
}

var tripKeys = map[string]struct{}{
	"id": {}, "from": {}, "to": {}, "tariff": {}, "status": {}, "region": {},
}

// UnmarshalJSON decodes a trip, accepting numeric ids.
func (t *Trip) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var wire struct {
		tripWire
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	id, err := decodeID(wire.ID)
	if err != nil {
		return err
	}
	*t = Trip{
		ID:     id,
		From:   wire.From,
		To:     wire.To,
		Tariff: wire.Tariff,
		Status: wire.Status,
		Region: wire.Region,
	}
	for k, v := range fields {
		if _, known := tripKeys[k]; known {
			continue
		}
		if t.Extra == nil {
			t.Extra = make(map[string]json.RawMessage)
		}
		t.Extra[k] = v
	}
	return nil
}

// MarshalJSON encodes the trip including any preserved unknown keys.
func (t Trip) MarshalJSON() ([]byte, error) {
	wire := tripWire{
		ID:     t.ID,
		From:   t.From,
		To:     t.To,
		Tariff: t.Tariff,
		Status: t.Status,
		Region: t.Region,
	}
	if len(t.Extra) == 0 {
		return json.Marshal(wire)
	}
	base, err := json.Marshal(wire)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]json.RawMessage, len(t.Extra)+6)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range t.Extra {
		if _, known := tripKeys[k]; known {
			continue
		}
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Clone returns a copy that shares no mutable state with t.
func (t Trip) Clone() Trip {
	dup := t
	if t.Extra != nil {
		dup.Extra = make(map[string]json.RawMessage, len(t.Extra))
		for k, v := range t.Extra {
			dup.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return dup
}

// WithStatus returns a copy of the trip with only the status changed.
func (t Trip) WithStatus(status Status) Trip {
	dup := t.Clone()
	dup.Status = status
	return dup
}

// Region is reference data used to filter trips.
type Region struct {
	ID   string
	Name string
}

// UnmarshalJSON decodes a region, accepting numeric ids.
func (r *Region) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID   json.RawMessage `json:"id"`
		Name string          `json:"name"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	id, err := decodeID(wire.ID)
	if err != nil {
		return err
	}
	r.ID = id
	r.Name = wire.Name
	return nil
}

// MarshalJSON encodes the region.
func (r Region) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{r.ID, r.Name})
}

// TripPage is one page of trips plus pagination metadata.
type TripPage struct {
	Data         []Trip
	CurrentPage  int
	PreviousPage int // zero when there is none
	NextPage     int // zero when there is none
	LastPage     int
	PageCount    int
	ItemCount    int
}

// pageEnvelope is the registry's paginated response body.
type pageEnvelope struct {
	First int    `json:"first"`
	Prev  *int   `json:"prev"`
	Next  *int   `json:"next"`
	Last  int    `json:"last"`
	Pages int    `json:"pages"`
	Items int    `json:"items"`
	Data  []Trip `json:"data"`
}

func (e pageEnvelope) page(requested int) TripPage {
	p := TripPage{
		Data:        e.Data,
		CurrentPage: requested,
		LastPage:    e.Last,
		PageCount:   e.Pages,
		ItemCount:   e.Items,
	}
	if e.Prev != nil {
		p.PreviousPage = *e.Prev
	}
	if e.Next != nil {
		p.NextPage = *e.Next
	}
	return p
}

// NewTrip is the body of a trip creation request.
type NewTrip struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Tariff Tariff `json:"tariff"`
	Region string `json:"region"`
}

// Validate reports the first problem with the request, if any.
func (n NewTrip) Validate() error {
	if err := validateAddress("from", n.From); err != nil {
		return err
	}
	if err := validateAddress("to", n.To); err != nil {
		return err
	}
	if _, ok := ParseTariff(string(n.Tariff)); !ok {
		return fmt.Errorf("unknown tariff %q", n.Tariff)
	}
	if strings.TrimSpace(n.Region) == "" {
		return fmt.Errorf("region is required")
	}
	return nil
}

// ValidateTrip checks the fields the registry requires of a stored trip.
func ValidateTrip(t Trip) error {
	if err := validateAddress("from", t.From); err != nil {
		return err
	}
	if err := validateAddress("to", t.To); err != nil {
		return err
	}
	if _, ok := ParseTariff(string(t.Tariff)); !ok {
		return fmt.Errorf("unknown tariff %q", t.Tariff)
	}
	if _, ok := ParseStatus(string(t.Status)); !ok {
		return fmt.Errorf("unknown status %q", t.Status)
	}
	return nil
}

func validateAddress(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(value) > MaxAddressLength {
		return fmt.Errorf("%s exceeds %d characters", field, MaxAddressLength)
	}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("decode id: %w", err)
	}
	return n.String(), nil
}
