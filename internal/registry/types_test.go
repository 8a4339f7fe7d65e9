package registry

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTrip_RoundTripPreservesUnknownKeys(t *testing.T) {
	raw := `{"id":"x","from":"A","to":"B","tariff":"Business","status":"Arrived","rating":5}`
	var trip Trip
	if err := json.Unmarshal([]byte(raw), &trip); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if trip.Tariff != TariffBusiness || trip.Status != StatusArrived {
		t.Fatalf("trip = %+v, want Business/Arrived", trip)
	}
	if string(trip.Extra["rating"]) != "5" {
		t.Fatalf("Extra = %v, want rating 5", trip.Extra)
	}

	encoded, err := json.Marshal(trip)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(encoded), `"rating":5`) {
		t.Fatalf("encoded = %s, want rating preserved", encoded)
	}
	if strings.Contains(string(encoded), `"region"`) {
		t.Fatalf("encoded = %s, want empty region omitted", encoded)
	}
}

func TestRegion_AcceptsNumericID(t *testing.T) {
	var regions []Region
	if err := json.Unmarshal([]byte(`[{"id":1,"name":"North"},{"id":"2","name":"South"}]`), &regions); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if regions[0].ID != "1" || regions[1].ID != "2" || regions[1].Name != "South" {
		t.Fatalf("regions = %+v", regions)
	}
}

func TestParseHelpers(t *testing.T) {
	if got, ok := ParseTariff(" business "); !ok || got != TariffBusiness {
		t.Fatalf("ParseTariff = %q, %v; want Business", got, ok)
	}
	if _, ok := ParseTariff("Luxury"); ok {
		t.Fatalf("ParseTariff(Luxury) ok, want rejection")
	}
	if got, ok := ParseStatus("inprogress"); !ok || got != StatusInProgress {
		t.Fatalf("ParseStatus = %q, %v; want InProgress", got, ok)
	}
	if !StatusCompleted.Terminal() || StatusArrived.Terminal() {
		t.Fatalf("Terminal() wrong for Completed/Arrived")
	}
}

func TestNewTrip_Validate(t *testing.T) {
	valid := NewTrip{From: "A", To: "B", Tariff: TariffEconomy, Region: "North"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	tests := []struct {
		name string
		edit func(*NewTrip)
		want string
	}{
		{"missing from", func(n *NewTrip) { n.From = " " }, "from is required"},
		{"long to", func(n *NewTrip) { n.To = strings.Repeat("x", MaxAddressLength+1) }, "to exceeds"},
		{"bad tariff", func(n *NewTrip) { n.Tariff = "Luxury" }, "unknown tariff"},
		{"missing region", func(n *NewTrip) { n.Region = "" }, "region is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := valid
			tt.edit(&n)
			err := n.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}

	exact := valid
	exact.From = strings.Repeat("é", MaxAddressLength)
	if err := exact.Validate(); err != nil {
		t.Fatalf("Validate(200 runes) returned error: %v", err)
	}
}
