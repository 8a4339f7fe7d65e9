package registryserver

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/five82/carpool/internal/registry"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial content of a dev registry.
type Seed struct {
	Regions []registry.Region
	Trips   []registry.Trip
}

type seedFile struct {
	Regions []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"regions"`
	Trips []struct {
		ID     string `yaml:"id"`
		From   string `yaml:"from"`
		To     string `yaml:"to"`
		Tariff string `yaml:"tariff"`
		Status string `yaml:"status"`
		Region string `yaml:"region"`
	} `yaml:"trips"`
}

// DefaultSeed returns the built-in sample data.
func DefaultSeed() (Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads seed data from a YAML file. An empty path yields the
// built-in sample data.
func LoadSeed(path string) (Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed: %w", err)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return Seed{}, fmt.Errorf("%s: %w", path, err)
	}
	return seed, nil
}

// ParseSeed decodes and validates YAML seed data.
func ParseSeed(data []byte) (Seed, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}

	var seed Seed
	for _, r := range file.Regions {
		seed.Regions = append(seed.Regions, registry.Region{ID: r.ID, Name: r.Name})
	}
	seen := make(map[string]bool, len(file.Trips))
	for i, t := range file.Trips {
		if t.ID == "" {
			return Seed{}, fmt.Errorf("trip %d: missing id", i)
		}
		if seen[t.ID] {
			return Seed{}, fmt.Errorf("trip %d: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = true

		tariff, ok := registry.ParseTariff(t.Tariff)
		if !ok {
			return Seed{}, fmt.Errorf("trip %q: unknown tariff %q", t.ID, t.Tariff)
		}
		status, ok := registry.ParseStatus(t.Status)
		if !ok {
			return Seed{}, fmt.Errorf("trip %q: unknown status %q", t.ID, t.Status)
		}
		trip := registry.Trip{
			ID:     t.ID,
			From:   t.From,
			To:     t.To,
			Tariff: tariff,
			Status: status,
			Region: t.Region,
		}
		if err := registry.ValidateTrip(trip); err != nil {
			return Seed{}, fmt.Errorf("trip %q: %w", t.ID, err)
		}
		seed.Trips = append(seed.Trips, trip)
	}
	return seed, nil
}
