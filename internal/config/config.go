// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Point is a fixed 3D position in the area.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Battery defines initial charge and per-tick drain rates by activity.
type Battery struct {
	Initial     float64 `yaml:"initial"`
	DrainIdle   float64 `yaml:"drain_idle"`
	DrainMoving float64 `yaml:"drain_moving"`
	DrainRelay  float64 `yaml:"drain_relay"`
}

// Drones defines the fleet and its physical envelope.
type Drones struct {
	Count          int     `yaml:"count"`
	SpeedMps       float64 `yaml:"speed_mps"`
	AltitudeM      float64 `yaml:"altitude_m"`
	CoverageRadius float64 `yaml:"coverage_radius_m"`
	SearchRadius   float64 `yaml:"search_radius_m"`
	Battery        Battery `yaml:"battery"`
}

// Network defines the abstract link capacity model and base infrastructure.
type Network struct {
	Tower            Point   `yaml:"tower"`
	Station          Point   `yaml:"station"`
	MaxRangeM        float64 `yaml:"max_range_m"`
	LinkCapacityMbps float64 `yaml:"link_capacity_mbps"`
	BackhaulMbps     float64 `yaml:"backhaul_capacity_mbps"`
	HopPenalty       float64 `yaml:"hop_penalty"`
	LOSFactor        float64 `yaml:"los_factor"`
}

// Clusters defines victim-cluster detection and crew formation thresholds.
type Clusters struct {
	MinCrew            int     `yaml:"min_crew"`
	FormationThreshold int     `yaml:"formation_threshold"`
	ProximityM         float64 `yaml:"proximity_m"`
}

// Zone places a dense victim zone in the area.
type Zone struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Count int     `yaml:"count"`
}

// Victims defines the victim population.
type Victims struct {
	Isolated int    `yaml:"isolated"`
	Zones    []Zone `yaml:"zones"`
}

// Config is the root simulation configuration.
type Config struct {
	AreaSize    float64  `yaml:"area_size"`
	TickSeconds float64  `yaml:"tick_seconds"`
	Seed        int64    `yaml:"seed"`
	Drones      Drones   `yaml:"drones"`
	Network     Network  `yaml:"network"`
	Clusters    Clusters `yaml:"clusters"`
	Victims     Victims  `yaml:"victims"`
}

// Default returns the baseline disaster-relief scenario.
func Default() *Config {
	return &Config{
		AreaSize:    500,
		TickSeconds: 1,
		Seed:        42,
		Drones: Drones{
			Count:          8,
			SpeedMps:       5,
			AltitudeM:      80,
			CoverageRadius: 120,
			SearchRadius:   150,
			Battery: Battery{
				Initial:     15000,
				DrainIdle:   15,
				DrainMoving: 25,
				DrainRelay:  30,
			},
		},
		Network: Network{
			Tower:            Point{X: 250, Y: 250, Z: 100},
			Station:          Point{X: 250, Y: 250, Z: 0},
			MaxRangeM:        300,
			LinkCapacityMbps: 100,
			BackhaulMbps:     1000,
			HopPenalty:       0.7,
			LOSFactor:        1.0,
		},
		Clusters: Clusters{
			MinCrew:            3,
			FormationThreshold: 10,
			ProximityM:         100,
		},
		Victims: Victims{
			Isolated: 5,
			Zones: []Zone{
				{X: 350, Y: 150, Count: 15},
				{X: 150, Y: 350, Count: 15},
			},
		},
	}
}

// Load reads a YAML config, validates it against a CUE schema, and applies
// semantic validation. Values omitted from the file keep their defaults.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
