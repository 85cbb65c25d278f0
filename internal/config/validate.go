// CUE schema validation and semantic checks
package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

// ValidateWithCue validates a YAML configuration file using a CUE schema file.
func ValidateWithCue(configFile, cueFile string) error {
	ctx := cuecontext.New()

	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML config: %w", err)
	}
	yamlFile, err := yaml.Extract(configFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("cannot parse YAML config: %w", err)
	}
	configVal := ctx.BuildFile(yamlFile)

	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes)

	final := configVal.Unify(schemaVal)
	if final.Err() != nil {
		return fmt.Errorf("schema unify failed: %w", final.Err())
	}
	if err := final.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Validate applies semantic checks the schema cannot express. It must reject
// any configuration that would make the engine misbehave before the first
// tick runs.
func (c *Config) Validate() error {
	if c.AreaSize <= 0 {
		return fmt.Errorf("area_size must be positive, got %v", c.AreaSize)
	}
	if c.TickSeconds <= 0 {
		return fmt.Errorf("tick_seconds must be positive, got %v", c.TickSeconds)
	}
	if c.Drones.Count <= 0 {
		return fmt.Errorf("drones.count must be positive, got %d", c.Drones.Count)
	}
	if c.Drones.SpeedMps <= 0 {
		return fmt.Errorf("drones.speed_mps must be positive, got %v", c.Drones.SpeedMps)
	}
	if c.Drones.Battery.Initial <= 0 {
		return fmt.Errorf("drones.battery.initial must be positive, got %v", c.Drones.Battery.Initial)
	}
	if c.Drones.CoverageRadius <= 0 || c.Drones.SearchRadius <= 0 {
		return fmt.Errorf("coverage and search radii must be positive")
	}
	if c.Network.MaxRangeM <= 0 {
		return fmt.Errorf("network.max_range_m must be positive, got %v", c.Network.MaxRangeM)
	}
	if c.Network.LinkCapacityMbps <= 0 {
		return fmt.Errorf("network.link_capacity_mbps must be positive, got %v", c.Network.LinkCapacityMbps)
	}
	if c.Network.HopPenalty <= 0 || c.Network.HopPenalty > 1 {
		return fmt.Errorf("network.hop_penalty must be in (0, 1], got %v", c.Network.HopPenalty)
	}
	if c.Network.LOSFactor <= 0 || c.Network.LOSFactor > 1 {
		return fmt.Errorf("network.los_factor must be in (0, 1], got %v", c.Network.LOSFactor)
	}
	if c.Clusters.MinCrew <= 0 {
		return fmt.Errorf("clusters.min_crew must be positive, got %d", c.Clusters.MinCrew)
	}
	if c.Clusters.FormationThreshold <= 0 {
		return fmt.Errorf("clusters.formation_threshold must be positive, got %d", c.Clusters.FormationThreshold)
	}
	if c.Victims.Isolated < 0 {
		return fmt.Errorf("victims.isolated must not be negative, got %d", c.Victims.Isolated)
	}
	for i, z := range c.Victims.Zones {
		if z.Count <= 0 {
			return fmt.Errorf("victims.zones[%d].count must be positive, got %d", i, z.Count)
		}
		if z.X < 0 || z.X > c.AreaSize || z.Y < 0 || z.Y > c.AreaSize {
			return fmt.Errorf("victims.zones[%d] at (%v, %v) lies outside the area", i, z.X, z.Y)
		}
	}
	if c.Victims.Isolated == 0 && len(c.Victims.Zones) == 0 {
		return fmt.Errorf("no victims configured")
	}
	return nil
}
