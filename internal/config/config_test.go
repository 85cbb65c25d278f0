package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Valid(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "scenario.yaml")
	yaml := `
area_size: 800
drones:
  count: 4
  speed_mps: 6
victims:
  isolated: 3
  zones:
    - {x: 200, y: 200, count: 10}
`
	if err := os.WriteFile(tmpFile, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	cfg, err := Load(tmpFile, "../../schemas/simulation.cue")
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.AreaSize != 800 {
		t.Errorf("AreaSize = %v, want 800", cfg.AreaSize)
	}
	if cfg.Drones.Count != 4 {
		t.Errorf("Drones.Count = %d, want 4", cfg.Drones.Count)
	}
	// Omitted fields keep defaults.
	if cfg.Network.HopPenalty != 0.7 {
		t.Errorf("HopPenalty default lost: %v", cfg.Network.HopPenalty)
	}
	if cfg.Drones.Battery.Initial != 15000 {
		t.Errorf("Battery.Initial default lost: %v", cfg.Drones.Battery.Initial)
	}
}

func TestLoadConfig_SchemaRejectsBadValues(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "scenario.yaml")
	yaml := `
drones:
  count: -3
`
	if err := os.WriteFile(tmpFile, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if _, err := Load(tmpFile, "../../schemas/simulation.cue"); err == nil {
		t.Fatalf("Load() accepted negative drone count")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero drones", func(c *Config) { c.Drones.Count = 0 }, true},
		{"negative area", func(c *Config) { c.AreaSize = -1 }, true},
		{"hop penalty above one", func(c *Config) { c.Network.HopPenalty = 1.5 }, true},
		{"zone outside area", func(c *Config) { c.Victims.Zones[0].X = 9999 }, true},
		{"no victims at all", func(c *Config) { c.Victims.Isolated = 0; c.Victims.Zones = nil }, true},
		{"zero battery", func(c *Config) { c.Drones.Battery.Initial = 0 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tc.wantErr)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
