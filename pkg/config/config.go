// Package config loads the simulator configuration from a JSON file with
// environment variable overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Simulation SimulationConfig `json:"simulation"`
	Auth       AuthConfig       `json:"auth"`

	// ClassesPath is an optional YAML vessel class catalog. Classes in it
	// replace built-in classes of the same name.
	ClassesPath string `json:"classes_path,omitempty"`

	// Fleet lists the vessels spawned at startup
	Fleet []VesselConfig `json:"fleet"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Port is the HTTP server port (default: 8080)
	Port string `json:"port"`

	// Host is the server bind address (default: "0.0.0.0")
	Host string `json:"host"`

	// AllowedOrigins for CORS; empty allows any origin
	AllowedOrigins []string `json:"allowed_origins,omitempty"`
}

// SimulationConfig contains the loop rates of the simulation.
type SimulationConfig struct {
	// PhysicsRateHz is the fixed physics step rate (default: 60)
	PhysicsRateHz int `json:"physics_rate_hz"`

	// RenderRateHz is how often frames are pushed to observers (default: 20)
	RenderRateHz int `json:"render_rate_hz"`

	// StartPaused starts the simulation with the physics loop paused
	StartPaused bool `json:"start_paused"`
}

// AuthConfig contains API authentication settings.
type AuthConfig struct {
	// JWTSecret signs API tokens (should be loaded from environment)
	JWTSecret string `json:"jwt_secret"`

	// TokenHours is how long an issued token stays valid (default: 12)
	TokenHours int `json:"token_hours"`

	// Operators are the accounts allowed to log in
	Operators []OperatorConfig `json:"operators"`
}

// OperatorConfig is a single login account.
type OperatorConfig struct {
	Username string `json:"username"`

	// PasswordHash is a bcrypt hash of the password
	PasswordHash string `json:"password_hash"`

	// Role is "commander" (can give orders) or "observer" (read-only)
	Role string `json:"role"`
}

// VesselConfig is the initial state of a vessel.
type VesselConfig struct {
	Name  string `json:"name"`
	Class string `json:"class"`

	// Latitude in decimal degrees (-90 to +90)
	Latitude float64 `json:"latitude"`

	// Longitude in decimal degrees (-180 to +180)
	Longitude float64 `json:"longitude"`

	// AltitudeM in meters, negative below the surface
	AltitudeM float64 `json:"altitude_m"`

	// CourseDeg is the initial true course in degrees
	CourseDeg float64 `json:"course_deg"`

	SpeedKnots float64 `json:"speed_knots"`

	// Throttle is the initial throttle setting (0-1)
	Throttle float64 `json:"throttle"`
}

// Load reads configuration from a JSON file.
// If the file doesn't exist, returns a default configuration.
// Fields missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Read file
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg.applyEnvironmentOverrides()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON. A fleet in the file replaces the default fleet.
	defaultFleet := cfg.Fleet
	cfg.Fleet = nil
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Fleet == nil {
		cfg.Fleet = defaultFleet
	}

	// Override with environment variables
	cfg.applyEnvironmentOverrides()

	return cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to JSON with indentation
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Host: "0.0.0.0",
		},
		Simulation: SimulationConfig{
			PhysicsRateHz: 60,
			RenderRateHz:  20,
			StartPaused:   false,
		},
		Auth: AuthConfig{
			JWTSecret:  "dev-secret-change-in-production",
			TokenHours: 12,
		},
		Fleet: []VesselConfig{
			{
				Name:       "Espora",
				Class:      "frigate",
				Latitude:   -38.05,
				Longitude:  -57.50,
				CourseDeg:  90,
				SpeedKnots: 12,
				Throttle:   0.4,
			},
			{
				Name:       "Salta",
				Class:      "submarine",
				Latitude:   -38.20,
				Longitude:  -57.20,
				AltitudeM:  -50,
				CourseDeg:  0,
				SpeedKnots: 6,
				Throttle:   0.3,
			},
			{
				Name:       "Indomita",
				Class:      "patrol-boat",
				Latitude:   -38.00,
				Longitude:  -57.10,
				CourseDeg:  225,
				SpeedKnots: 20,
				Throttle:   0.5,
			},
		},
	}
}

// PhysicsStep returns the fixed physics time step.
func (s *SimulationConfig) PhysicsStep() time.Duration {
	return time.Second / time.Duration(s.PhysicsRateHz)
}

// RenderInterval returns the time between frames pushed to observers.
func (s *SimulationConfig) RenderInterval() time.Duration {
	return time.Second / time.Duration(s.RenderRateHz)
}

// TokenDuration returns how long issued tokens stay valid.
func (a *AuthConfig) TokenDuration() time.Duration {
	return time.Duration(a.TokenHours) * time.Hour
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.PhysicsRateHz <= 0 {
		return fmt.Errorf("simulation.physics_rate_hz must be positive, got %d", c.Simulation.PhysicsRateHz)
	}
	if c.Simulation.RenderRateHz <= 0 {
		return fmt.Errorf("simulation.render_rate_hz must be positive, got %d", c.Simulation.RenderRateHz)
	}
	if c.Simulation.RenderRateHz > c.Simulation.PhysicsRateHz {
		return fmt.Errorf("simulation.render_rate_hz (%d) exceeds physics_rate_hz (%d)",
			c.Simulation.RenderRateHz, c.Simulation.PhysicsRateHz)
	}
	if c.Auth.TokenHours <= 0 {
		return fmt.Errorf("auth.token_hours must be positive, got %d", c.Auth.TokenHours)
	}
	for i, op := range c.Auth.Operators {
		if op.Username == "" || op.PasswordHash == "" {
			return fmt.Errorf("auth.operators[%d]: username and password_hash are required", i)
		}
		if op.Role != "commander" && op.Role != "observer" {
			return fmt.Errorf("auth.operators[%d]: unknown role %q", i, op.Role)
		}
	}

	names := make(map[string]bool, len(c.Fleet))
	for i, v := range c.Fleet {
		if v.Name == "" || v.Class == "" {
			return fmt.Errorf("fleet[%d]: name and class are required", i)
		}
		if names[v.Name] {
			return fmt.Errorf("fleet[%d]: duplicate vessel name %q", i, v.Name)
		}
		names[v.Name] = true
		if v.Throttle < 0 || v.Throttle > 1 {
			return fmt.Errorf("fleet[%d]: throttle must be between 0 and 1, got %f", i, v.Throttle)
		}
		if v.SpeedKnots < 0 {
			return fmt.Errorf("fleet[%d]: speed_knots must not be negative", i)
		}
	}
	return nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
// This allows secrets to be kept out of config files.
func (c *Config) applyEnvironmentOverrides() {
	if port := os.Getenv("SHIPCOMMAND_PORT"); port != "" {
		c.Server.Port = port
	}
	if secret := os.Getenv("SHIPCOMMAND_JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}
	if classes := os.Getenv("SHIPCOMMAND_CLASSES_PATH"); classes != "" {
		c.ClassesPath = classes
	}
}
