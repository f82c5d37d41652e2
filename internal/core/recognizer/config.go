package recognizer

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/touchsync/touchsync/internal/core/touch"
)

// Config holds the tunable recognition thresholds. Set once at engine
// construction, read-only afterwards.
type Config struct {
	// DPI is the display density used to convert pixel travel to inches.
	DPI float64 `json:"dpi" yaml:"dpi"`
	// SlopInches is the minimum physical travel before incidental motion is
	// treated as intentional gesture input.
	SlopInches float64 `json:"slop_inches" yaml:"slop_inches"`
	// AngleThresholdRadians is the maximum angular deviation between two
	// fingers' motion vectors for them to count as co-directional.
	AngleThresholdRadians float64 `json:"angle_threshold_radians" yaml:"angle_threshold_radians"`
	// PinchSlopInches is the minimum physical separation change before a
	// pinch is recognized.
	PinchSlopInches float64 `json:"pinch_slop_inches" yaml:"pinch_slop_inches"`
	// TapMaxFrames is how many frames a press may last and still complete as
	// a tap. Zero disables the budget.
	TapMaxFrames uint64 `json:"tap_max_frames" yaml:"tap_max_frames"`
}

// DefaultConfig returns thresholds that behave reasonably on a phone-class
// display at 60 frames per second.
func DefaultConfig() Config {
	return Config{
		DPI:                   touch.DefaultDPI,
		SlopInches:            0.1,
		AngleThresholdRadians: math.Pi / 8,
		PinchSlopInches:       0.15,
		TapMaxFrames:          30,
	}
}

// Validate checks the thresholds are usable.
func (c Config) Validate() error {
	if c.DPI <= 0 {
		return fmt.Errorf("recognizer: dpi must be positive, got %v", c.DPI)
	}
	if c.SlopInches < 0 {
		return fmt.Errorf("recognizer: slop_inches must not be negative, got %v", c.SlopInches)
	}
	if c.AngleThresholdRadians < 0 || c.AngleThresholdRadians > math.Pi {
		return fmt.Errorf("recognizer: angle_threshold_radians must be in [0, π], got %v", c.AngleThresholdRadians)
	}
	if c.PinchSlopInches < 0 {
		return fmt.Errorf("recognizer: pinch_slop_inches must not be negative, got %v", c.PinchSlopInches)
	}
	return nil
}

// LoadYAML reads a config from YAML. Absent fields keep their defaults.
func LoadYAML(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("recognizer: decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadJSON reads a config from JSON. Absent fields keep their defaults.
func LoadJSON(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("recognizer: decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
