package recognizer

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadYAML(t *testing.T) {
	in := `
dpi: 326
slop_inches: 0.05
angle_threshold_radians: 0.4
`
	cfg, err := LoadYAML(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 326.0, cfg.DPI)
	require.Equal(t, 0.05, cfg.SlopInches)
	require.Equal(t, 0.4, cfg.AngleThresholdRadians)
	// Unspecified fields keep their defaults.
	require.Equal(t, DefaultConfig().TapMaxFrames, cfg.TapMaxFrames)
}

func TestLoadJSON(t *testing.T) {
	in := `{"dpi": 160, "pinch_slop_inches": 0.3}`
	cfg, err := LoadJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 160.0, cfg.DPI)
	require.Equal(t, 0.3, cfg.PinchSlopInches)
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dpi", func(c *Config) { c.DPI = 0 }},
		{"negative slop", func(c *Config) { c.SlopInches = -0.1 }},
		{"angle above pi", func(c *Config) { c.AngleThresholdRadians = math.Pi + 1 }},
		{"negative pinch slop", func(c *Config) { c.PinchSlopInches = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadYAMLRejectsInvalid(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("dpi: -5"))
	require.Error(t, err)
}
