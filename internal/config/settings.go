package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the user-tunable knobs, loaded once at startup and fixed
// for the session. Zero values fall back to the compiled defaults.
type Settings struct {
	// WaveformLen overrides the number of waveform points.
	WaveformLen int `yaml:"waveform_len"`

	// SamplesPerPoint overrides the per-point decode budget.
	SamplesPerPoint int `yaml:"samples_per_point"`

	// SmoothWaveform selects bucket-averaged strip rendering instead of
	// peak picking.
	SmoothWaveform bool `yaml:"smooth_waveform"`
}

// Default returns the compiled-in settings.
func Default() Settings {
	return Settings{
		WaveformLen:     WaveformLen,
		SamplesPerPoint: SamplesPerPoint,
	}
}

// Load reads a YAML settings file. A missing file is not an error; the
// defaults apply.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings: %w", err)
	}
	if s.WaveformLen == 0 {
		s.WaveformLen = WaveformLen
	}
	if s.SamplesPerPoint == 0 {
		s.SamplesPerPoint = SamplesPerPoint
	}
	if err := s.validate(); err != nil {
		return Settings{}, fmt.Errorf("validating settings: %w", err)
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.WaveformLen < 1 {
		return fmt.Errorf("waveform_len must be positive, got %d", s.WaveformLen)
	}
	if s.SamplesPerPoint < 1 {
		return fmt.Errorf("samples_per_point must be positive, got %d", s.SamplesPerPoint)
	}
	return nil
}
