package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s != Default() {
		t.Errorf("Load = %+v, want defaults %+v", s, Default())
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeSettings(t, "waveform_len: 120\nsmooth_waveform: true\n")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.WaveformLen != 120 {
		t.Errorf("WaveformLen = %d, want 120", s.WaveformLen)
	}
	if !s.SmoothWaveform {
		t.Error("SmoothWaveform not applied")
	}
	// Unset keys keep their compiled defaults.
	if s.SamplesPerPoint != SamplesPerPoint {
		t.Errorf("SamplesPerPoint = %d, want default %d", s.SamplesPerPoint, SamplesPerPoint)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	for name, content := range map[string]string{
		"negative points": "waveform_len: -4\n",
		"negative budget": "samples_per_point: -1\n",
		"malformed yaml":  "waveform_len: [oops\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := writeSettings(t, content)
			if _, err := Load(path); err == nil {
				t.Error("Load accepted invalid settings")
			}
		})
	}
}
