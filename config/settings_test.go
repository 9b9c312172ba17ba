package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/foodrank/core"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.TopN != 10 || s.Weights != core.DefaultWeights() || s.DatasetsDir != "datasets" {
		t.Errorf("defaults = %+v", s)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodrank.yaml")
	content := `
datasets_dir: /data
dataset: 46
top_n: 5
weights:
  rating: 1
  price: 0
  value: 0
  bags: 0
  distance: 0
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOODRANK_TOP_N", "3")
	t.Setenv("FOODRANK_WEIGHTS_DISTANCE", "0.5")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.DatasetsDir != "/data" || s.Dataset != 46 {
		t.Errorf("file values not applied: %+v", s)
	}
	if s.TopN != 3 {
		t.Errorf("TopN = %d, env should override file", s.TopN)
	}
	want := core.WeightVector{Rating: 1, Distance: 0.5}
	if s.Weights != want {
		t.Errorf("Weights = %+v, want %+v", s.Weights, want)
	}
	if s.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", s.Log.Level)
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero top_n", func(s *Settings) { s.TopN = 0 }},
		{"negative weight", func(s *Settings) { s.Weights.Price = -0.1 }},
		{"redis without addr", func(s *Settings) { s.Redis.Enabled = true; s.Redis.Addr = "" }},
		{"bad log level", func(s *Settings) { s.Log.Level = "verbose" }},
		{"empty datasets dir", func(s *Settings) { s.DatasetsDir = "" }},
	}
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := map[string]string{
		"FOODRANK_TOP_N":          "top_n",
		"FOODRANK_DATASETS_DIR":   "datasets_dir",
		"FOODRANK_WEIGHTS_RATING": "weights.rating",
		"FOODRANK_REDIS_ADDR":     "redis.addr",
		"FOODRANK_LOG_FORMAT":     "log.format",
	}
	for in, want := range tests {
		if got := envTransform(in); got != want {
			t.Errorf("envTransform(%q) = %q, want %q", in, got, want)
		}
	}
}
