package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Errorf("embedded YAML and DefaultPlatformerConfig differ:\n%+v\n%+v", cfg, DefaultPlatformerConfig())
	}
}

func TestLoadPlatformerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("physics:\n  gravity: 500\ncollectibles:\n  chance: 1\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPlatformer(path)
	if err != nil {
		t.Fatalf("LoadPlatformer() failed: %v", err)
	}
	if cfg.Physics.Gravity != 500 {
		t.Errorf("gravity = %v, expected 500", cfg.Physics.Gravity)
	}
	if cfg.Collectibles.Chance != 1 {
		t.Errorf("chance = %v, expected 1", cfg.Collectibles.Chance)
	}
	// Unset fields keep their defaults
	if cfg.Physics.JumpVelocity != -150 {
		t.Errorf("jump_velocity = %v, expected default -150", cfg.Physics.JumpVelocity)
	}
}

func TestLoadPlatformerMissingFile(t *testing.T) {
	_, err := LoadPlatformer(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadPlatformerInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"upward gravity", "physics:\n  gravity: -10\n"},
		{"downward jump", "physics:\n  jump_velocity: 20\n"},
		{"empty height range", "platforms:\n  min_y: 80\n  max_y: 80\n"},
		{"chance above one", "collectibles:\n  chance: 1.5\n"},
		{"no platforms", "platforms:\n  min_count: 0\n"},
		{"speed cap below jump", "physics:\n  max_velocity: 100\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadPlatformer(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("physics: [unterminated"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrInvalid) {
		t.Error("syntax errors should not be reported as validation errors")
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(path, DefaultYAML(), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 400\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != w.Path() {
			t.Errorf("event path = %q, expected %q", got, w.Path())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for config write")
	}
}
