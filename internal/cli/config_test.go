package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeFile(t, "demo.toml", `
width = 512
instances = 2
dead_zone = 2.5
log_level = "debug"
show_fps = true
`)
	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 512 || cfg.Height != 256 {
		t.Errorf("size = %dx%d, want 512x256", cfg.Width, cfg.Height)
	}
	if cfg.Instances != 2 || cfg.DeadZone != 2.5 || cfg.LogLevel != "debug" || !cfg.ShowFPS {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Title != DefaultConfig().Title || !cfg.Deep {
		t.Error("unset fields lost their defaults")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	cfg, err := LoadConfig(missing, true)
	if err != nil {
		t.Fatalf("optional missing file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if _, err := LoadConfig(missing, false); err == nil {
		t.Error("expected an error for a required missing file")
	}
	if cfg, err := LoadConfig("", false); err != nil || cfg != DefaultConfig() {
		t.Errorf("empty path = %+v, %v", cfg, err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `width = `},
		{"no instances", `instances = 0`},
		{"negative dead zone", `dead_zone = -1.0`},
		{"zero height", `height = 0`},
		{"bad level", `log_level = "loud"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeFile(t, "bad.toml", tt.content), false); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRootOptsOverrides(t *testing.T) {
	path := writeFile(t, "demo.toml", `deep = true
dead_zone = 4.0`)
	opts := &rootOpts{
		configPath: path,
		deep:       false,
		deepSet:    true,
		verbose:    true,
		debug:      true,
	}
	cfg, err := opts.config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Deep {
		t.Error("--deep=false did not override the file")
	}
	if cfg.DeadZone != 4 {
		t.Errorf("dead zone = %v, want the file's 4", cfg.DeadZone)
	}
	if cfg.LogLevel != "debug" || !cfg.Debug {
		t.Errorf("verbose/debug not applied: %+v", cfg)
	}
}
