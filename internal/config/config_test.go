package config

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/Faultbox/golden-sphere/internal/scene"
	"github.com/Faultbox/golden-sphere/pkg/sphere"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test sphere defaults
	if cfg.Sphere.NumPoints != 100 {
		t.Errorf("expected 100 points, got %d", cfg.Sphere.NumPoints)
	}
	if cfg.Sphere.Topology != "points" {
		t.Errorf("expected topology 'points', got %s", cfg.Sphere.Topology)
	}
	if cfg.Sphere.EnableRotation || cfg.Sphere.EnableAnimation {
		t.Error("expected rotation and animation off by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

sphere:
  num_points: 640
  topology: "triangles"
  enable_rotation: true
  enable_animation: true

material:
  color: [0.1, 0.2, 0.3, 1.0]
  point_size: 6
  line_width: 2

logging:
  level: "debug"
  log_file: "sphere.log"

watch: true
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Sphere.NumPoints != 640 {
		t.Errorf("expected 640 points, got %d", cfg.Sphere.NumPoints)
	}
	if cfg.Sphere.Topology != "triangles" {
		t.Errorf("expected topology 'triangles', got %s", cfg.Sphere.Topology)
	}
	if !cfg.Sphere.EnableRotation || !cfg.Sphere.EnableAnimation {
		t.Error("expected rotation and animation to be enabled")
	}

	if cfg.Material.Color != [4]float32{0.1, 0.2, 0.3, 1.0} {
		t.Errorf("unexpected material color %v", cfg.Material.Color)
	}
	if cfg.Material.PointSize != 6 {
		t.Errorf("expected point size 6, got %f", cfg.Material.PointSize)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if !cfg.Watch {
		t.Error("expected watch to be enabled")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
sphere:
  num_points: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		ok      bool
	}{
		{"defaults", func(*Config) {}, nil, true},
		{"lines", func(c *Config) { c.Sphere.Topology = "Lines" }, nil, true},
		{"bad topology", func(c *Config) { c.Sphere.Topology = "quads" }, ErrUnknownTopology, false},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, nil, false},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSceneSettings(t *testing.T) {
	cfg := Default()
	cfg.Sphere.NumPoints = 5000
	cfg.Sphere.Topology = "lines"
	cfg.Sphere.EnableRotation = true

	s := cfg.SceneSettings()
	if s.NumPoints != 1000 {
		t.Errorf("expected clamped 1000 points, got %d", s.NumPoints)
	}
	if s.Topology != sphere.Lines {
		t.Errorf("expected lines, got %v", s.Topology)
	}
	if !s.EnableRotation || s.EnableAnimation {
		t.Errorf("unexpected toggles: %+v", s)
	}
	if s.Material.Color != cfg.Material.Color || s.Material.PointSize != cfg.Material.PointSize {
		t.Errorf("material not carried over: %+v", s.Material)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Sphere.NumPoints = 321
	cfg.Sphere.Topology = "triangles"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if loaded.Sphere.NumPoints != 321 || loaded.Sphere.Topology != "triangles" {
		t.Errorf("round trip lost sphere settings: %+v", loaded.Sphere)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := scene.Settings{
		NumPoints:       640,
		Topology:        sphere.Lines,
		EnableRotation:  true,
		EnableAnimation: true,
		Material: scene.Material{
			Color:     [4]float32{0.25, 0.5, 0.75, 1},
			PointSize: 6,
			LineWidth: 2,
		},
	}

	cfg := Default()
	written, err := cfg.SaveSettings(want, path)
	if err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	if written != path {
		t.Errorf("expected %s, got %s", path, written)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if got := loaded.SceneSettings(); got != want {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
	if loaded.Graphics != cfg.Graphics {
		t.Errorf("graphics section changed: %+v", loaded.Graphics)
	}
}

func TestSaveSettingsDefaultPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	written, err := cfg.SaveSettings(cfg.SceneSettings(), "")
	if err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	if written != DefaultPath() {
		t.Errorf("expected %s, got %s", DefaultPath(), written)
	}
	if _, err := os.Stat(written); err != nil {
		t.Errorf("config not written: %v", err)
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sphere:\n  topology: hexagons\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrUnknownTopology) {
		t.Errorf("expected ErrUnknownTopology, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("sphere:\n  num_points: 50\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		set      map[string]bool
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "sphere flags",
			set:  map[string]bool{"rotate": true, "animate": true},
			setup: func() {
				*flagPoints = 777
				*flagTopology = "lines"
				*flagRotate = true
				*flagAnimate = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Sphere.NumPoints != 777 {
					t.Errorf("expected 777 points, got %d", cfg.Sphere.NumPoints)
				}
				if cfg.Sphere.Topology != "lines" {
					t.Errorf("expected topology lines, got %s", cfg.Sphere.Topology)
				}
				if !cfg.Sphere.EnableRotation || !cfg.Sphere.EnableAnimation {
					t.Error("expected rotation and animation from flags")
				}
			},
			teardown: func() {
				*flagPoints = 0
				*flagTopology = ""
				*flagRotate = false
				*flagAnimate = false
			},
		},
		{
			name:  "watch flag",
			set:   map[string]bool{"watch": true},
			setup: func() { *flagWatch = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Watch {
					t.Error("expected watch to be enabled")
				}
			},
			teardown: func() { *flagWatch = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg, tt.set)
			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsExplicitFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := "sphere:\n  enable_rotation: true\n  enable_animation: true\nwatch: true\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	applyFlags(cfg, nil)
	if !cfg.Sphere.EnableRotation || !cfg.Sphere.EnableAnimation || !cfg.Watch {
		t.Fatal("expected bool settings from the file when no flag is given")
	}

	// -rotate=false -animate=false -watch=false
	applyFlags(cfg, map[string]bool{"rotate": true, "animate": true, "watch": true})

	if cfg.Sphere.EnableRotation {
		t.Error("expected -rotate=false to disable rotation from the file")
	}
	if cfg.Sphere.EnableAnimation {
		t.Error("expected -animate=false to disable animation from the file")
	}
	if cfg.Watch {
		t.Error("expected -watch=false to disable watching from the file")
	}
}

func TestExplicitFlags(t *testing.T) {
	defer func() { *flagAnimate = false }()

	if err := flag.Set("animate", "false"); err != nil {
		t.Fatal(err)
	}
	set := explicitFlags()
	if !set["animate"] {
		t.Error("expected animate to be reported as explicitly set")
	}
	if set["rotate"] {
		t.Error("expected rotate to be unset")
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
sphere:
  num_points: 300
  topology: lines
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides the file
	*flagConfig = configPath
	*flagPoints = 600
	defer func() {
		*flagConfig = ""
		*flagPoints = 0
	}()

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if path != configPath {
		t.Errorf("expected path %s, got %s", configPath, path)
	}
	if cfg.Sphere.NumPoints != 600 {
		t.Errorf("expected 600 points from flag, got %d", cfg.Sphere.NumPoints)
	}
	if cfg.Sphere.Topology != "lines" {
		t.Errorf("expected topology from file, got %s", cfg.Sphere.Topology)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("sphere:\n  num_points: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) {
			select {
			case changes <- c:
			default:
			}
		})
	}()

	// Writes land after the watcher is registered; retry until one is seen.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	var got *Config
wait:
	for {
		select {
		case got = <-changes:
			if got.Sphere.NumPoints == 42 {
				break wait
			}
		case <-tick.C:
			os.WriteFile(path, []byte("sphere:\n  num_points: 42\n  topology: triangles\n"), 0644)
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}

	if got.Sphere.Topology != "triangles" {
		t.Errorf("expected triangles, got %s", got.Sphere.Topology)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Watch did not stop after cancel")
	}
}
