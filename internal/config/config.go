// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/golden-sphere/internal/scene"
	"github.com/Faultbox/golden-sphere/pkg/sphere"
)

// ErrUnknownTopology is returned by Validate for an unrecognised topology name.
var ErrUnknownTopology = errors.New("unknown topology")

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Sphere   SphereConfig   `yaml:"sphere"`
	Material MaterialConfig `yaml:"material"`
	Logging  LoggingConfig  `yaml:"logging"`
	Watch    bool           `yaml:"watch"` // Reload the config file when it changes
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SphereConfig holds the point distribution settings.
type SphereConfig struct {
	NumPoints       int    `yaml:"num_points"` // Saturated to [5, 1000]
	Topology        string `yaml:"topology"`   // points, lines or triangles
	EnableRotation  bool   `yaml:"enable_rotation"`
	EnableAnimation bool   `yaml:"enable_animation"`
}

// MaterialConfig holds appearance settings passed straight to the renderer.
type MaterialConfig struct {
	Color     [4]float32 `yaml:"color"`
	PointSize float32    `yaml:"point_size"`
	LineWidth float32    `yaml:"line_width"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Sphere: SphereConfig{
			NumPoints: 100,
			Topology:  "points",
		},
		Material: MaterialConfig{
			Color:     [4]float32{0.95, 0.75, 0.3, 1},
			PointSize: 4,
			LineWidth: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	if _, err := sphere.ParseTopology(c.Sphere.Topology); err != nil {
		return fmt.Errorf("sphere.topology: %w: %q", ErrUnknownTopology, c.Sphere.Topology)
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	return nil
}

// SceneSettings converts the sphere and material sections to scene settings.
// Call Validate first; an unknown topology falls back to points.
func (c *Config) SceneSettings() scene.Settings {
	topo, _ := sphere.ParseTopology(c.Sphere.Topology)
	return scene.Settings{
		NumPoints:       scene.ClampPoints(c.Sphere.NumPoints),
		Topology:        topo,
		EnableRotation:  c.Sphere.EnableRotation,
		EnableAnimation: c.Sphere.EnableAnimation,
		Material: scene.Material{
			Color:     c.Material.Color,
			PointSize: c.Material.PointSize,
			LineWidth: c.Material.LineWidth,
		},
	}
}

// SetSceneSettings copies scene settings back into the sphere and material
// sections, so the current view can be saved.
func (c *Config) SetSceneSettings(s scene.Settings) {
	c.Sphere = SphereConfig{
		NumPoints:       s.NumPoints,
		Topology:        s.Topology.String(),
		EnableRotation:  s.EnableRotation,
		EnableAnimation: s.EnableAnimation,
	}
	c.Material = MaterialConfig{
		Color:     s.Material.Color,
		PointSize: s.Material.PointSize,
		LineWidth: s.Material.LineWidth,
	}
}
