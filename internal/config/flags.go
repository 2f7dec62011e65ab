package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagPoints     = flag.Int("points", 0, "Number of sphere points (5-1000)")
	flagTopology   = flag.String("topology", "", "Topology: points, lines or triangles")
	flagRotate     = flag.Bool("rotate", false, "Rotate the sphere")
	flagAnimate    = flag.Bool("animate", false, "Animate the point count")
	flagWatch      = flag.Bool("watch", false, "Reload the config file when it changes")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// explicitFlags returns the names of flags set on the command line.
func explicitFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlags applies CLI flag overrides to the config. Bool toggles only
// apply when named in set, so -rotate=false overrides the file.
func applyFlags(cfg *Config, set map[string]bool) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPoints > 0 {
		cfg.Sphere.NumPoints = *flagPoints
	}
	if *flagTopology != "" {
		cfg.Sphere.Topology = *flagTopology
	}
	if set["rotate"] {
		cfg.Sphere.EnableRotation = *flagRotate
	}
	if set["animate"] {
		cfg.Sphere.EnableAnimation = *flagAnimate
	}
	if set["watch"] {
		cfg.Watch = *flagWatch
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
