package scene

import "github.com/Faultbox/golden-sphere/pkg/sphere"

// Point count limits accepted from users and config.
const (
	MinPoints = 5
	MaxPoints = 1000
)

// DegreesPerSecond is the yaw speed while rotation is enabled.
const DegreesPerSecond = 50

// Material is the appearance handle. The scene stores it and hands it to the
// renderer; it never interprets the fields.
type Material struct {
	Color     [4]float32
	PointSize float32
	LineWidth float32
}

// Settings is the user-facing configuration of the sphere.
type Settings struct {
	NumPoints       int
	Topology        sphere.Topology
	EnableRotation  bool
	EnableAnimation bool
	Material        Material
}

// Snapshot is the configuration last acted on. Comparing it by value each
// tick detects changes.
type Snapshot struct {
	Points   int
	Topology sphere.Topology
	Animate  bool
}

// ClampPoints saturates n into [MinPoints, MaxPoints].
func ClampPoints(n int) int {
	return min(max(n, MinPoints), MaxPoints)
}
