// Package scene owns the golden spiral sphere state: the point count,
// topology, rotation and the current geometry buffer.
package scene

import (
	"math"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/golden-sphere/internal/animation"
	"github.com/Faultbox/golden-sphere/internal/logger"
	"github.com/Faultbox/golden-sphere/pkg/sphere"
)

// Scene holds the sphere configuration and regenerates its geometry when the
// point count or topology changes.
//
// The point count is shared with the animation goroutine and is the only
// field written from more than one goroutine; last writer wins. Everything
// else belongs to the frame loop. The geometry buffer is swapped whole, so
// Buffer never returns a partially built one.
type Scene struct {
	points  atomic.Int32
	applied atomic.Int32
	buffer  atomic.Pointer[sphere.Buffer]

	topology sphere.Topology
	rotate   bool
	animate  bool
	material Material

	rotation      float32 // degrees in [0, 360)
	rotationDelta float32

	last   Snapshot
	driver *animation.Driver
}

// New creates a scene. No geometry exists until the first OnTick.
func New(settings Settings) *Scene {
	s := &Scene{
		topology: settings.Topology,
		rotate:   settings.EnableRotation,
		animate:  settings.EnableAnimation,
		material: settings.Material,
	}
	s.SetPoints(settings.NumPoints)
	s.driver = animation.New(s)
	return s
}

// Points returns the current point count.
func (s *Scene) Points() int {
	return int(s.points.Load())
}

// SetPoints sets the point count, saturating into [MinPoints, MaxPoints].
func (s *Scene) SetPoints(n int) {
	clamped := ClampPoints(n)
	if clamped != n {
		logger.Debug("point count clamped", zap.Int("requested", n), zap.Int("points", clamped))
	}
	s.points.Store(int32(clamped))
}

// AdjustPoints moves the point count by delta.
func (s *Scene) AdjustPoints(delta int) {
	s.SetPoints(s.Points() + delta)
}

// Applied returns the point count of the current geometry buffer.
func (s *Scene) Applied() int {
	return int(s.applied.Load())
}

// Topology returns the selected topology.
func (s *Scene) Topology() sphere.Topology {
	return s.topology
}

// SetTopology selects a topology.
func (s *Scene) SetTopology(t sphere.Topology) {
	s.topology = t
}

// CycleTopology switches to the next topology.
func (s *Scene) CycleTopology() {
	s.topology = s.topology.Next()
}

// ToggleRotation flips rotation on or off.
func (s *Scene) ToggleRotation() {
	s.rotate = !s.rotate
}

// ToggleAnimation flips the point count animation. Turning it off stops the
// driver before returning; turning it on starts the driver on the next OnTick.
func (s *Scene) ToggleAnimation() {
	s.setAnimate(!s.animate)
}

func (s *Scene) setAnimate(on bool) {
	s.animate = on
	if !on {
		s.driver.Stop()
	}
}

// SetMaterial replaces the appearance handle.
func (s *Scene) SetMaterial(m Material) {
	s.material = m
}

// Material returns the appearance handle.
func (s *Scene) Material() Material {
	return s.material
}

// Apply replaces every setting at once, as after a config reload.
func (s *Scene) Apply(settings Settings) {
	s.SetPoints(settings.NumPoints)
	s.topology = settings.Topology
	s.rotate = settings.EnableRotation
	s.setAnimate(settings.EnableAnimation)
	s.material = settings.Material
}

// Settings returns the current configuration.
func (s *Scene) Settings() Settings {
	return Settings{
		NumPoints:       s.Points(),
		Topology:        s.topology,
		EnableRotation:  s.rotate,
		EnableAnimation: s.animate,
		Material:        s.material,
	}
}

// Buffer returns the current geometry, or nil before the first OnTick.
func (s *Scene) Buffer() *sphere.Buffer {
	return s.buffer.Load()
}

// RotationDegrees returns the accumulated yaw.
func (s *Scene) RotationDegrees() float32 {
	return s.rotation
}

// RotationDelta returns the yaw added by the last OnTick.
func (s *Scene) RotationDelta() float32 {
	return s.rotationDelta
}

// Driver exposes the animation driver.
func (s *Scene) Driver() *animation.Driver {
	return s.driver
}

// OnTick advances rotation by dt seconds and reacts to configuration changes.
// It returns true when the geometry buffer was rebuilt.
func (s *Scene) OnTick(dt float64) bool {
	s.rotationDelta = 0
	if s.rotate {
		s.rotationDelta = float32(DegreesPerSecond * dt)
		s.rotation = float32(math.Mod(float64(s.rotation+s.rotationDelta), 360))
	}

	snap := Snapshot{
		Points:   s.Points(),
		Topology: s.topology,
		Animate:  s.animate,
	}

	rebuilt := false
	if snap.Points != s.last.Points || snap.Topology != s.last.Topology {
		s.rebuild(snap.Points, snap.Topology)
		rebuilt = true
	}

	// ToggleAnimation may already have stopped the driver.
	if snap.Animate != s.driver.Running() {
		if snap.Animate {
			s.driver.Start()
		} else {
			s.driver.Stop()
		}
	}

	s.last = snap
	return rebuilt
}

// OnAnimationTick performs one animation step outside the driver's own loop.
func (s *Scene) OnAnimationTick() {
	s.driver.Step()
}

// Close stops the animation loop.
func (s *Scene) Close() {
	s.driver.Stop()
}

func (s *Scene) rebuild(n int, t sphere.Topology) {
	buf := sphere.Build(n, t)
	s.buffer.Store(buf)
	s.applied.Store(int32(n))

	logger.Debug("sphere rebuilt",
		zap.Int("points", n),
		zap.Stringer("topology", t),
		zap.Int("indices", len(buf.Indices)),
	)
}
