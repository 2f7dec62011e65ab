// Package controls maps viewer actions onto scene mutations.
package controls

import (
	"github.com/Faultbox/golden-sphere/internal/scene"
	"github.com/Faultbox/golden-sphere/pkg/sphere"
)

// Action is a user command bound to a key.
type Action int

const (
	None Action = iota
	PointsUp
	PointsDown
	PointsUpFast
	PointsDownFast
	CycleTopology
	ShowPoints
	ShowLines
	ShowTriangles
	ToggleRotation
	ToggleAnimation
	Screenshot
	SaveSettings
	Quit
)

// FastStep is the point count change for the fast actions.
const FastStep = 50

var names = map[Action]string{
	None:            "none",
	PointsUp:        "points+1",
	PointsDown:      "points-1",
	PointsUpFast:    "points+50",
	PointsDownFast:  "points-50",
	CycleTopology:   "cycle-topology",
	ShowPoints:      "show-points",
	ShowLines:       "show-lines",
	ShowTriangles:   "show-triangles",
	ToggleRotation:  "toggle-rotation",
	ToggleAnimation: "toggle-animation",
	Screenshot:      "screenshot",
	SaveSettings:    "save-settings",
	Quit:            "quit",
}

func (a Action) String() string {
	if n, ok := names[a]; ok {
		return n
	}
	return "unknown"
}

// Repeatable reports whether holding the key should keep firing the action.
func (a Action) Repeatable() bool {
	switch a {
	case PointsUp, PointsDown, PointsUpFast, PointsDownFast:
		return true
	}
	return false
}

// Apply performs a scene action. It returns false for actions the scene does
// not handle (Screenshot, SaveSettings, Quit, None), which are left to the
// caller.
func Apply(s *scene.Scene, a Action) bool {
	switch a {
	case PointsUp:
		s.AdjustPoints(1)
	case PointsDown:
		s.AdjustPoints(-1)
	case PointsUpFast:
		s.AdjustPoints(FastStep)
	case PointsDownFast:
		s.AdjustPoints(-FastStep)
	case CycleTopology:
		s.CycleTopology()
	case ShowPoints:
		s.SetTopology(sphere.Points)
	case ShowLines:
		s.SetTopology(sphere.Lines)
	case ShowTriangles:
		s.SetTopology(sphere.Triangles)
	case ToggleRotation:
		s.ToggleRotation()
	case ToggleAnimation:
		s.ToggleAnimation()
	default:
		return false
	}
	return true
}
